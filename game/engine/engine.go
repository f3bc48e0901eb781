package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game lifecycle
	NewGame() *GameState
	GetState() *GameState
	SetState(state *GameState) error
	IsWon() bool

	// Interaction
	Select(ref CardRef) SelectionResult
	AttemptMove(dest Destination) MoveResult
	DrawFromStock() *GameState
	Hint() (Hint, bool)

	// History
	Undo() *GameState
	Redo() *GameState
	CanUndo() bool
	CanRedo() bool
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry

	// Persistence
	Serialize() *StateSnapshot
	Deserialize(snapshot *StateSnapshot) (*GameState, error)

	// Configuration
	GetConfig() *GameConfig
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access.
type GameEngine struct {
	state   *GameState
	config  *GameConfig
	history *history
	rng     *rand.Rand
	now     func() time.Time
}

// NewEngine creates an engine and deals the first game. A config with a
// non-zero Seed produces the same sequence of deals every time.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewEngineWithSource(config, rand.NewSource(seed))
}

// NewEngineWithSource creates an engine that shuffles with src
func NewEngineWithSource(config *GameConfig, src rand.Source) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config:  config.withDefaults(),
		history: newHistory(config.HistoryLimit),
		rng:     rand.New(src),
		now:     time.Now,
	}
	engine.NewGame()
	return engine, nil
}

// NewEngineWithDefaults creates an engine with the default configuration
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return engine
}

// NewGame shuffles and deals a fresh board. The cumulative move log survives;
// selection and both history stacks do not.
func (e *GameEngine) NewGame() *GameState {
	deck := BuildDeck()
	Shuffle(deck, e.rng)

	var prevHistory []MoveHistoryEntry
	if e.state != nil {
		prevHistory = e.state.MoveHistory
	}

	e.history.reset()
	e.state = &GameState{
		Board:       Deal(deck),
		GameID:      uuid.NewString(),
		ConfigName:  e.config.Name,
		Message:     e.config.Messages.Welcome,
		LastEvent:   EventNewGame,
		MoveHistory: prevHistory,
	}
	if e.state.MoveHistory == nil {
		e.state.MoveHistory = []MoveHistoryEntry{}
	}
	e.addHistory(MoveHistoryEntry{Action: "new_game", Success: true})
	e.syncDepths()
	return e.state
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState replaces the current state and clears undo and redo. The board
// must satisfy the deck invariant.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if err := state.Board.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	e.state = state
	e.history.reset()
	e.state.Won = e.state.Board.IsWon()
	e.syncDepths()
	return nil
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// IsWon reports whether every foundation is complete
func (e *GameEngine) IsWon() bool {
	return e.state.Board.IsWon()
}

// IsWon reports whether every foundation holds its suit Ace through King
func (b Board) IsWon() bool {
	for _, f := range b.Foundations {
		if !f.Complete() {
			return false
		}
	}
	return true
}

// Select toggles the selection of a face-up card. Selecting the selected card
// again clears it; selecting another card replaces it. Invalid requests leave
// the selection untouched.
func (e *GameEngine) Select(ref CardRef) SelectionResult {
	if reason := selectable(&e.state.Board, ref); reason != "" {
		e.state.Message = e.config.Messages.InvalidSelection
		e.state.LastEvent = EventInvalidSelection
		return SelectionResult{Status: SelectionInvalid, Selection: e.state.Selection, Reason: reason}
	}

	if sel := e.state.Selection; sel != nil && sel.Source == ref {
		e.state.Selection = nil
		e.state.Message = e.config.Messages.Deselected
		e.state.LastEvent = EventDeselect
		return SelectionResult{Status: SelectionDeselected}
	}

	card := (*e.state.Board.Pile(ref.Pile))[ref.Index]
	e.state.Selection = &Selection{Card: card, Source: ref}
	e.state.Message = e.config.Messages.Selected
	e.state.LastEvent = EventSelect
	sel := *e.state.Selection
	return SelectionResult{Status: SelectionSelected, Selection: &sel}
}

// selectable returns why ref cannot be selected, or "" when it can
func selectable(b *Board, ref CardRef) string {
	pile := b.Pile(ref.Pile)
	if pile == nil {
		return "unknown pile"
	}
	if ref.Pile.Kind == PileStock {
		return "stock cards are drawn, not selected"
	}
	if ref.Index < 0 || ref.Index >= len(*pile) {
		return "no card at that position"
	}
	if (ref.Pile.Kind == PileWaste || ref.Pile.Kind == PileFoundation) && ref.Index != len(*pile)-1 {
		return "only the top card of this pile can be selected"
	}
	if !(*pile)[ref.Index].FaceUp {
		return "card is face-down"
	}
	return ""
}

// AttemptMove moves the selected card (and, from a tableau, every card above
// it) to dest. The selection is cleared whatever the outcome, and a rejected
// move leaves every pile untouched.
func (e *GameEngine) AttemptMove(dest Destination) MoveResult {
	sel := e.state.Selection
	e.state.Selection = nil

	if sel == nil {
		return e.reject(MoveResult{To: dest, Reason: RuleNoSelection})
	}
	from := sel.Source
	result := MoveResult{From: &from, To: dest}

	if !dest.IsDestination() {
		result.Reason = RuleInvalidDestination
		return e.reject(result)
	}
	if dest.Same(from.Pile) {
		result.Reason = RuleSamePile
		return e.reject(result)
	}

	board := &e.state.Board
	run, ok := board.MovableRun(from)
	if !ok {
		result.Reason = RuleEmptyRun
		return e.reject(result)
	}
	if reason := board.Violation(run, dest); reason != RuleNone {
		result.Reason = reason
		return e.reject(result)
	}

	e.history.record(checkpoint(e.state))

	src := board.Pile(from.Pile)
	index := from.Index
	if from.Pile.Kind != PileTableau {
		index = len(*src) - 1
	}
	moved := src.PopSuffixFrom(index)
	board.Pile(dest).PushRun(moved)

	if from.Pile.Kind == PileTableau && src.FlipTop() {
		top, _ := src.Top()
		result.Flipped = &top
	}

	result.Success = true
	result.Moved = moved
	e.state.MoveCount++
	e.state.Message = e.config.Messages.Moved
	e.state.LastEvent = EventMove
	e.checkVictory()
	result.Won = e.state.Won

	e.addHistory(MoveHistoryEntry{
		Action:  "move",
		From:    from.Pile.String(),
		To:      dest.String(),
		Cards:   moved,
		Success: true,
	})
	e.syncDepths()
	return result
}

func (e *GameEngine) reject(result MoveResult) MoveResult {
	e.state.Message = fmt.Sprintf(e.config.Messages.Rejected, result.Reason.Description())
	e.state.LastEvent = EventRejected

	entry := MoveHistoryEntry{Action: "move", To: result.To.String(), Reason: result.Reason}
	if result.From != nil {
		entry.From = result.From.Pile.String()
	}
	e.addHistory(entry)
	return result
}

// DrawFromStock turns the stock's top card onto the waste. With an empty
// stock it recycles the waste instead, and with both empty it does nothing.
// Any selection is cleared.
func (e *GameEngine) DrawFromStock() *GameState {
	e.state.Selection = nil
	board := &e.state.Board

	switch {
	case len(board.Stock) > 0:
		e.history.record(checkpoint(e.state))
		card := board.Stock[len(board.Stock)-1]
		board.Stock = board.Stock[:len(board.Stock)-1]
		card.FaceUp = true
		board.Waste.PushRun([]Card{card})

		e.state.MoveCount++
		e.state.Message = e.config.Messages.Drew
		e.state.LastEvent = EventDraw
		e.addHistory(MoveHistoryEntry{Action: "draw", From: "stock", To: "waste", Cards: []Card{card}, Success: true})

	case len(board.Waste) > 0:
		e.history.record(checkpoint(e.state))
		RecycleWaste(&board.Stock, &board.Waste)

		e.state.MoveCount++
		e.state.Message = e.config.Messages.Recycled
		e.state.LastEvent = EventRecycle
		e.addHistory(MoveHistoryEntry{Action: "recycle", From: "waste", To: "stock", Success: true})

	default:
		e.state.Message = e.config.Messages.StockEmpty
		e.state.LastEvent = EventStockEmpty
	}

	e.syncDepths()
	return e.state
}

// Undo restores the board and move count from before the last move, draw,
// or recycle
func (e *GameEngine) Undo() *GameState {
	prev, ok := e.history.stepBack(checkpoint(e.state))
	if !ok {
		return e.state
	}
	e.restore(prev, EventUndo, e.config.Messages.Undo)
	return e.state
}

// Redo reapplies the last undone action
func (e *GameEngine) Redo() *GameState {
	next, ok := e.history.stepForward(checkpoint(e.state))
	if !ok {
		return e.state
	}
	e.restore(next, EventRedo, e.config.Messages.Redo)
	return e.state
}

func (e *GameEngine) restore(c Checkpoint, event EventType, message string) {
	e.state.Board = c.Board
	e.state.MoveCount = c.MoveCount
	e.state.Selection = nil
	e.state.Won = c.Board.IsWon()
	e.state.Message = message
	e.state.LastEvent = event
	e.addHistory(MoveHistoryEntry{Action: string(event), Success: true})
	e.syncDepths()
}

// CanUndo reports whether an undo step is available
func (e *GameEngine) CanUndo() bool {
	n, _ := e.history.depths()
	return n > 0
}

// CanRedo reports whether a redo step is available
func (e *GameEngine) CanRedo() bool {
	_, n := e.history.depths()
	return n > 0
}

// Hint returns one legal move without changing the game
func (e *GameEngine) Hint() (Hint, bool) {
	return FindHint(&e.state.Board)
}

// Serialize captures the full game, history stacks included
func (e *GameEngine) Serialize() *StateSnapshot {
	return &StateSnapshot{
		Version: SnapshotVersion,
		State:   *e.state.Clone(),
		Undo:    cloneCheckpoints(e.history.undo),
		Redo:    cloneCheckpoints(e.history.redo),
	}
}

// Deserialize replaces the game with a previously serialized snapshot
func (e *GameEngine) Deserialize(snapshot *StateSnapshot) (*GameState, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrInvalidSnapshot)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	restored := snapshot.Clone()
	e.state = &restored.State
	e.history.undo = restored.Undo
	e.history.redo = restored.Redo
	e.state.Won = e.state.Board.IsWon()
	e.syncDepths()
	return e.state, nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

func (e *GameEngine) checkVictory() {
	if e.state.Won || !e.state.Board.IsWon() {
		e.state.Won = e.state.Board.IsWon()
		return
	}
	e.state.Won = true
	e.state.Message = e.config.Messages.Victory
	e.state.LastEvent = EventVictory
}

func (e *GameEngine) addHistory(entry MoveHistoryEntry) {
	entry.MoveNumber = len(e.state.MoveHistory) + 1
	entry.Timestamp = e.now().Unix()
	e.state.MoveHistory = append(e.state.MoveHistory, entry)
}

func (e *GameEngine) syncDepths() {
	e.state.UndoDepth, e.state.RedoDepth = e.history.depths()
}

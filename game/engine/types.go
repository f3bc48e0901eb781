package engine

import (
	"errors"
	"fmt"
)

const (
	DeckSize        = 52
	TableauPiles    = 7
	FoundationPiles = 4

	// Validation constants
	MaxHistoryLimit = 1000
	SnapshotVersion = 1
)

var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrIllegalMove      = errors.New("illegal move")
	ErrEmptyHistory     = errors.New("empty history")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// PileKind identifies which family of pile a reference points at
type PileKind string

const (
	PileTableau    PileKind = "tableau"
	PileFoundation PileKind = "foundation"
	PileStock      PileKind = "stock"
	PileWaste      PileKind = "waste"
)

// PileRef names a single pile. Index is used for tableau piles (0..6) and
// Suit for foundations.
type PileRef struct {
	Kind  PileKind `json:"kind"`
	Index int      `json:"index,omitempty"`
	Suit  Suit     `json:"suit,omitempty"`
}

// Destination is a PileRef restricted to tableau and foundation piles
type Destination = PileRef

// TableauRef names tableau pile i
func TableauRef(i int) PileRef {
	return PileRef{Kind: PileTableau, Index: i}
}

// FoundationRef names the foundation of suit s
func FoundationRef(s Suit) PileRef {
	return PileRef{Kind: PileFoundation, Suit: s}
}

// WasteRef names the waste pile
func WasteRef() PileRef {
	return PileRef{Kind: PileWaste}
}

// StockRef names the stock pile
func StockRef() PileRef {
	return PileRef{Kind: PileStock}
}

// IsDestination reports whether cards may ever be placed on the referenced pile
func (r PileRef) IsDestination() bool {
	switch r.Kind {
	case PileTableau:
		return r.Index >= 0 && r.Index < TableauPiles
	case PileFoundation:
		return r.Suit.Valid()
	default:
		return false
	}
}

// Same reports whether both references name the same pile
func (r PileRef) Same(o PileRef) bool {
	if r.Kind != o.Kind {
		return false
	}
	switch r.Kind {
	case PileTableau:
		return r.Index == o.Index
	case PileFoundation:
		return r.Suit == o.Suit
	default:
		return true
	}
}

// String returns a compact label such as "tableau[3]" or "foundation[hearts]"
func (r PileRef) String() string {
	switch r.Kind {
	case PileTableau:
		return fmt.Sprintf("tableau[%d]", r.Index)
	case PileFoundation:
		return fmt.Sprintf("foundation[%s]", r.Suit)
	default:
		return string(r.Kind)
	}
}

// CardRef names a card by pile and position within the pile
type CardRef struct {
	Pile  PileRef `json:"pile"`
	Index int     `json:"index"`
}

// Selection is the single tentatively chosen card and where it sits
type Selection struct {
	Card   Card    `json:"card"`
	Source CardRef `json:"source"`
}

// ViolatedRule names the rule a rejected move broke
type ViolatedRule string

const (
	RuleNone                 ViolatedRule = ""
	RuleWrongSuit            ViolatedRule = "wrong_suit"
	RuleWrongOrder           ViolatedRule = "wrong_order"
	RuleWrongColor           ViolatedRule = "wrong_color"
	RuleFoundationSingleCard ViolatedRule = "foundation_single_card"
	RuleKingToEmpty          ViolatedRule = "king_to_empty"
	RuleNoSelection          ViolatedRule = "no_selection"
	RuleSamePile             ViolatedRule = "same_pile"
	RuleInvalidDestination   ViolatedRule = "invalid_destination"
	RuleEmptyRun             ViolatedRule = "empty_run"
)

// Description returns a human readable explanation of the rule
func (r ViolatedRule) Description() string {
	switch r {
	case RuleNone:
		return ""
	case RuleWrongSuit:
		return "Cards must go to the foundation of their own suit."
	case RuleWrongOrder:
		return "Cards must follow rank order: ascending on foundations from Ace, descending on the tableau."
	case RuleWrongColor:
		return "Tableau cards must alternate colors."
	case RuleFoundationSingleCard:
		return "Only one card at a time can be moved to a foundation."
	case RuleKingToEmpty:
		return "Only a King can be moved to an empty tableau pile."
	case RuleNoSelection:
		return "Select a card before choosing a destination."
	case RuleSamePile:
		return "Cards are already on that pile."
	case RuleInvalidDestination:
		return "Cards can only be placed on tableau or foundation piles."
	case RuleEmptyRun:
		return "There is no card to move from the selected position."
	default:
		return string(r)
	}
}

// EventType classifies the last thing that happened to a game
type EventType string

const (
	EventNewGame          EventType = "new_game"
	EventSelect           EventType = "select"
	EventDeselect         EventType = "deselect"
	EventInvalidSelection EventType = "invalid_selection"
	EventMove             EventType = "move"
	EventRejected         EventType = "rejected"
	EventDraw             EventType = "draw"
	EventRecycle          EventType = "recycle"
	EventStockEmpty       EventType = "stock_empty"
	EventUndo             EventType = "undo"
	EventRedo             EventType = "redo"
	EventVictory          EventType = "victory"
	EventRestore          EventType = "restore"
)

// GameState is everything a presentation layer needs to render a game.
// The embedded Board holds the piles; the rest is interaction state and log.
type GameState struct {
	Board

	GameID     string     `json:"game_id"`
	ConfigName string     `json:"config_name"`
	Selection  *Selection `json:"selection"`
	Message    string     `json:"message"`
	LastEvent  EventType  `json:"last_event,omitempty"`
	Won        bool       `json:"won"`
	MoveCount  int        `json:"move_count"`
	UndoDepth  int        `json:"undo_depth"`
	RedoDepth  int        `json:"redo_depth"`

	// MoveHistory is a cumulative log of actions; undo does not rewind it.
	MoveHistory []MoveHistoryEntry `json:"move_history"`
}

// Clone returns a deep copy of the state
func (s *GameState) Clone() *GameState {
	out := *s
	out.Board = s.Board.Clone()
	if s.Selection != nil {
		sel := *s.Selection
		out.Selection = &sel
	}
	if s.MoveHistory != nil {
		out.MoveHistory = make([]MoveHistoryEntry, len(s.MoveHistory))
		for i, entry := range s.MoveHistory {
			out.MoveHistory[i] = entry.clone()
		}
	}
	return &out
}

// MoveHistoryEntry records a single action in the game's log
type MoveHistoryEntry struct {
	Action     string       `json:"action"`
	From       string       `json:"from,omitempty"`
	To         string       `json:"to,omitempty"`
	Cards      []Card       `json:"cards,omitempty"`
	Success    bool         `json:"success"`
	Reason     ViolatedRule `json:"reason,omitempty"`
	MoveNumber int          `json:"move_number"`
	Timestamp  int64        `json:"timestamp"`
}

func (e MoveHistoryEntry) clone() MoveHistoryEntry {
	if e.Cards != nil {
		cards := make([]Card, len(e.Cards))
		copy(cards, e.Cards)
		e.Cards = cards
	}
	return e
}

// SelectionStatus is the outcome of a select request
type SelectionStatus string

const (
	SelectionSelected   SelectionStatus = "selected"
	SelectionDeselected SelectionStatus = "deselected"
	SelectionInvalid    SelectionStatus = "invalid"
)

// SelectionResult reports what a select request did
type SelectionResult struct {
	Status    SelectionStatus `json:"status"`
	Selection *Selection      `json:"selection,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

// Err returns ErrInvalidSelection for an invalid selection, nil otherwise
func (r SelectionResult) Err() error {
	if r.Status != SelectionInvalid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidSelection, r.Reason)
}

// MoveResult reports the outcome of AttemptMove
type MoveResult struct {
	Success bool         `json:"success"`
	Reason  ViolatedRule `json:"reason,omitempty"`
	From    *CardRef     `json:"from,omitempty"`
	To      PileRef      `json:"to"`
	Moved   []Card       `json:"moved,omitempty"`
	Flipped *Card        `json:"flipped,omitempty"`
	Won     bool         `json:"won,omitempty"`
}

// Err returns an ErrIllegalMove wrapping the violated rule, nil on success
func (r MoveResult) Err() error {
	if r.Success {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrIllegalMove, r.Reason)
}

// Hint points at a card that can legally move and one place it can go
type Hint struct {
	Source    PileRef `json:"source"`
	PileIndex int     `json:"pile_index"`
	CardIndex int     `json:"card_index"`
	Card      Card    `json:"card"`
	Target    PileRef `json:"target"`
}

// CardRef returns the reference that selects the hinted card
func (h Hint) CardRef() CardRef {
	return CardRef{Pile: h.Source, Index: h.CardIndex}
}

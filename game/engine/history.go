package engine

// Checkpoint is one undo or redo entry: a board and the move count it had
type Checkpoint struct {
	Board
	MoveCount int `json:"move_count"`
}

// history holds the undo and redo stacks of checkpoints. A limit of zero
// keeps every entry; otherwise the oldest undo entries are dropped first.
type history struct {
	undo  []Checkpoint
	redo  []Checkpoint
	limit int
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

func checkpoint(state *GameState) Checkpoint {
	return Checkpoint{Board: state.Board.Clone(), MoveCount: state.MoveCount}
}

// record pushes the game as it was before an action and invalidates redo
func (h *history) record(before Checkpoint) {
	h.undo = append(h.undo, before)
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = append([]Checkpoint(nil), h.undo[len(h.undo)-h.limit:]...)
	}
	h.redo = nil
}

// stepBack pops the newest undo entry, pushing current on redo
func (h *history) stepBack(current Checkpoint) (Checkpoint, bool) {
	if len(h.undo) == 0 {
		return Checkpoint{}, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return prev, true
}

// stepForward pops the newest redo entry, pushing current on undo
func (h *history) stepForward(current Checkpoint) (Checkpoint, bool) {
	if len(h.redo) == 0 {
		return Checkpoint{}, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return next, true
}

func (h *history) reset() {
	h.undo = nil
	h.redo = nil
}

func (h *history) depths() (int, int) {
	return len(h.undo), len(h.redo)
}

func cloneCheckpoints(entries []Checkpoint) []Checkpoint {
	if entries == nil {
		return nil
	}
	out := make([]Checkpoint, len(entries))
	for i, c := range entries {
		out[i] = Checkpoint{Board: c.Board.Clone(), MoveCount: c.MoveCount}
	}
	return out
}

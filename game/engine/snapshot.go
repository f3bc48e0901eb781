package engine

import (
	"encoding/json"
	"fmt"
)

// StateSnapshot is the complete, restorable record of a game: the current
// state (selection included) plus both history stacks.
type StateSnapshot struct {
	Version int          `json:"version"`
	State   GameState    `json:"state"`
	Undo    []Checkpoint `json:"undo"`
	Redo    []Checkpoint `json:"redo"`
}

// Clone returns a deep copy of the snapshot
func (s *StateSnapshot) Clone() *StateSnapshot {
	return &StateSnapshot{
		Version: s.Version,
		State:   *s.State.Clone(),
		Undo:    cloneCheckpoints(s.Undo),
		Redo:    cloneCheckpoints(s.Redo),
	}
}

// Validate checks the snapshot version, every board it carries, and that the
// selection (if any) still names a face-up card.
func (s *StateSnapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, s.Version)
	}
	if err := s.State.Board.Validate(); err != nil {
		return fmt.Errorf("%w: state: %v", ErrInvalidSnapshot, err)
	}
	for i, b := range s.Undo {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: undo[%d]: %v", ErrInvalidSnapshot, i, err)
		}
	}
	for i, b := range s.Redo {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: redo[%d]: %v", ErrInvalidSnapshot, i, err)
		}
	}
	if sel := s.State.Selection; sel != nil {
		board := s.State.Board
		if reason := selectable(&board, sel.Source); reason != "" {
			return fmt.Errorf("%w: selection: %s", ErrInvalidSnapshot, reason)
		}
		card := (*board.Pile(sel.Source.Pile))[sel.Source.Index]
		if !card.SameCard(sel.Card) {
			return fmt.Errorf("%w: selection names %s but %s is there", ErrInvalidSnapshot, sel.Card, card)
		}
	}
	return nil
}

// MarshalSnapshot encodes a snapshot as JSON
func MarshalSnapshot(s *StateSnapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrInvalidSnapshot)
	}
	return json.Marshal(s)
}

// UnmarshalSnapshot decodes and validates a JSON snapshot
func UnmarshalSnapshot(data []byte) (*StateSnapshot, error) {
	var s StateSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

package engine

// FaceDownCount counts the hidden cards still on the tableau
func FaceDownCount(b Board) int {
	count := 0
	for _, pile := range b.Tableau {
		count += pile.FaceUpStart()
	}
	return count
}

// EmptyTableauCount counts the tableau piles with no cards
func EmptyTableauCount(b Board) int {
	count := 0
	for _, pile := range b.Tableau {
		if len(pile) == 0 {
			count++
		}
	}
	return count
}

// LegalMoves lists every legal move on the board in the same order FindHint
// scans, so LegalMoves(b)[0] is always the hint. Like FindHint it leaves out
// moving a whole pile onto an empty one.
func LegalMoves(b *Board) []Hint {
	var moves []Hint
	for i, pile := range b.Tableau {
		for idx := len(pile) - 1; idx >= pile.FaceUpStart(); idx-- {
			run := []Card(pile[idx:])
			for _, suit := range Suits {
				if CanMoveToFoundation(run, *b.Foundation(suit)) {
					moves = append(moves, Hint{Source: TableauRef(i), PileIndex: i, CardIndex: idx, Card: pile[idx], Target: FoundationRef(suit)})
				}
			}
			for j := range b.Tableau {
				if j != i && !shiftsWholePile(idx, b.Tableau[j]) && CanMoveToTableau(run, b.Tableau[j]) {
					moves = append(moves, Hint{Source: TableauRef(i), PileIndex: i, CardIndex: idx, Card: pile[idx], Target: TableauRef(j)})
				}
			}
		}
	}

	top, ok := b.Waste.Top()
	if !ok {
		return moves
	}
	wasteIdx := len(b.Waste) - 1
	for _, suit := range Suits {
		if CanMoveToFoundation([]Card{top}, *b.Foundation(suit)) {
			moves = append(moves, Hint{Source: WasteRef(), PileIndex: -1, CardIndex: wasteIdx, Card: top, Target: FoundationRef(suit)})
		}
	}
	for j := range b.Tableau {
		if CanMoveToTableau([]Card{top}, b.Tableau[j]) {
			moves = append(moves, Hint{Source: WasteRef(), PileIndex: -1, CardIndex: wasteIdx, Card: top, Target: TableauRef(j)})
		}
	}
	return moves
}

// Progress summarizes how far a game has come
type Progress struct {
	Foundation int `json:"foundation"`
	FaceDown   int `json:"face_down"`
	Stock      int `json:"stock"`
	Waste      int `json:"waste"`
	EmptyPiles int `json:"empty_piles"`
}

// GetProgress computes a Progress for the board
func GetProgress(b Board) Progress {
	return Progress{
		Foundation: b.FoundationCount(),
		FaceDown:   FaceDownCount(b),
		Stock:      len(b.Stock),
		Waste:      len(b.Waste),
		EmptyPiles: EmptyTableauCount(b),
	}
}

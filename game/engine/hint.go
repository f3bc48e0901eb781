package engine

// FindHint returns the first legal move on the board, scanning tableau piles
// in index order (each face-up run from its tail card back to its deepest
// face-up card) and then the waste top. Foundations are tried before tableau
// piles for every candidate. Moving a whole pile onto an empty one is never
// offered. It never mutates the board.
func FindHint(b *Board) (Hint, bool) {
	for i, pile := range b.Tableau {
		for idx := len(pile) - 1; idx >= pile.FaceUpStart(); idx-- {
			run := []Card(pile[idx:])
			card := pile[idx]

			if target, ok := b.foundationTarget(run); ok {
				return Hint{Source: TableauRef(i), PileIndex: i, CardIndex: idx, Card: card, Target: target}, true
			}
			for j := range b.Tableau {
				if j == i || shiftsWholePile(idx, b.Tableau[j]) {
					continue
				}
				if CanMoveToTableau(run, b.Tableau[j]) {
					return Hint{Source: TableauRef(i), PileIndex: i, CardIndex: idx, Card: card, Target: TableauRef(j)}, true
				}
			}
		}
	}

	top, ok := b.Waste.Top()
	if !ok {
		return Hint{}, false
	}
	run := []Card{top}
	wasteIdx := len(b.Waste) - 1
	if target, ok := b.foundationTarget(run); ok {
		return Hint{Source: WasteRef(), PileIndex: -1, CardIndex: wasteIdx, Card: top, Target: target}, true
	}
	for j := range b.Tableau {
		if CanMoveToTableau(run, b.Tableau[j]) {
			return Hint{Source: WasteRef(), PileIndex: -1, CardIndex: wasteIdx, Card: top, Target: TableauRef(j)}, true
		}
	}
	return Hint{}, false
}

func (b *Board) foundationTarget(run []Card) (PileRef, bool) {
	for _, suit := range Suits {
		if CanMoveToFoundation(run, *b.Foundation(suit)) {
			return FoundationRef(suit), true
		}
	}
	return PileRef{}, false
}

// shiftsWholePile reports a run starting at the base of its pile headed for an
// empty pile, which changes nothing on the board.
func shiftsWholePile(idx int, target Pile) bool {
	return idx == 0 && len(target) == 0
}

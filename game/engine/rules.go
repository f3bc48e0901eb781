package engine

// FoundationViolation returns the rule that forbids placing run on f, or
// RuleNone when the move is legal. Foundations accept one card at a time, of
// their own suit, starting with the Ace and rising by one rank.
func FoundationViolation(run []Card, f Foundation) ViolatedRule {
	if len(run) == 0 {
		return RuleEmptyRun
	}
	if len(run) > 1 {
		return RuleFoundationSingleCard
	}

	card := run[0]
	if card.Suit != f.Suit {
		return RuleWrongSuit
	}

	top, ok := f.Top()
	if !ok {
		if card.Rank != Ace {
			return RuleWrongOrder
		}
		return RuleNone
	}
	if top.Suit != card.Suit {
		return RuleWrongSuit
	}
	if RankIndex(card.Rank) != RankIndex(top.Rank)+1 {
		return RuleWrongOrder
	}
	return RuleNone
}

// CanMoveToFoundation reports whether run may be placed on f
func CanMoveToFoundation(run []Card, f Foundation) bool {
	return FoundationViolation(run, f) == RuleNone
}

// TableauViolation returns the rule that forbids placing run on dest, or
// RuleNone when legal. Only the attachment point is checked: the first card of
// the run against the destination's top card. Runs lifted from a tableau are
// already ordered by construction.
func TableauViolation(run []Card, dest Pile) ViolatedRule {
	if len(run) == 0 {
		return RuleEmptyRun
	}

	card := run[0]
	top, ok := dest.Top()
	if !ok {
		if card.Rank != King {
			return RuleKingToEmpty
		}
		return RuleNone
	}
	if !OppositeColor(card, top) {
		return RuleWrongColor
	}
	if RankIndex(card.Rank) != RankIndex(top.Rank)-1 {
		return RuleWrongOrder
	}
	return RuleNone
}

// CanMoveToTableau reports whether run may be placed on dest
func CanMoveToTableau(run []Card, dest Pile) bool {
	return TableauViolation(run, dest) == RuleNone
}

// Violation dispatches to the foundation or tableau rule set based on the
// destination kind. It never mutates the board.
func (b *Board) Violation(run []Card, dest Destination) ViolatedRule {
	if !dest.IsDestination() {
		return RuleInvalidDestination
	}
	if dest.Kind == PileFoundation {
		return FoundationViolation(run, *b.Foundation(dest.Suit))
	}
	return TableauViolation(run, b.Tableau[dest.Index])
}

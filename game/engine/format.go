package engine

import (
	"fmt"
	"strings"
)

// FaceDownLabel marks a face-down card in text output
const FaceDownLabel = "##"

// Label returns the card's text label, or FaceDownLabel when it is face-down
func (c Card) Label() string {
	if !c.FaceUp {
		return FaceDownLabel
	}
	return c.String()
}

// FormatBoard renders the board as plain text, one pile per line:
//
//	Stock: 21 | Waste: 3 (top 7♦)
//	Foundations: ♥ A♥ | ♦ -- | ♣ -- | ♠ --
//	T0: ## ## K♠
//	T1: (empty)
//
// Tableau cards are listed base first, so a card's position in its line is
// its index in the pile.
func FormatBoard(b Board) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Stock: %d | Waste: %d", b.Stock.Len(), b.Waste.Len())
	if top, ok := b.Waste.Top(); ok {
		fmt.Fprintf(&sb, " (top %s)", top)
	}
	sb.WriteString("\n")

	sb.WriteString("Foundations:")
	for i, f := range b.Foundations {
		if i > 0 {
			sb.WriteString(" |")
		}
		label := "--"
		if top, ok := f.Top(); ok {
			label = top.String()
		}
		fmt.Fprintf(&sb, " %s %s", f.Suit.Symbol(), label)
	}
	sb.WriteString("\n")

	for i, pile := range b.Tableau {
		fmt.Fprintf(&sb, "T%d:", i)
		if pile.Len() == 0 {
			sb.WriteString(" (empty)\n")
			continue
		}
		for _, card := range pile {
			sb.WriteString(" " + card.Label())
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

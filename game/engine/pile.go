package engine

import (
	"fmt"
)

// Pile is an ordered stack of cards; index 0 is the base and the tail is the top.
type Pile []Card

// Len returns the number of cards in the pile
func (p Pile) Len() int {
	return len(p)
}

// Top returns the tail card, or false when the pile is empty
func (p Pile) Top() (Card, bool) {
	if len(p) == 0 {
		return Card{}, false
	}
	return p[len(p)-1], true
}

// PushRun appends an ordered run of cards to the tail
func (p *Pile) PushRun(cards []Card) {
	*p = append(*p, cards...)
}

// PopSuffixFrom detaches and returns the cards from index to the tail.
// It returns nil and leaves the pile untouched when index is out of range.
func (p *Pile) PopSuffixFrom(index int) []Card {
	if index < 0 || index >= len(*p) {
		return nil
	}
	moved := make([]Card, len(*p)-index)
	copy(moved, (*p)[index:])
	*p = (*p)[:index]
	return moved
}

// FlipTop turns the tail card face-up if it is face-down and reports whether it flipped
func (p Pile) FlipTop() bool {
	if len(p) == 0 || p[len(p)-1].FaceUp {
		return false
	}
	p[len(p)-1].FaceUp = true
	return true
}

// FaceUpStart returns the index where the face-up suffix begins (Len() when none)
func (p Pile) FaceUpStart() int {
	i := len(p)
	for i > 0 && p[i-1].FaceUp {
		i--
	}
	return i
}

// Clone returns a deep copy, keeping nil and empty piles distinct
func (p Pile) Clone() Pile {
	if p == nil {
		return nil
	}
	out := make(Pile, len(p))
	copy(out, p)
	return out
}

// RecycleWaste turns the waste back into the stock when the stock is empty.
// The waste order is reversed so the original draw order is restored and every
// card is turned face-down. It reports whether anything moved.
func RecycleWaste(stock, waste *Pile) bool {
	if len(*stock) != 0 || len(*waste) == 0 {
		return false
	}
	recycled := make(Pile, 0, len(*waste))
	for i := len(*waste) - 1; i >= 0; i-- {
		card := (*waste)[i]
		card.FaceUp = false
		recycled = append(recycled, card)
	}
	*stock = recycled
	*waste = Pile{}
	return true
}

// Foundation is a suit-bound goal pile built from Ace up to King
type Foundation struct {
	Suit  Suit `json:"suit"`
	Cards Pile `json:"cards"`
}

// Top returns the foundation's top card
func (f Foundation) Top() (Card, bool) {
	return f.Cards.Top()
}

// Len returns the number of cards on the foundation
func (f Foundation) Len() int {
	return len(f.Cards)
}

// Complete reports whether the foundation holds its suit Ace through King in order
func (f Foundation) Complete() bool {
	if len(f.Cards) != len(Ranks) {
		return false
	}
	for i, card := range f.Cards {
		if card.Suit != f.Suit || RankIndex(card.Rank) != i || !card.FaceUp {
			return false
		}
	}
	return true
}

// Board is the complete card layout. It is the unit that undo and redo restore.
type Board struct {
	Tableau     [TableauPiles]Pile         `json:"tableau"`
	Foundations [FoundationPiles]Foundation `json:"foundations"`
	Stock       Pile                       `json:"stock"`
	Waste       Pile                       `json:"waste"`
}

// Clone deep-copies every pile
func (b Board) Clone() Board {
	var out Board
	for i := range b.Tableau {
		out.Tableau[i] = b.Tableau[i].Clone()
	}
	for i := range b.Foundations {
		out.Foundations[i] = Foundation{Suit: b.Foundations[i].Suit, Cards: b.Foundations[i].Cards.Clone()}
	}
	out.Stock = b.Stock.Clone()
	out.Waste = b.Waste.Clone()
	return out
}

// Foundation returns the foundation bound to suit, or nil for an unknown suit
func (b *Board) Foundation(suit Suit) *Foundation {
	i := SuitIndex(suit)
	if i < 0 {
		return nil
	}
	return &b.Foundations[i]
}

// Pile resolves a reference to the pile it names. Foundations resolve to
// their card pile. It returns nil for an invalid reference.
func (b *Board) Pile(ref PileRef) *Pile {
	switch ref.Kind {
	case PileTableau:
		if ref.Index < 0 || ref.Index >= TableauPiles {
			return nil
		}
		return &b.Tableau[ref.Index]
	case PileFoundation:
		if f := b.Foundation(ref.Suit); f != nil {
			return &f.Cards
		}
		return nil
	case PileStock:
		return &b.Stock
	case PileWaste:
		return &b.Waste
	default:
		return nil
	}
}

// CardCount returns the number of cards across all piles
func (b Board) CardCount() int {
	n := len(b.Stock) + len(b.Waste)
	for _, p := range b.Tableau {
		n += len(p)
	}
	for _, f := range b.Foundations {
		n += len(f.Cards)
	}
	return n
}

// FoundationCount returns how many cards have reached the foundations
func (b Board) FoundationCount() int {
	n := 0
	for _, f := range b.Foundations {
		n += len(f.Cards)
	}
	return n
}

// MovableRun returns the run that would move if ref were the selected card.
// Waste and foundation sources only ever yield their single top card; a
// tableau source yields every card from ref.Index to the tail.
func (b *Board) MovableRun(ref CardRef) ([]Card, bool) {
	pile := b.Pile(ref.Pile)
	if pile == nil {
		return nil, false
	}
	switch ref.Pile.Kind {
	case PileWaste, PileFoundation:
		top, ok := pile.Top()
		if !ok {
			return nil, false
		}
		return []Card{top}, true
	case PileTableau:
		if ref.Index < 0 || ref.Index >= len(*pile) {
			return nil, false
		}
		run := make([]Card, len(*pile)-ref.Index)
		copy(run, (*pile)[ref.Index:])
		return run, true
	default:
		return nil, false
	}
}

// Validate checks the deck invariant (exactly 52 distinct valid cards across
// all piles, foundations bound to Suits in order) and where cards may face:
// the stock face-down, the waste and foundations face-up, and every tableau
// pile a face-down prefix under a face-up run.
func (b Board) Validate() error {
	if n := b.CardCount(); n != DeckSize {
		return fmt.Errorf("board holds %d cards, want %d", n, DeckSize)
	}

	seen := make(map[Card]bool, DeckSize)
	check := func(where string, p Pile) error {
		for _, c := range p {
			if RankIndex(c.Rank) < 0 || !c.Suit.Valid() {
				return fmt.Errorf("%s: malformed card %q of %q", where, c.Rank, c.Suit)
			}
			key := Card{Rank: c.Rank, Suit: c.Suit}
			if seen[key] {
				return fmt.Errorf("%s: duplicate card %s", where, key)
			}
			seen[key] = true
		}
		return nil
	}

	for i, p := range b.Tableau {
		if err := check(fmt.Sprintf("tableau %d", i), p); err != nil {
			return err
		}
	}
	for i, f := range b.Foundations {
		if f.Suit != Suits[i] {
			return fmt.Errorf("foundation %d bound to %q, want %q", i, f.Suit, Suits[i])
		}
		if err := check("foundation "+string(f.Suit), f.Cards); err != nil {
			return err
		}
	}
	if err := check("stock", b.Stock); err != nil {
		return err
	}
	if err := check("waste", b.Waste); err != nil {
		return err
	}
	for _, c := range b.Stock {
		if c.FaceUp {
			return fmt.Errorf("stock: card %s is face-up", c)
		}
	}
	for _, c := range b.Waste {
		if !c.FaceUp {
			return fmt.Errorf("waste: card %s is face-down", c)
		}
	}
	for _, f := range b.Foundations {
		for _, c := range f.Cards {
			if !c.FaceUp {
				return fmt.Errorf("foundation %s: card %s is face-down", f.Suit, c)
			}
		}
	}
	// hidden cards sit below the face-up run, never inside it
	for i, p := range b.Tableau {
		for _, c := range p[:p.FaceUpStart()] {
			if c.FaceUp {
				return fmt.Errorf("tableau %d: face-up card %s above a face-down card", i, c)
			}
		}
	}
	return nil
}

package engine

import "math/rand"

// BuildDeck returns the 52 cards face-down, suits in Suits order and ranks
// ascending within each suit.
func BuildDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Shuffle permutes deck in place with Fisher-Yates. A nil rng falls back to
// the package-level source.
func Shuffle(deck []Card, rng *rand.Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// Deal lays out a board from a full deck: tableau pile i receives i+1 cards
// with only the last one face-up, and the remaining cards form the stock.
func Deal(deck []Card) Board {
	var board Board
	next := 0
	for i := 0; i < TableauPiles; i++ {
		pile := make(Pile, 0, i+1)
		for j := 0; j <= i; j++ {
			card := deck[next]
			next++
			card.FaceUp = j == i
			pile = append(pile, card)
		}
		board.Tableau[i] = pile
	}

	board.Stock = make(Pile, 0, len(deck)-next)
	for _, card := range deck[next:] {
		card.FaceUp = false
		board.Stock = append(board.Stock, card)
	}
	board.Waste = Pile{}

	for i, suit := range Suits {
		board.Foundations[i] = Foundation{Suit: suit, Cards: Pile{}}
	}
	return board
}

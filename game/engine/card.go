package engine

import "fmt"

// Suit represents one of the four card suits
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits lists every suit in deck enumeration order. Foundation i is bound to Suits[i].
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Color is derived from the suit
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
)

// Color returns red for hearts and diamonds, black otherwise
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return SuitIndex(s) >= 0
}

// Symbol returns the unicode glyph for the suit
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// SuitIndex returns the position of s in Suits, or -1
func SuitIndex(s Suit) int {
	for i, suit := range Suits {
		if suit == s {
			return i
		}
	}
	return -1
}

// Rank represents a card rank
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Ranks lists ranks in ascending order; a rank's position is its rank index.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// RankIndex maps a rank to its 0-based order (A=0 .. K=12). It returns -1 for
// a malformed rank.
func RankIndex(r Rank) int {
	for i, rank := range Ranks {
		if rank == r {
			return i
		}
	}
	return -1
}

// Card is a single playing card. Only FaceUp changes once a deck is built.
type Card struct {
	Rank   Rank `json:"rank"`
	Suit   Suit `json:"suit"`
	FaceUp bool `json:"face_up"`
}

// Color returns the card's derived color
func (c Card) Color() Color {
	return c.Suit.Color()
}

// SameCard reports whether both cards have the same rank and suit, ignoring FaceUp
func (c Card) SameCard(o Card) bool {
	return c.Rank == o.Rank && c.Suit == o.Suit
}

// String returns a short label such as "10♥"
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit.Symbol())
}

// OppositeColor reports whether a and b differ in color
func OppositeColor(a, b Card) bool {
	return a.Color() != b.Color()
}

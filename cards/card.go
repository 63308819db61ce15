package cards

import "fmt"

// Suit represents a card suit
type Suit string

const (
	Spade   Suit = "SPADE"
	Club    Suit = "CLUB"
	Heart   Suit = "HEART"
	Diamond Suit = "DIAMOND"
)

// Suits lists every suit in deck-building order.
var Suits = []Suit{Spade, Heart, Club, Diamond}

// Card represents a playing card. Score is intrinsic: every heart is worth 1,
// the queen, king and ace of spades are worth 13, 10 and 7.
type Card struct {
	Suit  Suit `json:"suit"`
	Value int  `json:"value"`
	Score int  `json:"score"`
}

// New creates a card and assigns its score. Values run from 2 (two) to 14 (ace).
func New(suit Suit, value int) (Card, error) {
	switch suit {
	case Spade, Club, Heart, Diamond:
	default:
		return Card{}, fmt.Errorf("invalid card suit: %s", suit)
	}

	if value > 14 {
		return Card{}, fmt.Errorf("Card value cannot be greater than 14!")
	}

	return Card{Suit: suit, Value: value, Score: scoreOf(suit, value)}, nil
}

// MustNew is New for statically known cards; it panics on invalid input.
func MustNew(suit Suit, value int) Card {
	card, err := New(suit, value)
	if err != nil {
		panic(err)
	}
	return card
}

func scoreOf(suit Suit, value int) int {
	switch suit {
	case Heart:
		return 1
	case Spade:
		switch value {
		case 12:
			return 13
		case 13:
			return 10
		case 14:
			return 7
		}
	}
	return 0
}

// String returns the SUIT_VALUE form used in logs and error messages, e.g. "SPADE_2".
func (c Card) String() string {
	return fmt.Sprintf("%s_%d", c.Suit, c.Value)
}

// Beats reports whether c outranks other. Only values are compared; the rules
// never need to rank two cards of different suits.
func (c Card) Beats(other Card) bool {
	return c.Value > other.Value
}

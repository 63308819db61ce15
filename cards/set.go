package cards

import (
	"encoding/json"
	"sort"
)

// Set is an unordered collection of distinct cards, used for player decks and
// exchange selections.
type Set map[Card]struct{}

// NewSet builds a set from the given cards, dropping duplicates.
func NewSet(cs ...Card) Set {
	set := make(Set, len(cs))
	for _, c := range cs {
		set[c] = struct{}{}
	}
	return set
}

func (s Set) Add(c Card) {
	s[c] = struct{}{}
}

func (s Set) Remove(c Card) {
	delete(s, c)
}

func (s Set) Contains(c Card) bool {
	_, ok := s[c]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	clone := make(Set, len(s))
	for c := range s {
		clone[c] = struct{}{}
	}
	return clone
}

// HasSuit reports whether any card in the set is of the given suit.
func (s Set) HasSuit(suit Suit) bool {
	for c := range s {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// OnlySuit reports whether every card in the set is of the given suit.
// An empty set satisfies any suit.
func (s Set) OnlySuit(suit Suit) bool {
	for c := range s {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

var suitRank = map[Suit]int{Spade: 0, Heart: 1, Club: 2, Diamond: 3}

// Sorted returns the cards ordered by suit then value, for stable serialization.
func (s Set) Sorted() []Card {
	out := make([]Card, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Suit != out[j].Suit {
			return suitRank[out[i].Suit] < suitRank[out[j].Suit]
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// MarshalJSON encodes the set as a sorted array of cards.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

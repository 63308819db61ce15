package domain

import (
	"math/rand"

	"hearts-server/cards"
)

// Table is the envelope shared by all three phases: the seating order, the
// circular rotation, cumulative scores and per-player decks. Phase-specific
// state lives on the step that embeds it.
type Table struct {
	Players  []string
	Rotation map[string]string
	Scores   map[string]int
	Decks    map[string]cards.Set
}

// newTable seats the players, zeroes every score and deals fresh decks with r.
func newTable(players []string, r *rand.Rand) (Table, error) {
	decks, err := cards.Deal(players, r)
	if err != nil {
		return Table{}, err
	}

	scores := make(map[string]int, len(players))
	for _, player := range players {
		scores[player] = 0
	}

	return Table{
		Players:  append([]string(nil), players...),
		Rotation: cards.Rotation(players),
		Scores:   scores,
		Decks:    decks,
	}, nil
}

// emptyTable seats the players with empty decks; used by tests to stage exact hands.
func emptyTable(players []string) Table {
	scores := make(map[string]int, len(players))
	decks := make(map[string]cards.Set, len(players))
	for _, player := range players {
		scores[player] = 0
		decks[player] = cards.NewSet()
	}

	return Table{
		Players:  append([]string(nil), players...),
		Rotation: cards.Rotation(players),
		Scores:   scores,
		Decks:    decks,
	}
}

func (t *Table) validatePlayerHasCard(player string, card cards.Card) error {
	if !t.Decks[player].Contains(card) {
		return NewInvalidAction("Player %s does not have a card %s", player, card)
	}
	return nil
}

func (t *Table) playerHasSuit(player string, suit cards.Suit) bool {
	return t.Decks[player].HasSuit(suit)
}

func (t *Table) playerHasOnlySuit(player string, suit cards.Suit) bool {
	return t.Decks[player].OnlySuit(suit)
}

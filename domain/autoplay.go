package domain

import (
	"math/rand"

	"hearts-server/cards"
)

// RandomExchangeCards picks three random cards from the deck, for the move
// timeout to submit on behalf of an idle player.
func RandomExchangeCards(deck cards.Set, r *rand.Rand) cards.Set {
	sorted := deck.Sorted()
	r.Shuffle(len(sorted), func(i, j int) {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	})

	n := 3
	if len(sorted) < n {
		n = len(sorted)
	}
	return cards.NewSet(sorted[:n]...)
}

// RandomLegalCard picks a random card that would pass place-card validation:
// follow suit when possible, avoid leading hearts while other suits remain,
// otherwise anything.
func RandomLegalCard(deck cards.Set, tableSuit *cards.Suit, r *rand.Rand) cards.Card {
	all := deck.Sorted()

	var legal []cards.Card
	switch {
	case tableSuit != nil && deck.HasSuit(*tableSuit):
		for _, c := range all {
			if c.Suit == *tableSuit {
				legal = append(legal, c)
			}
		}
	case tableSuit == nil && !deck.OnlySuit(cards.Heart):
		for _, c := range all {
			if c.Suit != cards.Heart {
				legal = append(legal, c)
			}
		}
	default:
		legal = all
	}

	return legal[r.Intn(len(legal))]
}

// PlayAutoMove synthesizes a legal move for the player in the game's current
// phase: three random cards for exchange, a random legal card during a round,
// ready=true between rounds.
func (g *Game) PlayAutoMove(player string, r *rand.Rand) error {
	switch g.Phase {
	case PhaseCardExchange:
		return g.HandleCardExchange(player, RandomExchangeCards(g.Exchange.Decks[player], r))
	case PhaseRoundInProgress:
		card := RandomLegalCard(g.Round.Decks[player], g.Round.TableSuit, r)
		return g.HandlePlaceCard(player, card)
	case PhaseRoundFinished:
		return g.HandleClaimReadiness(player, true)
	}
	return NewInvalidAction("Invalid game action")
}

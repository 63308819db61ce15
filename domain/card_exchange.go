package domain

import (
	"math/rand"

	"hearts-server/cards"
)

// CardExchangeStep is the opening phase of a round: each player privately
// selects exactly three cards to pass to the next player along the rotation.
type CardExchangeStep struct {
	Table
	CardsToExchange map[string]cards.Set
}

// NewCardExchangeStep deals fresh decks and opens the exchange.
func NewCardExchangeStep(players []string, r *rand.Rand) (*CardExchangeStep, error) {
	table, err := newTable(players, r)
	if err != nil {
		return nil, err
	}
	return &CardExchangeStep{
		Table:           table,
		CardsToExchange: make(map[string]cards.Set),
	}, nil
}

// ValidateExchange checks a submission: exactly three cards, no prior
// submission, and every card owned by the submitting player.
func (s *CardExchangeStep) ValidateExchange(player string, selection cards.Set) error {
	if selection.Len() != 3 {
		return NewInvalidPayload("CardExchangePayload cards require passing exactly 3 cards")
	}

	if _, submitted := s.CardsToExchange[player]; submitted {
		return NewInvalidAction("Player %s has already declared cards for exchange", player)
	}

	for _, card := range selection.Sorted() {
		if err := s.validatePlayerHasCard(player, card); err != nil {
			return err
		}
	}
	return nil
}

// DispatchExchange records a validated submission.
func (s *CardExchangeStep) DispatchExchange(player string, selection cards.Set) {
	s.CardsToExchange[player] = selection.Clone()
}

// ShouldSwitch reports whether every player has submitted.
func (s *CardExchangeStep) ShouldSwitch() bool {
	return len(s.CardsToExchange) == len(s.Players)
}

// ToRoundInProgress passes every submission along the rotation, then opens the
// first trick with the starting card (club three or club two) already on the
// table and its holder's successor to move.
func (s *CardExchangeStep) ToRoundInProgress() (*RoundInProgressStep, error) {
	s.exchangeCardsBetweenPlayers()

	starter, startingCard, err := cards.FindStartingPlayer(s.Decks)
	if err != nil {
		return nil, err
	}
	s.Decks[starter].Remove(startingCard)

	tableSuit := cards.Club
	roundScore := make(map[string]int, len(s.Players))
	for _, player := range s.Players {
		roundScore[player] = 0
	}

	return &RoundInProgressStep{
		Table:         s.Table,
		CurrentPlayer: s.Rotation[starter],
		TableSuit:     &tableSuit,
		CardsOnTable:  map[string]cards.Card{starter: startingCard},
		RoundScore:    roundScore,
	}, nil
}

func (s *CardExchangeStep) exchangeCardsBetweenPlayers() {
	for fromPlayer, toPlayer := range s.Rotation {
		for card := range s.CardsToExchange[fromPlayer] {
			s.Decks[fromPlayer].Remove(card)
			s.Decks[toPlayer].Add(card)
		}
	}
}

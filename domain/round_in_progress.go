package domain

import "hearts-server/cards"

// shootTheMoonScore is the maximum total of a round: 13 hearts plus the queen,
// king and ace of spades (13 + 10 + 7).
const shootTheMoonScore = 43

// RoundInProgressStep plays out one trick at a time until every deck is empty.
type RoundInProgressStep struct {
	Table
	CurrentPlayer string
	TableSuit     *cards.Suit
	CardsOnTable  map[string]cards.Card
	RoundScore    map[string]int
}

// ValidatePlaceCard enforces turn order, card ownership, follow-suit and the
// lead-hearts restriction, in that order.
func (s *RoundInProgressStep) ValidatePlaceCard(player string, card cards.Card) error {
	if s.CurrentPlayer != player {
		return NewInvalidAction("Cannot make move, current player is %s", s.CurrentPlayer)
	}

	if err := s.validatePlayerHasCard(player, card); err != nil {
		return err
	}

	if s.TableSuit != nil {
		if card.Suit != *s.TableSuit && s.playerHasSuit(player, *s.TableSuit) {
			return NewInvalidAction(
				"Player %s tried to place %s, despite having %s in deck",
				player, card.Suit, *s.TableSuit,
			)
		}
		return nil
	}

	if card.Suit == cards.Heart && !s.playerHasOnlySuit(player, cards.Heart) {
		return NewInvalidAction(
			"Player %s tried to place Heart suit on the table, despite having other suits left",
			player,
		)
	}
	return nil
}

// DispatchPlaceCard moves a validated card onto the table, then either
// advances the turn or resolves the completed trick.
func (s *RoundInProgressStep) DispatchPlaceCard(player string, card cards.Card) {
	s.Decks[player].Remove(card)
	s.CardsOnTable[player] = card

	if s.TableSuit == nil {
		suit := card.Suit
		s.TableSuit = &suit
	}

	if len(s.CardsOnTable) == len(s.Players) {
		s.resolveTrick()
	} else {
		s.CurrentPlayer = s.Rotation[player]
	}
}

// resolveTrick credits the whole table's score to the highest card of the
// table suit, then clears the table and hands the winner the lead.
func (s *RoundInProgressStep) resolveTrick() {
	winner := s.trickWinner()
	total := 0
	for _, card := range s.CardsOnTable {
		total += card.Score
	}

	s.Scores[winner] += total
	s.RoundScore[winner] += total

	s.CardsOnTable = make(map[string]cards.Card)
	s.TableSuit = nil
	s.CurrentPlayer = winner
}

func (s *RoundInProgressStep) trickWinner() string {
	var winner string
	var best cards.Card
	for player, card := range s.CardsOnTable {
		if card.Suit != *s.TableSuit {
			continue
		}
		if winner == "" || card.Beats(best) {
			winner = player
			best = card
		}
	}
	return winner
}

// ShouldSwitch reports whether every deck has been played out.
func (s *RoundInProgressStep) ShouldSwitch() bool {
	for _, deck := range s.Decks {
		if deck.Len() > 0 {
			return false
		}
	}
	return true
}

// ToRoundFinished applies the shoot-the-moon inversion if a player took the
// whole round, then opens the between-rounds readiness gate.
func (s *RoundInProgressStep) ToRoundFinished() *RoundFinishedStep {
	for _, shooter := range s.Players {
		if s.RoundScore[shooter] != shootTheMoonScore {
			continue
		}
		for _, player := range s.Players {
			if player == shooter {
				s.Scores[player] -= shootTheMoonScore
			} else {
				s.Scores[player] += shootTheMoonScore
			}
		}
		break
	}

	return &RoundFinishedStep{
		Table:        s.Table,
		PlayersReady: make(map[string]bool),
	}
}

package protocol

import (
	"encoding/json"
	"fmt"

	"hearts-server/cards"
	"hearts-server/domain"
)

// ObfuscatedGame is the per-player view of a game: the recipient sees their
// own cards, but only card counts for everyone else. Derived at send time
// from the authoritative state, never stored.
type ObfuscatedGame struct {
	Settings    domain.GameSettings `json:"settings"`
	Players     []string            `json:"players"`
	Scores      map[string]int      `json:"scores"`
	IsFinished  bool                `json:"isFinished"`
	PlayerDecks map[string]int      `json:"playerDecks"`
	YourCards   []cards.Card        `json:"yourCards"`
	State       any                 `json:"state"`
}

// CardExchangeView hides what the others picked, revealing only whether they
// have submitted.
type CardExchangeView struct {
	PlayerExchangeCards map[string]bool `json:"playerExchangeCards"`
	YourExchangeCards   []cards.Card    `json:"yourExchangeCards"`
}

// RoundInProgressView is public: the table is visible to every participant.
type RoundInProgressView struct {
	CardsOnTable  map[string]cards.Card `json:"cardsOnTable"`
	CurrentPlayer string                `json:"currentPlayer"`
	TableSuit     *cards.Suit           `json:"tableSuit"`
}

// RoundFinishedView is public: readiness flags are shared.
type RoundFinishedView struct {
	PlayersReady map[string]bool `json:"playersReady"`
}

// GameDetailsResponse wraps an obfuscated snapshot with the phase-specific type tag.
type GameDetailsResponse struct {
	Type ResponseType   `json:"type"`
	ID   string         `json:"id"`
	Game ObfuscatedGame `json:"game"`
}

// NewGameDetails builds the snapshot of game destined for player.
func NewGameDetails(id string, game *domain.Game, player string) ([]byte, error) {
	var (
		responseType ResponseType
		table        *domain.Table
		state        any
	)

	switch game.Phase {
	case domain.PhaseCardExchange:
		step := game.Exchange
		responseType = TypeGameDetailsCardExchange
		table = &step.Table
		state = CardExchangeView{
			PlayerExchangeCards: obfuscatedExchangeCards(step.Players, step.CardsToExchange, player),
			YourExchangeCards:   sortedOrEmpty(step.CardsToExchange[player]),
		}
	case domain.PhaseRoundInProgress:
		step := game.Round
		responseType = TypeGameDetailsRoundInProgress
		table = &step.Table
		state = RoundInProgressView{
			CardsOnTable:  step.CardsOnTable,
			CurrentPlayer: step.CurrentPlayer,
			TableSuit:     step.TableSuit,
		}
	case domain.PhaseRoundFinished:
		step := game.RoundFinished
		responseType = TypeGameDetailsRoundFinished
		table = &step.Table
		state = RoundFinishedView{PlayersReady: step.PlayersReady}
	default:
		return nil, fmt.Errorf("unknown game phase %q", game.Phase)
	}

	return json.Marshal(GameDetailsResponse{
		Type: responseType,
		ID:   id,
		Game: ObfuscatedGame{
			Settings:    game.Settings,
			Players:     game.Players,
			Scores:      table.Scores,
			IsFinished:  game.IsFinished,
			PlayerDecks: obfuscatedPlayerDecks(table.Decks, player),
			YourCards:   sortedOrEmpty(table.Decks[player]),
			State:       state,
		},
	})
}

// obfuscatedPlayerDecks maps every other player to their card count.
func obfuscatedPlayerDecks(decks map[string]cards.Set, player string) map[string]int {
	counts := make(map[string]int, len(decks))
	for p, deck := range decks {
		if p != player {
			counts[p] = deck.Len()
		}
	}
	return counts
}

// obfuscatedExchangeCards maps every other player to a has-submitted flag.
func obfuscatedExchangeCards(players []string, cardsToExchange map[string]cards.Set, player string) map[string]bool {
	submitted := make(map[string]bool, len(players))
	for _, p := range players {
		if p == player {
			continue
		}
		selection, ok := cardsToExchange[p]
		submitted[p] = ok && selection.Len() > 0
	}
	return submitted
}

func sortedOrEmpty(set cards.Set) []cards.Card {
	if set == nil {
		return []cards.Card{}
	}
	return set.Sorted()
}

package cards

import (
	"fmt"
	"math/rand"
)

// FullDeck returns the configured deck for the given player count: the 52 cards
// of values 2..14 in all four suits, with the club two removed for 3 players so
// that the deal comes out even (17 cards each instead of 13).
func FullDeck(numPlayers int) ([]Card, error) {
	if numPlayers != 3 && numPlayers != 4 {
		return nil, fmt.Errorf("invalid number of players: %d", numPlayers)
	}

	var deck []Card
	for _, suit := range Suits {
		for value := 2; value <= 14; value++ {
			if numPlayers == 3 && suit == Club && value == 2 {
				continue
			}
			deck = append(deck, MustNew(suit, value))
		}
	}
	return deck, nil
}

// Deal shuffles the configured deck with r and dispenses it round-robin over
// the players in seating order.
func Deal(players []string, r *rand.Rand) (map[string]Set, error) {
	deck, err := FullDeck(len(players))
	if err != nil {
		return nil, err
	}

	r.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	decks := make(map[string]Set, len(players))
	for _, player := range players {
		decks[player] = NewSet()
	}
	for i, card := range deck {
		decks[players[i%len(players)]].Add(card)
	}
	return decks, nil
}

// Rotation maps each player to their circular successor in seating order.
func Rotation(players []string) map[string]string {
	rotation := make(map[string]string, len(players))
	for i, player := range players {
		rotation[player] = players[(i+1)%len(players)]
	}
	return rotation
}

// StartingCard returns the card that opens the first trick: the club three in a
// 3-player game, the club two in a 4-player game.
func StartingCard(numPlayers int) (Card, error) {
	switch numPlayers {
	case 3:
		return MustNew(Club, 3), nil
	case 4:
		return MustNew(Club, 2), nil
	default:
		return Card{}, fmt.Errorf("invalid number of players: %d", numPlayers)
	}
}

// FindStartingPlayer identifies the player whose deck holds the starting card.
// After a valid deal the card is always present; its absence is a programming error.
func FindStartingPlayer(decks map[string]Set) (string, Card, error) {
	starting, err := StartingCard(len(decks))
	if err != nil {
		return "", Card{}, err
	}

	for player, deck := range decks {
		if deck.Contains(starting) {
			return player, starting, nil
		}
	}
	return "", Card{}, fmt.Errorf("no deck holds the starting card %s", starting)
}

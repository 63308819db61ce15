package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearts-server/cards"
)

func threePlayers() []string {
	return []string{"1", "2", "3"}
}

// emptyExchangeStep stages an exchange phase with empty decks so tests can
// place exact hands.
func emptyExchangeStep(players []string) *CardExchangeStep {
	return &CardExchangeStep{
		Table:           emptyTable(players),
		CardsToExchange: make(map[string]cards.Set),
	}
}

func threeCardDecks() []cards.Set {
	return []cards.Set{
		cards.NewSet(cards.MustNew(cards.Spade, 2), cards.MustNew(cards.Club, 3), cards.MustNew(cards.Spade, 4)),
		cards.NewSet(cards.MustNew(cards.Spade, 5), cards.MustNew(cards.Spade, 6), cards.MustNew(cards.Spade, 7)),
		cards.NewSet(cards.MustNew(cards.Spade, 8), cards.MustNew(cards.Spade, 9), cards.MustNew(cards.Spade, 10)),
	}
}

func TestNewCardExchangeStep(t *testing.T) {
	step, err := NewCardExchangeStep(threePlayers(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, threePlayers(), step.Players)
	assert.Equal(t, map[string]string{"1": "2", "2": "3", "3": "1"}, step.Rotation)
	for _, player := range threePlayers() {
		assert.Equal(t, 17, step.Decks[player].Len())
		assert.Equal(t, 0, step.Scores[player])
	}
	assert.Empty(t, step.CardsToExchange)
}

func TestValidateExchange(t *testing.T) {
	t.Run("rejects selections that are not exactly three cards", func(t *testing.T) {
		step := emptyExchangeStep(threePlayers())
		selection := cards.NewSet(cards.MustNew(cards.Spade, 2), cards.MustNew(cards.Spade, 3))

		err := step.ValidateExchange("1", selection)
		require.Error(t, err)
		var gameErr *GameError
		require.ErrorAs(t, err, &gameErr)
		assert.Equal(t, InvalidPayload, gameErr.Kind)
		assert.Equal(t, "CardExchangePayload cards require passing exactly 3 cards", gameErr.Detail)
	})

	t.Run("rejects a second submission", func(t *testing.T) {
		step := emptyExchangeStep(threePlayers())
		selection := cards.NewSet(
			cards.MustNew(cards.Spade, 2),
			cards.MustNew(cards.Spade, 3),
			cards.MustNew(cards.Spade, 4),
		)
		step.CardsToExchange["1"] = selection.Clone()

		err := step.ValidateExchange("1", selection)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Player 1 has already declared cards for exchange")
	})

	t.Run("rejects cards the player does not own", func(t *testing.T) {
		step := emptyExchangeStep(threePlayers())
		selection := cards.NewSet(
			cards.MustNew(cards.Spade, 2),
			cards.MustNew(cards.Spade, 3),
			cards.MustNew(cards.Spade, 4),
		)

		err := step.ValidateExchange("1", selection)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Player 1 does not have a card SPADE_2")
	})

	t.Run("accepts three owned cards", func(t *testing.T) {
		step := emptyExchangeStep(threePlayers())
		step.Decks["1"] = threeCardDecks()[0]

		assert.NoError(t, step.ValidateExchange("1", threeCardDecks()[0]))
	})
}

func TestDispatchExchange(t *testing.T) {
	step := emptyExchangeStep(threePlayers())
	selection := cards.NewSet(
		cards.MustNew(cards.Spade, 2),
		cards.MustNew(cards.Spade, 3),
		cards.MustNew(cards.Spade, 4),
	)

	step.DispatchExchange("1", selection)

	assert.Equal(t, selection, step.CardsToExchange["1"])
	assert.False(t, step.ShouldSwitch())
}

func TestShouldSwitchWhenAllPlayersSubmitted(t *testing.T) {
	step := emptyExchangeStep(threePlayers())
	decks := threeCardDecks()
	for i, player := range threePlayers() {
		step.Decks[player] = decks[i].Clone()
		step.CardsToExchange[player] = decks[i].Clone()
	}

	assert.True(t, step.ShouldSwitch())
}

func TestToRoundInProgress(t *testing.T) {
	step := emptyExchangeStep(threePlayers())
	decks := threeCardDecks()
	for i, player := range threePlayers() {
		step.Decks[player] = decks[i].Clone()
		step.CardsToExchange[player] = decks[i].Clone()
	}

	// Everyone passes their whole hand: player 1's cards (with the club 3)
	// move to player 2, who therefore opens the first trick; the turn falls
	// to player 3.
	round, err := step.ToRoundInProgress()
	require.NoError(t, err)

	assert.Equal(t, "3", round.CurrentPlayer)
	require.NotNil(t, round.TableSuit)
	assert.Equal(t, cards.Club, *round.TableSuit)
	assert.Equal(t, map[string]cards.Card{"2": cards.MustNew(cards.Club, 3)}, round.CardsOnTable)
	for _, player := range threePlayers() {
		assert.Equal(t, 0, round.RoundScore[player])
	}
}

func TestExchangeRoundTrip(t *testing.T) {
	// Law: each player's new deck is (old deck minus their submission) plus
	// the submission of their predecessor along the rotation.
	players := threePlayers()
	step, err := NewCardExchangeStep(players, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	before := make(map[string]cards.Set, len(players))
	submitted := make(map[string]cards.Set, len(players))
	for _, player := range players {
		before[player] = step.Decks[player].Clone()
		selection := cards.NewSet(step.Decks[player].Sorted()[:3]...)
		submitted[player] = selection
		require.NoError(t, step.ValidateExchange(player, selection))
		step.DispatchExchange(player, selection)
	}

	round, err := step.ToRoundInProgress()
	require.NoError(t, err)

	predecessor := map[string]string{}
	for from, to := range round.Rotation {
		predecessor[to] = from
	}

	for _, player := range players {
		expected := before[player].Clone()
		for card := range submitted[player] {
			expected.Remove(card)
		}
		for card := range submitted[predecessor[player]] {
			expected.Add(card)
		}

		// The starting card has already moved onto the table.
		actual := round.Decks[player].Clone()
		for holder, card := range round.CardsOnTable {
			if holder == player {
				actual.Add(card)
			}
		}
		assert.Equal(t, expected, actual, "deck of player %s", player)
	}
}

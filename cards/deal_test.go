package cards

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullDeck(t *testing.T) {
	t.Run("three players get 51 cards without the club two", func(t *testing.T) {
		deck, err := FullDeck(3)
		require.NoError(t, err)
		assert.Len(t, deck, 51)
		assert.NotContains(t, deck, MustNew(Club, 2))
	})

	t.Run("four players get the full 52", func(t *testing.T) {
		deck, err := FullDeck(4)
		require.NoError(t, err)
		assert.Len(t, deck, 52)
		assert.Contains(t, deck, MustNew(Club, 2))
	})

	t.Run("other player counts are rejected", func(t *testing.T) {
		_, err := FullDeck(2)
		assert.Error(t, err)
		_, err = FullDeck(5)
		assert.Error(t, err)
	})
}

func TestDeal(t *testing.T) {
	t.Run("three players get 17 cards each", func(t *testing.T) {
		players := []string{"1", "2", "3"}
		decks, err := Deal(players, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		require.Len(t, decks, 3)
		seen := NewSet()
		for _, player := range players {
			assert.Equal(t, 17, decks[player].Len())
			for c := range decks[player] {
				seen.Add(c)
			}
		}
		assert.Equal(t, 51, seen.Len())
	})

	t.Run("four players get 13 cards each", func(t *testing.T) {
		players := []string{"1", "2", "3", "4"}
		decks, err := Deal(players, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		for _, player := range players {
			assert.Equal(t, 13, decks[player].Len())
		}
	})

	t.Run("same seed deals the same decks", func(t *testing.T) {
		players := []string{"1", "2", "3"}
		first, err := Deal(players, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		second, err := Deal(players, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestRotation(t *testing.T) {
	t.Run("three players", func(t *testing.T) {
		rotation := Rotation([]string{"1", "2", "3"})
		assert.Equal(t, map[string]string{"1": "2", "2": "3", "3": "1"}, rotation)
	})

	t.Run("four players", func(t *testing.T) {
		rotation := Rotation([]string{"1", "2", "3", "4"})
		assert.Equal(t, map[string]string{"1": "2", "2": "3", "3": "4", "4": "1"}, rotation)
	})
}

func TestFindStartingPlayer(t *testing.T) {
	t.Run("club three starts a 3-player game", func(t *testing.T) {
		decks := map[string]Set{
			"1": NewSet(MustNew(Club, 10)),
			"2": NewSet(MustNew(Club, 11)),
			"3": NewSet(MustNew(Club, 3)),
		}

		player, card, err := FindStartingPlayer(decks)
		require.NoError(t, err)
		assert.Equal(t, "3", player)
		assert.Equal(t, MustNew(Club, 3), card)
	})

	t.Run("club two starts a 4-player game", func(t *testing.T) {
		decks := map[string]Set{
			"1": NewSet(MustNew(Club, 10)),
			"2": NewSet(MustNew(Club, 11)),
			"3": NewSet(MustNew(Club, 2)),
			"4": NewSet(MustNew(Club, 3)),
		}

		player, card, err := FindStartingPlayer(decks)
		require.NoError(t, err)
		assert.Equal(t, "3", player)
		assert.Equal(t, MustNew(Club, 2), card)
	})

	t.Run("missing starting card is an error", func(t *testing.T) {
		decks := map[string]Set{
			"1": NewSet(MustNew(Club, 10)),
			"2": NewSet(MustNew(Club, 11)),
			"3": NewSet(MustNew(Club, 4)),
		}

		_, _, err := FindStartingPlayer(decks)
		assert.Error(t, err)
	})

	t.Run("invalid deck count is an error", func(t *testing.T) {
		decks := map[string]Set{"1": NewSet(MustNew(Club, 10))}
		_, _, err := FindStartingPlayer(decks)
		assert.Error(t, err)
	})
}

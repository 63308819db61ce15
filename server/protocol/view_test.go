package protocol

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearts-server/cards"
	"hearts-server/domain"
)

func newThreePlayerGame(t *testing.T) *domain.Game {
	t.Helper()
	game, err := domain.NewGame(
		[]string{"player_1", "player_2", "player_3"},
		domain.GameSettings{MaxScore: 100},
		rand.New(rand.NewSource(42)),
	)
	require.NoError(t, err)
	return game
}

func decodeSnapshot(t *testing.T, game *domain.Game, player string) map[string]any {
	t.Helper()
	raw, err := NewGameDetails("game-1", game, player)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func gameField(snapshot map[string]any) map[string]any {
	return snapshot["game"].(map[string]any)
}

func stateField(snapshot map[string]any) map[string]any {
	return gameField(snapshot)["state"].(map[string]any)
}

func TestCardExchangeSnapshot(t *testing.T) {
	game := newThreePlayerGame(t)
	snapshot := decodeSnapshot(t, game, "player_1")

	assert.Equal(t, "gameDetailsCardExchange", snapshot["type"])
	assert.Equal(t, "game-1", snapshot["id"])

	inner := gameField(snapshot)
	assert.Equal(t, false, inner["isFinished"])
	assert.Len(t, inner["yourCards"], 17)

	t.Run("other decks appear as counts only", func(t *testing.T) {
		decks := inner["playerDecks"].(map[string]any)
		assert.NotContains(t, decks, "player_1")
		assert.Equal(t, float64(17), decks["player_2"])
		assert.Equal(t, float64(17), decks["player_3"])
	})

	t.Run("scores start at zero for everyone", func(t *testing.T) {
		scores := inner["scores"].(map[string]any)
		assert.Len(t, scores, 3)
		assert.Equal(t, float64(0), scores["player_1"])
	})

	t.Run("exchange state hides the others' selections", func(t *testing.T) {
		state := stateField(snapshot)
		assert.Equal(t,
			map[string]any{"player_2": false, "player_3": false},
			state["playerExchangeCards"],
		)
		assert.Empty(t, state["yourExchangeCards"])
	})
}

func TestCardExchangeSnapshotAfterSubmission(t *testing.T) {
	game := newThreePlayerGame(t)
	selection := cards.NewSet(game.Exchange.Decks["player_2"].Sorted()[:3]...)
	require.NoError(t, game.HandleCardExchange("player_2", selection))

	t.Run("submitter sees their own selection", func(t *testing.T) {
		state := stateField(decodeSnapshot(t, game, "player_2"))
		assert.Len(t, state["yourExchangeCards"], 3)
	})

	t.Run("others see only the submission flag", func(t *testing.T) {
		state := stateField(decodeSnapshot(t, game, "player_1"))
		assert.Equal(t,
			map[string]any{"player_2": true, "player_3": false},
			state["playerExchangeCards"],
		)
	})
}

func TestRoundInProgressSnapshot(t *testing.T) {
	game := newThreePlayerGame(t)
	for _, player := range game.Players {
		selection := cards.NewSet(game.Exchange.Decks[player].Sorted()[:3]...)
		require.NoError(t, game.HandleCardExchange(player, selection))
	}
	require.Equal(t, domain.PhaseRoundInProgress, game.Phase)

	snapshot := decodeSnapshot(t, game, "player_1")
	assert.Equal(t, "gameDetailsRoundInProgress", snapshot["type"])

	state := stateField(snapshot)
	assert.Equal(t, "CLUB", state["tableSuit"])
	assert.Equal(t, game.Round.CurrentPlayer, state["currentPlayer"])

	// the starting card opens the first trick
	assert.Len(t, state["cardsOnTable"], 1)
}

func TestErrorResponse(t *testing.T) {
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(NewError("Invalid action: not your turn"), &decoded))

	assert.Equal(t, "error", decoded["type"])
	assert.Equal(t, "Invalid action: not your turn", decoded["detail"])
}

func TestLobbyResponses(t *testing.T) {
	lobby, err := domain.NewLobby(3, 100, "player_1")
	require.NoError(t, err)

	t.Run("lobby details", func(t *testing.T) {
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(NewLobbyDetails("lobby-1", lobby), &decoded))

		assert.Equal(t, "lobbyDetails", decoded["type"])
		assert.Equal(t, "lobby-1", decoded["id"])

		inner := decoded["lobby"].(map[string]any)
		assert.Equal(t, float64(3), inner["maxPlayers"])
		assert.Equal(t, []any{"player_1"}, inner["players"])
	})

	t.Run("lobby deleted", func(t *testing.T) {
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(NewLobbyDeleted("lobby-1"), &decoded))

		assert.Equal(t, "lobbyDeleted", decoded["type"])
		assert.Equal(t, "lobby-1", decoded["id"])
	})

	t.Run("lobby list", func(t *testing.T) {
		var decoded map[string]any
		raw := NewLobbyList(map[string]*domain.Lobby{"lobby-1": lobby})
		require.NoError(t, json.Unmarshal(raw, &decoded))

		assert.Equal(t, "lobbyList", decoded["type"])
		assert.Contains(t, decoded["lobbies"].(map[string]any), "lobby-1")
	})
}

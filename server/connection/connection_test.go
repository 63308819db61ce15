package connection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegister(t *testing.T) {
	manager := NewManager(zap.NewNop())

	t.Run("registers a player", func(t *testing.T) {
		client, err := manager.Register("player_1")
		require.NoError(t, err)
		assert.Equal(t, "player_1", client.Player)
	})

	t.Run("rejects a second live connection", func(t *testing.T) {
		_, err := manager.Register("player_1")
		assert.ErrorIs(t, err, ErrAlreadyConnected)
	})

	t.Run("allows reconnecting after unregister", func(t *testing.T) {
		manager.Unregister("player_1")
		_, err := manager.Register("player_1")
		assert.NoError(t, err)
	})
}

func TestUnregisterTwice(t *testing.T) {
	manager := NewManager(zap.NewNop())
	_, err := manager.Register("player_1")
	require.NoError(t, err)

	manager.Unregister("player_1")
	manager.Unregister("player_1")
}

func TestSendToPlayer(t *testing.T) {
	manager := NewManager(zap.NewNop())
	client, err := manager.Register("player_1")
	require.NoError(t, err)

	t.Run("queues for a connected player", func(t *testing.T) {
		assert.True(t, manager.SendToPlayer("player_1", []byte("one")))
		assert.Equal(t, []byte("one"), <-client.Send)
	})

	t.Run("reports an unknown player", func(t *testing.T) {
		assert.False(t, manager.SendToPlayer("nobody", []byte("one")))
	})

	t.Run("disconnects a receiver with a full buffer", func(t *testing.T) {
		for i := 0; i < SendBufferSize; i++ {
			require.True(t, manager.SendToPlayer("player_1", []byte("fill")))
		}
		assert.False(t, manager.SendToPlayer("player_1", []byte("overflow")))

		// the slot is free again
		_, err := manager.Register("player_1")
		assert.NoError(t, err)
	})
}

// A disconnect must never race a concurrent send into a closed channel.
func TestSendToPlayerRacingUnregister(t *testing.T) {
	manager := NewManager(zap.NewNop())

	for i := 0; i < 2000; i++ {
		_, err := manager.Register("player_1")
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			manager.SendToPlayer("player_1", []byte("ping"))
		}()
		go func() {
			defer wg.Done()
			manager.Unregister("player_1")
		}()
		wg.Wait()

		manager.Unregister("player_1")
	}
}

func TestBroadcast(t *testing.T) {
	manager := NewManager(zap.NewNop())
	first, err := manager.Register("player_1")
	require.NoError(t, err)
	second, err := manager.Register("player_2")
	require.NoError(t, err)

	manager.Broadcast([]byte("hello"))

	assert.Equal(t, []byte("hello"), <-first.Send)
	assert.Equal(t, []byte("hello"), <-second.Send)
}

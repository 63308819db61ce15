// Package connection tracks live player connections and their outbound
// message sinks. Sends never block: a receiver whose buffer is full is
// disconnected rather than allowed to stall the sender.
package connection

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// SendBufferSize bounds each client's outbound queue.
const SendBufferSize = 128

// ErrAlreadyConnected rejects a second live connection for the same player.
var ErrAlreadyConnected = errors.New("This player is already connected")

// Client is a connected player's outbound sink. The write pump drains Send
// until it is closed.
type Client struct {
	Player string
	Send   chan []byte

	closeOnce sync.Once
}

func newClient(player string) *Client {
	return &Client{
		Player: player,
		Send:   make(chan []byte, SendBufferSize),
	}
}

// Close closes the outbound channel exactly once, releasing the write pump.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// enqueue attempts a non-blocking send and reports success.
func (c *Client) enqueue(message []byte) bool {
	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

// Manager registers player connections and fans messages out to them.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// Register creates the outbound sink for a player. Uniqueness is enforced
// across live connections.
func (m *Manager) Register(player string) (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, connected := m.clients[player]; connected {
		return nil, ErrAlreadyConnected
	}

	client := newClient(player)
	m.clients[player] = client
	return client, nil
}

// Unregister removes the player's sink and closes it. Safe to call twice.
func (m *Manager) Unregister(player string) {
	m.mu.Lock()
	client, connected := m.clients[player]
	if connected {
		delete(m.clients, player)
	}
	m.mu.Unlock()

	if connected {
		client.Close()
	}
}

// SendToPlayer queues a message for one player. A full buffer disconnects the
// receiver. Reports whether the message was queued. The enqueue happens under
// the read lock so Unregister cannot close the channel mid-send.
func (m *Manager) SendToPlayer(player string, message []byte) bool {
	m.mu.RLock()
	client, connected := m.clients[player]
	queued := connected && client.enqueue(message)
	m.mu.RUnlock()

	if !connected {
		return false
	}
	if !queued {
		m.logger.Warn("disconnecting slow receiver", zap.String("player", player))
		m.Unregister(player)
		return false
	}
	return true
}

// Broadcast queues a message for every connected player, disconnecting any
// receiver that cannot keep up.
func (m *Manager) Broadcast(message []byte) {
	m.mu.RLock()
	var slow []string
	for player, client := range m.clients {
		if !client.enqueue(message) {
			slow = append(slow, player)
		}
	}
	m.mu.RUnlock()

	for _, player := range slow {
		m.logger.Warn("disconnecting slow receiver", zap.String("player", player))
		m.Unregister(player)
	}
}

// Package registry holds the server's shared in-memory state: the lobby and
// game maps. Each map has its own lock; callers run their whole critical
// section inside a closure so that lookup and mutation can never be torn
// apart. All state is lost on restart.
package registry

import (
	"sync"

	"hearts-server/domain"
)

// Registry is the process-local singleton of lobbies and games.
type Registry struct {
	lobbiesMu sync.RWMutex
	lobbies   map[string]*domain.Lobby

	gamesMu sync.Mutex
	games   map[string]*domain.Game
}

func New() *Registry {
	return &Registry{
		lobbies: make(map[string]*domain.Lobby),
		games:   make(map[string]*domain.Game),
	}
}

// Lobbies runs fn with exclusive access to the lobby map.
func (r *Registry) Lobbies(fn func(lobbies map[string]*domain.Lobby) error) error {
	r.lobbiesMu.Lock()
	defer r.lobbiesMu.Unlock()
	return fn(r.lobbies)
}

// ReadLobbies runs fn with shared access to the lobby map. fn must not mutate.
func (r *Registry) ReadLobbies(fn func(lobbies map[string]*domain.Lobby) error) error {
	r.lobbiesMu.RLock()
	defer r.lobbiesMu.RUnlock()
	return fn(r.lobbies)
}

// Games runs fn with exclusive access to the game map. The lock is held
// across the whole move, including the per-player broadcast, so every
// participant observes a monotone sequence of states.
func (r *Registry) Games(fn func(games map[string]*domain.Game) error) error {
	r.gamesMu.Lock()
	defer r.gamesMu.Unlock()
	return fn(r.games)
}

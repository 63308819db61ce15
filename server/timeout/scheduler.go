// Package timeout runs time-delayed expiry tasks with explicit cancellation
// handles: lobby expiry, finished-game expiry, and the optional per-move
// timeout. Each scheduled task holds a cancel handle in the scheduler's
// registry; cancellation is idempotent, and a missing handle only means the
// timer already fired and cleaned up after itself.
package timeout

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type moveKey struct {
	gameID string
	player string
}

// Scheduler owns every pending expiry task.
type Scheduler struct {
	mu      sync.Mutex
	lobbies map[string]context.CancelFunc
	games   map[string]context.CancelFunc
	moves   map[moveKey]context.CancelFunc
	logger  *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		lobbies: make(map[string]context.CancelFunc),
		games:   make(map[string]context.CancelFunc),
		moves:   make(map[moveKey]context.CancelFunc),
		logger:  logger,
	}
}

// ScheduleLobbyExpiry arranges for expire to run after d unless cancelled.
func (s *Scheduler) ScheduleLobbyExpiry(id string, d time.Duration, expire func()) {
	s.schedule(d, expire,
		func(cancel context.CancelFunc) context.CancelFunc {
			prior := s.lobbies[id]
			s.lobbies[id] = cancel
			return prior
		},
		func() { delete(s.lobbies, id) },
	)
}

// CancelLobbyExpiry stops a pending lobby expiry. An absent handle means the
// timer already fired; log and continue.
func (s *Scheduler) CancelLobbyExpiry(id string) {
	s.mu.Lock()
	cancel, ok := s.lobbies[id]
	delete(s.lobbies, id)
	s.mu.Unlock()

	if !ok {
		s.logger.Warn("lobby timeout not found", zap.String("lobby_id", id))
		return
	}
	cancel()
}

// ScheduleGameExpiry arranges post-game cleanup after d unless cancelled.
func (s *Scheduler) ScheduleGameExpiry(id string, d time.Duration, expire func()) {
	s.schedule(d, expire,
		func(cancel context.CancelFunc) context.CancelFunc {
			prior := s.games[id]
			s.games[id] = cancel
			return prior
		},
		func() { delete(s.games, id) },
	)
}

// CancelGameExpiry stops a pending game expiry.
func (s *Scheduler) CancelGameExpiry(id string) {
	s.mu.Lock()
	cancel, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()

	if !ok {
		s.logger.Warn("game timeout not found", zap.String("game_id", id))
		return
	}
	cancel()
}

// ScheduleMove arranges a synthesized move for an idle player after d.
func (s *Scheduler) ScheduleMove(gameID, player string, d time.Duration, fire func()) {
	key := moveKey{gameID: gameID, player: player}
	s.schedule(d, fire,
		func(cancel context.CancelFunc) context.CancelFunc {
			prior := s.moves[key]
			s.moves[key] = cancel
			return prior
		},
		func() { delete(s.moves, key) },
	)
}

// CancelMove stops the pending move timeout for one player, if any.
func (s *Scheduler) CancelMove(gameID, player string) {
	key := moveKey{gameID: gameID, player: player}
	s.mu.Lock()
	cancel, ok := s.moves[key]
	delete(s.moves, key)
	s.mu.Unlock()

	if ok {
		cancel()
	}
}

// CancelGameMoves stops every pending move timeout of a game.
func (s *Scheduler) CancelGameMoves(gameID string) {
	s.mu.Lock()
	var cancels []context.CancelFunc
	for key, cancel := range s.moves {
		if key.gameID == gameID {
			cancels = append(cancels, cancel)
			delete(s.moves, key)
		}
	}
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// schedule registers a cancel handle and starts the deferred task. The task
// removes its own handle before firing, so a handle present in the registry
// always refers to a timer that has not fired yet. Scheduling over an
// existing handle cancels the prior timer.
func (s *Scheduler) schedule(d time.Duration, fire func(), store func(context.CancelFunc) context.CancelFunc, remove func()) {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	prior := store(cancel)
	s.mu.Unlock()
	if prior != nil {
		prior()
	}

	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			s.mu.Lock()
			remove()
			s.mu.Unlock()
			fire()
		case <-ctx.Done():
		}
	}()
}

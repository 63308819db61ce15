// Package handlers routes decoded client actions to lobby and game state,
// broadcasts the results and keeps resource timeouts in step with every
// accepted move.
package handlers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sanity-io/litter"
	"go.uber.org/zap"

	"hearts-server/cards"
	"hearts-server/domain"
	"hearts-server/server/connection"
	"hearts-server/server/protocol"
	"hearts-server/server/registry"
	"hearts-server/server/timeout"
)

// Config carries the timeout durations. A zero MoveTimeout disables
// synthesized moves.
type Config struct {
	LobbyTimeout        time.Duration
	GameFinishedTimeout time.Duration
	MoveTimeout         time.Duration
}

// Dispatcher routes incoming actions to the appropriate handler.
type Dispatcher struct {
	registry  *registry.Registry
	clients   *connection.Manager
	scheduler *timeout.Scheduler
	config    Config
	logger    *zap.Logger

	// rng feeds every deal and synthesized move. Access is confined to the
	// registry's games lock.
	rng *rand.Rand
}

// NewDispatcher creates a dispatcher over the shared server state.
func NewDispatcher(reg *registry.Registry, clients *connection.Manager, scheduler *timeout.Scheduler, config Config, rng *rand.Rand, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry:  reg,
		clients:   clients,
		scheduler: scheduler,
		config:    config,
		logger:    logger,
		rng:       rng,
	}
}

// HandleMessage processes one frame from player. Failures are reported back to
// the caller as error responses and never terminate the connection.
func (d *Dispatcher) HandleMessage(player string, message []byte) {
	request, err := protocol.DecodeRequest(message)
	if err != nil {
		d.clients.SendToPlayer(player, protocol.NewError(err.Error()))
		return
	}

	if err := d.dispatch(player, request); err != nil {
		d.clients.SendToPlayer(player, protocol.NewError(err.Error()))
	}
}

func (d *Dispatcher) dispatch(player string, request *protocol.Request) error {
	switch request.Action {
	case protocol.ActionListLobbies:
		return d.handleListLobbies(player)
	case protocol.ActionGetLobbyDetails:
		return d.handleGetLobbyDetails(player, request.ID)
	case protocol.ActionCreateLobby:
		return d.handleCreateLobby(player, request.MaxPlayers, request.MaxScore)
	case protocol.ActionJoinLobby:
		return d.handleJoinLobby(player, request.ID)
	case protocol.ActionQuitLobby:
		return d.handleQuitLobby(player, request.ID)
	case protocol.ActionListGames:
		return d.handleListGames(player)
	case protocol.ActionGetGameDetails:
		return d.handleGetGameDetails(player, request.ID)
	case protocol.ActionCardExchangeMove:
		return d.handleCardExchangeMove(player, request)
	case protocol.ActionPlaceCardMove:
		return d.handlePlaceCardMove(player, request)
	case protocol.ActionClaimReadinessMove:
		return d.handleClaimReadinessMove(player, request)
	case protocol.ActionQuitGame:
		return d.handleQuitGame(player, request.ID)
	default:
		return fmt.Errorf("unknown action %q", request.Action)
	}
}

func (d *Dispatcher) handleListLobbies(player string) error {
	return d.registry.ReadLobbies(func(lobbies map[string]*domain.Lobby) error {
		d.clients.SendToPlayer(player, protocol.NewLobbyList(lobbies))
		return nil
	})
}

func (d *Dispatcher) handleGetLobbyDetails(player, id string) error {
	return d.registry.ReadLobbies(func(lobbies map[string]*domain.Lobby) error {
		lobby, found := lobbies[id]
		if !found {
			return fmt.Errorf("Lobby with id %s not found", id)
		}
		d.clients.SendToPlayer(player, protocol.NewLobbyDetails(id, lobby))
		return nil
	})
}

func (d *Dispatcher) handleCreateLobby(player string, maxPlayers, maxScore int) error {
	lobby, err := domain.NewLobby(maxPlayers, maxScore, player)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	var details []byte
	if err := d.registry.Lobbies(func(lobbies map[string]*domain.Lobby) error {
		lobbies[id] = lobby
		details = protocol.NewLobbyDetails(id, lobby)
		return nil
	}); err != nil {
		return err
	}

	d.scheduler.ScheduleLobbyExpiry(id, d.config.LobbyTimeout, func() { d.expireLobby(id) })
	d.clients.Broadcast(details)
	return nil
}

func (d *Dispatcher) handleJoinLobby(player, id string) error {
	var (
		details  []byte
		promoted *domain.Lobby
	)
	if err := d.registry.Lobbies(func(lobbies map[string]*domain.Lobby) error {
		lobby, found := lobbies[id]
		if !found {
			return fmt.Errorf("Lobby with id %s not found", id)
		}
		if lobby.HasPlayer(player) {
			return fmt.Errorf("You already belong to lobby with id %s", id)
		}

		if lobby.AddPlayer(player) {
			delete(lobbies, id)
			promoted = lobby
			return nil
		}
		details = protocol.NewLobbyDetails(id, lobby)
		return nil
	}); err != nil {
		return err
	}

	if promoted != nil {
		return d.promoteLobby(id, promoted)
	}
	d.clients.Broadcast(details)
	return nil
}

// promoteLobby turns a full lobby into a game: the lobby is announced deleted,
// the game is announced to everyone and each participant receives their first
// obfuscated snapshot.
func (d *Dispatcher) promoteLobby(lobbyID string, lobby *domain.Lobby) error {
	d.scheduler.CancelLobbyExpiry(lobbyID)
	d.clients.Broadcast(protocol.NewLobbyDeleted(lobbyID))

	gameID := uuid.NewString()
	return d.registry.Games(func(games map[string]*domain.Game) error {
		game, err := domain.NewGame(lobby.Players, domain.GameSettings{MaxScore: lobby.MaxScore}, d.rng)
		if err != nil {
			return err
		}
		games[gameID] = game

		d.clients.Broadcast(protocol.NewGameListed(gameID, game))
		d.broadcastGame(gameID, game)
		d.scheduleMoves(gameID, game)
		return nil
	})
}

func (d *Dispatcher) handleQuitLobby(player, id string) error {
	var (
		response []byte
		deleted  bool
	)
	if err := d.registry.Lobbies(func(lobbies map[string]*domain.Lobby) error {
		lobby, found := lobbies[id]
		if !found {
			return fmt.Errorf("Lobby with id %s not found", id)
		}
		if !lobby.HasPlayer(player) {
			return fmt.Errorf("You don't belong to lobby with id %s", id)
		}

		if lobby.RemovePlayer(player) {
			delete(lobbies, id)
			deleted = true
			response = protocol.NewLobbyDeleted(id)
			return nil
		}
		response = protocol.NewLobbyDetails(id, lobby)
		return nil
	}); err != nil {
		return err
	}

	if deleted {
		d.scheduler.CancelLobbyExpiry(id)
	}
	d.clients.Broadcast(response)
	return nil
}

func (d *Dispatcher) handleListGames(player string) error {
	return d.registry.Games(func(games map[string]*domain.Game) error {
		d.clients.SendToPlayer(player, protocol.NewGameList(games))
		return nil
	})
}

func (d *Dispatcher) handleGetGameDetails(player, id string) error {
	return d.registry.Games(func(games map[string]*domain.Game) error {
		game, found := games[id]
		if !found {
			return fmt.Errorf("Game with id %s does not exist", id)
		}
		if !game.HasPlayer(player) {
			return fmt.Errorf("You don't participate in game with id %s", id)
		}

		snapshot, err := protocol.NewGameDetails(id, game, player)
		if err != nil {
			return err
		}
		d.clients.SendToPlayer(player, snapshot)
		return nil
	})
}

func (d *Dispatcher) handleCardExchangeMove(player string, request *protocol.Request) error {
	selection := cards.NewSet()
	for _, wire := range request.CardsToExchange {
		card, err := wire.Validated()
		if err != nil {
			return err
		}
		selection.Add(card)
	}

	return d.withGame(request.ID, player, func(game *domain.Game) error {
		return game.HandleCardExchange(player, selection)
	})
}

func (d *Dispatcher) handlePlaceCardMove(player string, request *protocol.Request) error {
	if request.Card == nil {
		return domain.NewInvalidPayload("PlaceCardPayload requires a card")
	}
	card, err := request.Card.Validated()
	if err != nil {
		return err
	}

	return d.withGame(request.ID, player, func(game *domain.Game) error {
		return game.HandlePlaceCard(player, card)
	})
}

func (d *Dispatcher) handleClaimReadinessMove(player string, request *protocol.Request) error {
	return d.withGame(request.ID, player, func(game *domain.Game) error {
		return game.HandleClaimReadiness(player, request.Ready)
	})
}

func (d *Dispatcher) handleQuitGame(player, id string) error {
	return d.registry.Games(func(games map[string]*domain.Game) error {
		game, found := games[id]
		if !found {
			return fmt.Errorf("Game with id %s does not exist", id)
		}
		if !game.HasPlayer(player) {
			return fmt.Errorf("You don't participate in game with id %s", id)
		}

		// quitting during play forcefully finishes the game
		if game.RemovePlayer(player) {
			delete(games, id)
			d.scheduler.CancelGameMoves(id)
			d.scheduler.CancelGameExpiry(id)
			d.clients.Broadcast(protocol.NewGameDeleted(id))
			return nil
		}

		d.broadcastGame(id, game)
		d.refreshTimeouts(id, game)
		return nil
	})
}

// withGame runs a move against one game under the games lock. The caller must
// participate; an accepted move broadcasts fresh snapshots and resets timers.
func (d *Dispatcher) withGame(id, player string, move func(game *domain.Game) error) error {
	return d.registry.Games(func(games map[string]*domain.Game) error {
		game, found := games[id]
		if !found {
			return fmt.Errorf("Game with id %s does not exist", id)
		}
		if !game.HasPlayer(player) {
			return fmt.Errorf("You don't participate in game with id %s", id)
		}

		if err := move(game); err != nil {
			return err
		}

		d.broadcastGame(id, game)
		d.refreshTimeouts(id, game)
		return nil
	})
}

// broadcastGame sends every participant their own obfuscated snapshot. Runs
// under the games lock so all participants observe the same state.
func (d *Dispatcher) broadcastGame(id string, game *domain.Game) {
	for _, player := range game.Players {
		snapshot, err := protocol.NewGameDetails(id, game, player)
		if err != nil {
			d.logger.Error("building game snapshot",
				zap.String("game_id", id),
				zap.String("player", player),
				zap.Error(err),
				zap.String("state", litter.Sdump(game)),
			)
			continue
		}
		d.clients.SendToPlayer(player, snapshot)
	}
}

// refreshTimeouts resets the pending move timers after an accepted move and
// starts the post-game grace period once the game finishes.
func (d *Dispatcher) refreshTimeouts(id string, game *domain.Game) {
	d.scheduler.CancelGameMoves(id)
	if game.IsFinished {
		d.scheduler.ScheduleGameExpiry(id, d.config.GameFinishedTimeout, func() { d.expireGame(id) })
		return
	}
	d.scheduleMoves(id, game)
}

func (d *Dispatcher) scheduleMoves(id string, game *domain.Game) {
	if d.config.MoveTimeout <= 0 {
		return
	}
	for _, player := range game.PendingPlayers() {
		d.scheduler.ScheduleMove(id, player, d.config.MoveTimeout, func() { d.playTimedOutMove(id, player) })
	}
}

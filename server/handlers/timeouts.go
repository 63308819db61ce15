package handlers

import (
	"github.com/sanity-io/litter"
	"go.uber.org/zap"

	"hearts-server/domain"
	"hearts-server/server/protocol"
)

// expireLobby deletes an idle lobby once its timer fires. The lobby may have
// been promoted or emptied in the meantime; that is not an error.
func (d *Dispatcher) expireLobby(id string) {
	var found bool
	_ = d.registry.Lobbies(func(lobbies map[string]*domain.Lobby) error {
		_, found = lobbies[id]
		delete(lobbies, id)
		return nil
	})
	if !found {
		return
	}

	d.logger.Info("lobby expired", zap.String("lobby_id", id))
	d.clients.Broadcast(protocol.NewLobbyDeleted(id))
}

// expireGame deletes a finished game once its grace period passes.
func (d *Dispatcher) expireGame(id string) {
	var found bool
	_ = d.registry.Games(func(games map[string]*domain.Game) error {
		_, found = games[id]
		delete(games, id)
		return nil
	})
	if !found {
		return
	}

	d.scheduler.CancelGameMoves(id)
	d.logger.Info("game expired", zap.String("game_id", id))
	d.clients.Broadcast(protocol.NewGameDeleted(id))
}

// playTimedOutMove plays a synthesized legal move for a player whose move
// timer fired: three random cards, a random legal card, or ready=true.
func (d *Dispatcher) playTimedOutMove(id, player string) {
	_ = d.registry.Games(func(games map[string]*domain.Game) error {
		game, found := games[id]
		if !found || game.IsFinished || !game.HasPlayer(player) {
			return nil
		}

		if err := game.PlayAutoMove(player, d.rng); err != nil {
			d.logger.Error("synthesized move rejected",
				zap.String("game_id", id),
				zap.String("player", player),
				zap.Error(err),
				zap.String("state", litter.Sdump(game)),
			)
			return nil
		}

		d.logger.Info("synthesized move played",
			zap.String("game_id", id),
			zap.String("player", player),
		)
		d.broadcastGame(id, game)
		d.refreshTimeouts(id, game)
		return nil
	})
}

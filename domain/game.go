package domain

import (
	"math/rand"

	"hearts-server/cards"
)

// Phase discriminates the live step variant of a game. Exactly one of the
// step pointers on Game is non-nil at any time, matching the phase.
type Phase string

const (
	PhaseCardExchange    Phase = "cardExchange"
	PhaseRoundInProgress Phase = "roundInProgress"
	PhaseRoundFinished   Phase = "roundFinished"
)

// GameSettings configures a single game.
type GameSettings struct {
	// MaxScore ends the game when any cumulative score reaches it at the end
	// of a round.
	MaxScore int `json:"maxScore"`
}

// Game owns the current phase, routes moves to it, and latches the finished
// flag: once set, no further moves are accepted.
type Game struct {
	Settings      GameSettings
	Players       []string
	Phase         Phase
	Exchange      *CardExchangeStep
	Round         *RoundInProgressStep
	RoundFinished *RoundFinishedStep
	IsFinished    bool

	rng *rand.Rand
}

// NewGame seats 3 or 4 players in join order, deals with r and opens the
// card-exchange phase. r is retained for the re-deal on each new round.
func NewGame(players []string, settings GameSettings, r *rand.Rand) (*Game, error) {
	if len(players) < 3 || len(players) > 4 {
		return nil, NewInvalidAction("Invalid number of players")
	}

	exchange, err := NewCardExchangeStep(players, r)
	if err != nil {
		return nil, err
	}

	return &Game{
		Settings: settings,
		Players:  append([]string(nil), players...),
		Phase:    PhaseCardExchange,
		Exchange: exchange,
		rng:      r,
	}, nil
}

// HandleCardExchange submits a player's exchange selection, transitioning to
// round-in-progress once everyone has submitted.
func (g *Game) HandleCardExchange(player string, selection cards.Set) error {
	if err := g.validateMove(PhaseCardExchange, "CardExchangeMove"); err != nil {
		return err
	}

	if err := g.Exchange.ValidateExchange(player, selection); err != nil {
		return err
	}
	g.Exchange.DispatchExchange(player, selection)

	if g.Exchange.ShouldSwitch() {
		round, err := g.Exchange.ToRoundInProgress()
		if err != nil {
			return err
		}
		g.Phase = PhaseRoundInProgress
		g.Exchange = nil
		g.Round = round
	}
	return nil
}

// HandlePlaceCard plays one card, transitioning to round-finished once every
// deck is empty.
func (g *Game) HandlePlaceCard(player string, card cards.Card) error {
	if err := g.validateMove(PhaseRoundInProgress, "RoundInProgress"); err != nil {
		return err
	}

	if err := g.Round.ValidatePlaceCard(player, card); err != nil {
		return err
	}
	g.Round.DispatchPlaceCard(player, card)

	if g.Round.ShouldSwitch() {
		g.Phase = PhaseRoundFinished
		g.RoundFinished = g.Round.ToRoundFinished()
		g.Round = nil
	}
	return nil
}

// HandleClaimReadiness records a readiness flag. It latches the finished flag
// when a cumulative score has reached the limit, otherwise re-deals once every
// player is ready.
func (g *Game) HandleClaimReadiness(player string, ready bool) error {
	if err := g.validateMove(PhaseRoundFinished, "RoundFinished"); err != nil {
		return err
	}

	g.RoundFinished.ClaimReadiness(player, ready)

	if g.RoundFinished.GameFinished(g.Settings.MaxScore) {
		g.IsFinished = true
		return nil
	}

	if g.RoundFinished.ShouldSwitch() {
		exchange, err := g.RoundFinished.ToCardExchange(g.rng)
		if err != nil {
			return err
		}
		g.Phase = PhaseCardExchange
		g.Exchange = exchange
		g.RoundFinished = nil
	}
	return nil
}

func (g *Game) validateMove(phase Phase, expected string) error {
	if g.IsFinished {
		return NewInvalidAction("Game is already finished")
	}
	if g.Phase != phase {
		return NewInvalidAction("Invalid game action, expected %s", expected)
	}
	return nil
}

// HasPlayer reports whether the player is part of the game's roster.
func (g *Game) HasPlayer(player string) bool {
	for _, p := range g.Players {
		if p == player {
			return true
		}
	}
	return false
}

// RemovePlayer drops the player from the roster and force-finishes the game.
// It reports whether the roster is now empty.
func (g *Game) RemovePlayer(player string) bool {
	for i, p := range g.Players {
		if p == player {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			break
		}
	}
	g.IsFinished = true
	return len(g.Players) == 0
}

// PendingPlayers lists the players the game is waiting on in the current
// phase: unsubmitted exchangers, the current player, or the not-yet-ready.
func (g *Game) PendingPlayers() []string {
	if g.IsFinished {
		return nil
	}

	var pending []string
	switch g.Phase {
	case PhaseCardExchange:
		for _, player := range g.Players {
			if _, submitted := g.Exchange.CardsToExchange[player]; !submitted {
				pending = append(pending, player)
			}
		}
	case PhaseRoundInProgress:
		pending = append(pending, g.Round.CurrentPlayer)
	case PhaseRoundFinished:
		for _, player := range g.Players {
			if !g.RoundFinished.PlayersReady[player] {
				pending = append(pending, player)
			}
		}
	}
	return pending
}

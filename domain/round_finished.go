package domain

import "math/rand"

// RoundFinishedStep gates the next round while clients display scores.
type RoundFinishedStep struct {
	Table
	PlayersReady map[string]bool
}

// ClaimReadiness records a readiness flag. Readiness is last-write-wins, not a
// latch: a later false overwrites an earlier true.
func (s *RoundFinishedStep) ClaimReadiness(player string, ready bool) {
	s.PlayersReady[player] = ready
}

// ShouldSwitch reports whether every player has set their flag to true.
func (s *RoundFinishedStep) ShouldSwitch() bool {
	for _, player := range s.Players {
		if !s.PlayersReady[player] {
			return false
		}
	}
	return true
}

// GameFinished reports whether any cumulative score has reached maxScore.
func (s *RoundFinishedStep) GameFinished(maxScore int) bool {
	for _, score := range s.Scores {
		if score >= maxScore {
			return true
		}
	}
	return false
}

// ToCardExchange re-deals from the full deck, preserving players, rotation
// and cumulative scores.
func (s *RoundFinishedStep) ToCardExchange(r *rand.Rand) (*CardExchangeStep, error) {
	step, err := NewCardExchangeStep(s.Players, r)
	if err != nil {
		return nil, err
	}
	step.Scores = s.Scores
	return step, nil
}

package domain

// Lobby is a pre-game staging room. It grows as players join and is promoted
// to a Game the moment it fills.
type Lobby struct {
	MaxPlayers int      `json:"maxPlayers"`
	MaxScore   int      `json:"maxScore"`
	Players    []string `json:"players"`
}

// NewLobby creates a lobby with its owner as the sole initial player.
func NewLobby(maxPlayers, maxScore int, owner string) (*Lobby, error) {
	if maxPlayers < 3 || maxPlayers > 4 {
		return nil, NewInvalidAction("Invalid lobby max players")
	}

	return &Lobby{
		MaxPlayers: maxPlayers,
		MaxScore:   maxScore,
		Players:    []string{owner},
	}, nil
}

// HasPlayer reports whether the player has already joined.
func (l *Lobby) HasPlayer(player string) bool {
	for _, p := range l.Players {
		if p == player {
			return true
		}
	}
	return false
}

// AddPlayer appends the player and reports whether the lobby is now full.
func (l *Lobby) AddPlayer(player string) bool {
	l.Players = append(l.Players, player)
	return len(l.Players) == l.MaxPlayers
}

// RemovePlayer drops the player and reports whether the lobby is now empty.
func (l *Lobby) RemovePlayer(player string) bool {
	for i, p := range l.Players {
		if p == player {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			break
		}
	}
	return len(l.Players) == 0
}

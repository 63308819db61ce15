package protocol

import (
	"encoding/json"

	"hearts-server/domain"
)

// ResponseType discriminates outgoing messages.
type ResponseType string

const (
	TypeLobbyList                  ResponseType = "lobbyList"
	TypeLobbyDetails               ResponseType = "lobbyDetails"
	TypeLobbyDeleted               ResponseType = "lobbyDeleted"
	TypeGameList                   ResponseType = "gameList"
	TypeGameDetailsCardExchange    ResponseType = "gameDetailsCardExchange"
	TypeGameDetailsRoundInProgress ResponseType = "gameDetailsRoundInProgress"
	TypeGameDetailsRoundFinished   ResponseType = "gameDetailsRoundFinished"
	TypeGameDeleted                ResponseType = "gameDeleted"
	TypeError                      ResponseType = "error"
)

// ErrorResponse carries a human-readable failure back to the caller.
type ErrorResponse struct {
	Type   ResponseType `json:"type"`
	Detail string       `json:"detail"`
}

// NewError encodes an error response.
func NewError(detail string) []byte {
	data, _ := json.Marshal(ErrorResponse{Type: TypeError, Detail: detail})
	return data
}

// LobbyView is the public shape of a lobby.
type LobbyView struct {
	MaxPlayers int      `json:"maxPlayers"`
	MaxScore   int      `json:"maxScore"`
	Players    []string `json:"players"`
}

func LobbyViewOf(lobby *domain.Lobby) LobbyView {
	return LobbyView{
		MaxPlayers: lobby.MaxPlayers,
		MaxScore:   lobby.MaxScore,
		Players:    append([]string(nil), lobby.Players...),
	}
}

// LobbyListResponse answers listLobbies with the full lobby map.
type LobbyListResponse struct {
	Type    ResponseType         `json:"type"`
	Lobbies map[string]LobbyView `json:"lobbies"`
}

func NewLobbyList(lobbies map[string]*domain.Lobby) []byte {
	views := make(map[string]LobbyView, len(lobbies))
	for id, lobby := range lobbies {
		views[id] = LobbyViewOf(lobby)
	}
	data, _ := json.Marshal(LobbyListResponse{Type: TypeLobbyList, Lobbies: views})
	return data
}

// LobbyDetailsResponse carries one lobby's state, point-to-point or broadcast.
type LobbyDetailsResponse struct {
	Type  ResponseType `json:"type"`
	ID    string       `json:"id"`
	Lobby LobbyView    `json:"lobby"`
}

func NewLobbyDetails(id string, lobby *domain.Lobby) []byte {
	data, _ := json.Marshal(LobbyDetailsResponse{Type: TypeLobbyDetails, ID: id, Lobby: LobbyViewOf(lobby)})
	return data
}

// IDResponse announces a deleted lobby or game.
type IDResponse struct {
	Type ResponseType `json:"type"`
	ID   string       `json:"id"`
}

func NewLobbyDeleted(id string) []byte {
	data, _ := json.Marshal(IDResponse{Type: TypeLobbyDeleted, ID: id})
	return data
}

func NewGameDeleted(id string) []byte {
	data, _ := json.Marshal(IDResponse{Type: TypeGameDeleted, ID: id})
	return data
}

// ListedGame is a game as it appears in listings: roster only, no state.
type ListedGame struct {
	ID      string   `json:"id"`
	Players []string `json:"players"`
}

// GameListResponse answers listGames and announces newly created games.
type GameListResponse struct {
	Type  ResponseType `json:"type"`
	Games []ListedGame `json:"games"`
}

func NewGameList(games map[string]*domain.Game) []byte {
	listed := make([]ListedGame, 0, len(games))
	for id, game := range games {
		listed = append(listed, ListedGame{ID: id, Players: append([]string(nil), game.Players...)})
	}
	data, _ := json.Marshal(GameListResponse{Type: TypeGameList, Games: listed})
	return data
}

func NewGameListed(id string, game *domain.Game) []byte {
	data, _ := json.Marshal(GameListResponse{
		Type:  TypeGameList,
		Games: []ListedGame{{ID: id, Players: append([]string(nil), game.Players...)}},
	})
	return data
}

package protocol

import (
	"encoding/json"
	"fmt"

	"hearts-server/cards"
)

// Action discriminates incoming requests.
type Action string

const (
	ActionListLobbies        Action = "listLobbies"
	ActionGetLobbyDetails    Action = "getLobbyDetails"
	ActionCreateLobby        Action = "createLobby"
	ActionJoinLobby          Action = "joinLobby"
	ActionQuitLobby          Action = "quitLobby"
	ActionListGames          Action = "listGames"
	ActionGetGameDetails     Action = "getGameDetails"
	ActionCardExchangeMove   Action = "cardExchangeMove"
	ActionPlaceCardMove      Action = "placeCardMove"
	ActionClaimReadinessMove Action = "claimReadinessMove"
	ActionQuitGame           Action = "quitGame"
)

var knownActions = map[Action]struct{}{
	ActionListLobbies:        {},
	ActionGetLobbyDetails:    {},
	ActionCreateLobby:        {},
	ActionJoinLobby:          {},
	ActionQuitLobby:          {},
	ActionListGames:          {},
	ActionGetGameDetails:     {},
	ActionCardExchangeMove:   {},
	ActionPlaceCardMove:      {},
	ActionClaimReadinessMove: {},
	ActionQuitGame:           {},
}

// WireCard is a card as it appears on the wire: suit and value only, the score
// being intrinsic and assigned at validation.
type WireCard struct {
	Suit  cards.Suit `json:"suit"`
	Value int        `json:"value"`
}

// Validated turns the wire form into a domain card, assigning its score.
func (c WireCard) Validated() (cards.Card, error) {
	return cards.New(c.Suit, c.Value)
}

// Request is the flat request envelope: the action discriminator plus the
// union of every action's payload fields.
type Request struct {
	Action          Action     `json:"action"`
	ID              string     `json:"id"`
	MaxPlayers      int        `json:"maxPlayers"`
	MaxScore        int        `json:"maxScore"`
	CardsToExchange []WireCard `json:"cardsToExchange"`
	Card            *WireCard  `json:"card"`
	Ready           bool       `json:"ready"`
}

// DecodeRequest parses a client frame into a request, rejecting unknown actions.
func DecodeRequest(data []byte) (*Request, error) {
	var request Request
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, err
	}
	if _, known := knownActions[request.Action]; !known {
		return nil, fmt.Errorf("unknown action %q", request.Action)
	}
	return &request, nil
}

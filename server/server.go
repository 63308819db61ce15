// Package server exposes the WebSocket endpoint: it upgrades connections,
// establishes the player's identity from the user cookie and runs the read
// and write pumps that bridge the socket to the dispatcher.
package server

import (
	"errors"
	"math/rand"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"hearts-server/server/connection"
	"hearts-server/server/handlers"
	"hearts-server/server/protocol"
	"hearts-server/server/registry"
	"hearts-server/server/timeout"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Server owns the WebSocket endpoint and the shared state behind it.
type Server struct {
	clients    *connection.Manager
	dispatcher *handlers.Dispatcher
	logger     *zap.Logger
}

// New wires the registry, connection manager, timeout scheduler and action
// dispatcher together.
func New(config handlers.Config, rng *rand.Rand, logger *zap.Logger) *Server {
	clients := connection.NewManager(logger)
	scheduler := timeout.NewScheduler(logger)
	dispatcher := handlers.NewDispatcher(registry.New(), clients, scheduler, config, rng, logger)

	return &Server{
		clients:    clients,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Start begins serving the WebSocket endpoint on the given port.
func (s *Server) Start(port string) error {
	http.HandleFunc("/ws", s.handleWebSocket)

	s.logger.Info("starting server", zap.String("port", port))
	return http.ListenAndServe("0.0.0.0:"+port, nil)
}

// handleWebSocket upgrades the connection, validates the caller's identity
// and starts the connection's pumps.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrading to WebSocket", zap.Error(err))
		return
	}

	player, err := playerIdentity(r)
	if err != nil {
		rejectConnection(conn, err.Error())
		return
	}

	client, err := s.clients.Register(player)
	if err != nil {
		rejectConnection(conn, err.Error())
		return
	}

	s.logger.Info("player connected",
		zap.String("player", player),
		zap.String("remote", r.RemoteAddr),
	)

	go s.writePump(conn, client)
	go s.readPump(conn, player)
}

// playerIdentity extracts the player's nickname from the user cookie.
// Surrounding whitespace is stripped so it cannot mint variant identities.
func playerIdentity(r *http.Request) (string, error) {
	cookie, err := r.Cookie("user")
	if err != nil {
		return "", errors.New("user cookie not supplied")
	}

	player := strings.TrimSpace(cookie.Value)
	if len(player) <= 5 {
		return "", errors.New("Invalid nickname, should be at least 5 characters long")
	}
	return player, nil
}

// rejectConnection reports the failure on the socket and closes it.
func rejectConnection(conn *websocket.Conn, detail string) {
	_ = conn.WriteMessage(websocket.TextMessage, protocol.NewError(detail))
	_ = conn.Close()
}

// readPump reads frames from the connection until it drops. Disconnecting
// releases the player's identity but leaves their lobby and game memberships
// untouched.
func (s *Server) readPump(conn *websocket.Conn, player string) {
	defer func() {
		s.clients.Unregister(player)
		conn.Close()
		s.logger.Info("player disconnected", zap.String("player", player))
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("reading message", zap.String("player", player), zap.Error(err))
			}
			break
		}

		s.dispatcher.HandleMessage(player, message)
	}
}

// writePump drains the client's outbound queue onto the connection.
func (s *Server) writePump(conn *websocket.Conn, client *connection.Client) {
	defer conn.Close()

	for message := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			s.logger.Warn("writing message", zap.String("player", client.Player), zap.Error(err))
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, []byte{})
}

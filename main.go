package main

import (
	"math/rand"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"hearts-server/server"
	"hearts-server/server/handlers"
)

const (
	defaultPort         = "6379"
	lobbyTimeout        = 20 * time.Minute
	gameFinishedTimeout = 3 * time.Minute
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	config := handlers.Config{
		LobbyTimeout:        lobbyTimeout,
		GameFinishedTimeout: gameFinishedTimeout,
		MoveTimeout:         moveTimeoutFromEnv(logger),
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	s := server.New(config, rng, logger)
	if err := s.Start(port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// moveTimeoutFromEnv reads GAME_MOVE_TIMEOUT in seconds. Unset, zero or
// unparseable disables synthesized moves.
func moveTimeoutFromEnv(logger *zap.Logger) time.Duration {
	raw := os.Getenv("GAME_MOVE_TIMEOUT")
	if raw == "" {
		return 0
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		logger.Warn("invalid GAME_MOVE_TIMEOUT, move timeouts disabled", zap.String("value", raw))
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// Package config reads process configuration from the environment. The
// binaries load a .env file first (when present), so local overrides live
// next to the checkout.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// ServerURL is the websocket endpoint, e.g. ws://localhost:9000/socket.
	ServerURL string
	// SessionID selects which game/lobby instance to join.
	SessionID string
	// Addr is the listen address of the dev server binary.
	Addr string

	TileSize      float64
	Viewport      float64
	ChatBreakSize int
	PingPeriod    time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		ServerURL:     getEnv("HPCHESS_SERVER_URL", "ws://localhost:9000/socket"),
		SessionID:     getEnv("HPCHESS_SESSION_ID", "1"),
		Addr:          getEnv("HPCHESS_ADDR", ":9000"),
		TileSize:      30,
		Viewport:      900,
		ChatBreakSize: 100,
		PingPeriod:    50 * time.Second,
	}

	var err error
	if cfg.TileSize, err = getFloat("HPCHESS_TILE_SIZE", cfg.TileSize); err != nil {
		return Config{}, err
	}
	if cfg.Viewport, err = getFloat("HPCHESS_VIEWPORT", cfg.Viewport); err != nil {
		return Config{}, err
	}
	if cfg.ChatBreakSize, err = getInt("HPCHESS_CHAT_BREAK_SIZE", cfg.ChatBreakSize); err != nil {
		return Config{}, err
	}
	if cfg.PingPeriod, err = getDuration("HPCHESS_PING_PERIOD", cfg.PingPeriod); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SocketURL builds the full connect URL for a session.
func (c Config) SocketURL() string {
	return c.ServerURL + "?id=" + c.SessionID
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL == "" || cfg.SessionID == "" {
		t.Fatalf("missing defaults: %+v", cfg)
	}
	if cfg.PingPeriod != 50*time.Second {
		t.Fatalf("default ping period wrong: %v", cfg.PingPeriod)
	}
	if cfg.ChatBreakSize <= 0 || cfg.TileSize <= 0 || cfg.Viewport <= 0 {
		t.Fatalf("nonsensical defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HPCHESS_SESSION_ID", "42")
	t.Setenv("HPCHESS_PING_PERIOD", "10s")
	t.Setenv("HPCHESS_CHAT_BREAK_SIZE", "16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionID != "42" || cfg.PingPeriod != 10*time.Second || cfg.ChatBreakSize != 16 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if got := cfg.SocketURL(); got != cfg.ServerURL+"?id=42" {
		t.Fatalf("socket url wrong: %s", got)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("HPCHESS_TILE_SIZE", "huge")
	if _, err := Load(); err == nil {
		t.Fatal("garbage tile size must fail")
	}
}

package main

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-2048/internal/config"
)

func TestDisplayAddr(t *testing.T) {
	tests := map[string]string{
		":8080":          "localhost:8080",
		"0.0.0.0:8080":   "0.0.0.0:8080",
		"example.com:80": "example.com:80",
		"":               "",
	}
	for in, want := range tests {
		if got := displayAddr(in); got != want {
			t.Errorf("displayAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSSHHint(t *testing.T) {
	tests := map[string]string{
		":23234":            "localhost -p 23234",
		"play.example:2222": "play.example -p 2222",
		"":                  "localhost -p 22",
	}
	for in, want := range tests {
		if got := sshHint(in); got != want {
			t.Errorf("sshHint(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBoardShape(t *testing.T) {
	appConfig.Board.Size = 4
	appConfig.Board.WinTile = 2048

	tests := []struct {
		id   string
		size int
		goal int
	}{
		{"2048", 4, 2048},
		{"2048-3x3", 3, 512},
		{"2048-6x6", 6, 8192},
	}
	for _, tt := range tests {
		size, goal := boardShape(tt.id)
		if size != tt.size || goal != tt.goal {
			t.Errorf("boardShape(%q) = %d, %d; want %d, %d", tt.id, size, goal, tt.size, tt.goal)
		}
	}
}

func TestSSHServerConfig(t *testing.T) {
	defaults := sshServerConfig(config.ServerConfig{}, 0)
	if defaults.Address != ":23234" || defaults.IdleTimeout != 30*time.Minute || defaults.TickRate != 60 {
		t.Errorf("zero settings should keep the defaults: %+v", defaults)
	}

	cfg := sshServerConfig(config.ServerConfig{
		SSHAddr:            ":2222",
		HostKey:            "/tmp/key",
		IdleTimeoutMinutes: 5,
	}, 30)
	if cfg.Address != ":2222" || cfg.HostKeyPath != "/tmp/key" || cfg.IdleTimeout != 5*time.Minute || cfg.TickRate != 30 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

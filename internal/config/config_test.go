package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg T2048Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultT2048Config() {
		t.Errorf("embedded defaults = %+v, hardcoded = %+v", cfg, DefaultT2048Config())
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultT2048Config().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "board:\n  size: 5\n  win_tile: 4096\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadT2048(path)
	if err != nil {
		t.Fatalf("LoadT2048: %v", err)
	}
	if cfg.Board.Size != 5 || cfg.Board.WinTile != 4096 {
		t.Errorf("board = %+v, expected size 5 and win tile 4096", cfg.Board)
	}
	if cfg.Board.Spawn4Prob != 0.10 {
		t.Errorf("spawn4_prob = %g, expected default 0.10", cfg.Board.Spawn4Prob)
	}
	if cfg.Server.SSHAddr != ":23234" {
		t.Errorf("ssh_addr = %q, expected default", cfg.Server.SSHAddr)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadT2048(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadT2048(path); err == nil {
		t.Error("expected error for malformed custom config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*T2048Config)
		field  string
	}{
		{"size too small", func(c *T2048Config) { c.Board.Size = 1 }, "board.size"},
		{"win tile not power of two", func(c *T2048Config) { c.Board.WinTile = 1000 }, "board.win_tile"},
		{"win tile too small", func(c *T2048Config) { c.Board.WinTile = 2 }, "board.win_tile"},
		{"probability above one", func(c *T2048Config) { c.Board.Spawn4Prob = 1.5 }, "board.spawn4_prob"},
		{"zero probability", func(c *T2048Config) { c.Board.Spawn4Prob = 0 }, "board.spawn4_prob"},
		{"zero tick rate", func(c *T2048Config) { c.Platform.TickRate = 0 }, "platform.tick_rate"},
		{"negative timeout", func(c *T2048Config) { c.Server.IdleTimeoutMinutes = -1 }, "server.idle_timeout_minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultT2048Config()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention %s", err, tt.field)
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := DefaultT2048Config()
	cfg.Board.Size = 6
	ec := cfg.EngineConfig()
	if ec.Size != 6 || ec.WinTile != 2048 || ec.Spawn4Prob != 0.10 {
		t.Errorf("EngineConfig() = %+v", ec)
	}
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		input string
		want  DifficultyPreset
		prob  float64
	}{
		{"", DifficultyNormal, 0.10},
		{"easy", DifficultyEasy, 0.05},
		{" HARD ", DifficultyHard, 0.25},
	}
	for _, tt := range tests {
		p, err := ParseDifficultyPreset(tt.input)
		if err != nil {
			t.Fatalf("ParseDifficultyPreset(%q): %v", tt.input, err)
		}
		if p != tt.want {
			t.Errorf("ParseDifficultyPreset(%q) = %q, want %q", tt.input, p, tt.want)
		}
		cfg := DefaultT2048Config()
		ApplyT2048Preset(&cfg, p)
		if cfg.Board.Spawn4Prob != tt.prob {
			t.Errorf("preset %q spawn4_prob = %g, want %g", p, cfg.Board.Spawn4Prob, tt.prob)
		}
	}

	if _, err := ParseDifficultyPreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/.t2048/scores.db"); got != filepath.Join(home, ".t2048", "scores.db") {
		t.Errorf("ExpandPath = %q", got)
	}
	if got := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultT2048Config())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "win_tile: 2048") {
		t.Errorf("marshalled YAML missing win_tile:\n%s", data)
	}
}

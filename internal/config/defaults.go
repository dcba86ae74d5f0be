package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-2048/internal/games/t2048/engine"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Size:       engine.DefaultSize,
			WinTile:    engine.DefaultWinTile,
			Spawn4Prob: engine.DefaultSpawn4Prob,
		},
		Platform: PlatformConfig{
			TickRate: 60,
			DBPath:   "~/.t2048/scores.db",
		},
		Server: ServerConfig{
			SSHAddr:            ":23234",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultT2048YAML
}

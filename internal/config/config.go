// Package config provides YAML-based game configuration loading and
// difficulty presets for the 2048 platform.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vovakirdan/tui-2048/internal/games/t2048/engine"
)

// T2048Config contains all configuration for the 2048 game and its hosts.
type T2048Config struct {
	Board    BoardConfig    `yaml:"board"`
	Platform PlatformConfig `yaml:"platform"`
	Server   ServerConfig   `yaml:"server"`
}

// BoardConfig defines the engine parameters.
type BoardConfig struct {
	Size       int     `yaml:"size"`
	WinTile    int     `yaml:"win_tile"`
	Spawn4Prob float64 `yaml:"spawn4_prob"`
}

// PlatformConfig defines local host settings.
type PlatformConfig struct {
	TickRate int    `yaml:"tick_rate"`
	DBPath   string `yaml:"db_path"`
}

// ServerConfig defines settings for the SSH server and spectator feed.
type ServerConfig struct {
	SSHAddr            string `yaml:"ssh_addr"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
	WatchAddr          string `yaml:"watch_addr"`
}

// Validate reports every invalid value in the configuration.
func (c T2048Config) Validate() error {
	var errs []error

	if c.Board.Size < 2 {
		errs = append(errs, fmt.Errorf("board.size must be at least 2, got %d", c.Board.Size))
	}
	if w := c.Board.WinTile; w < 4 || w&(w-1) != 0 {
		errs = append(errs, fmt.Errorf("board.win_tile must be a power of two >= 4, got %d", w))
	}
	// The engine reads 0 as "use the default", so 0 cannot mean "never a 4"
	if p := c.Board.Spawn4Prob; p <= 0 || p > 1 {
		errs = append(errs, fmt.Errorf("board.spawn4_prob must be within (0, 1], got %g", p))
	}
	if c.Platform.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("platform.tick_rate must be positive, got %d", c.Platform.TickRate))
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout_minutes must not be negative, got %d", c.Server.IdleTimeoutMinutes))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// EngineConfig converts the board section into engine parameters.
func (c T2048Config) EngineConfig() engine.Config {
	return engine.Config{
		Size:       c.Board.Size,
		WinTile:    c.Board.WinTile,
		Spawn4Prob: c.Board.Spawn4Prob,
	}
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (c ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// DataDir returns the per-user data directory (~/.t2048), or "." when the
// home directory is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".t2048")
}

// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048 list               - List available boards
//	t2048 play [board]       - Play a board (default: 2048)
//	t2048 menu               - Start menu to pick boards interactively
//	t2048 serve              - Start SSH server for remote play
//	t2048 scores [board]     - Show high scores
//	t2048 config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config, 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.t2048/scores.db)
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	// Loaded in PersistentPreRunE
	appConfig config.T2048Config
	logLevel  log.Level
	logFile   *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board with the arrow keys; equal tiles merge and their sum is
added to your score. Reach the goal tile to win, then keep going if you
like. The game ends when no move is left.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  t2048 play
  t2048 play 2048-5x5 --difficulty hard
  t2048 menu
  t2048 serve --ssh :2222 --watch :8080
  t2048 scores 2048`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default: from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and hands game-wide settings to the
// 2048 package before any board is created.
func setup(_ *cobra.Command, _ []string) error {
	if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
		return err
	}

	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logLevel = lvl

	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, _ := config.ParseDifficultyPreset(flagDifficulty)
		config.ApplyT2048Preset(&cfg, preset)
	}
	if flagFPS > 0 {
		cfg.Platform.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Platform.DBPath = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	t2048.SetConfigPath(flagConfig)
	t2048.SetDifficultyPreset(flagDifficulty)
	return nil
}

// newLogger creates a logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel,
	})
}

// fileLogger returns a logger for full-screen commands, which cannot
// write to the terminal. Logs go to ~/.t2048/t2048.log.
func fileLogger() *log.Logger {
	dir := config.DataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard)
	}
	f, err := os.OpenFile(filepath.Join(dir, "t2048.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard)
	}
	logFile = f
	return newLogger(f, "t2048")
}

// openStore opens the score database. Games still run without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(appConfig.Platform.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		return nil
	}
	return store
}

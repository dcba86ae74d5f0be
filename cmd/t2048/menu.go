package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a board picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a board.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select board
  Tab          - Scoreboard
  Q            - Quit

Examples:
  t2048 menu
  t2048 menu --difficulty easy
  t2048 menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger := fileLogger()
	t2048.SetLogger(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed per game unless pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("starting game", "board", game.ID(), "seed", cfg.Seed)
		if err := tui.Run(game, cfg, tui.GameOptions{Store: store, Logger: logger}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/transport/websocket"
)

var flagWatch string

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board (default: 2048).

Controls:
  Arrows/WASD/HJKL - Slide tiles
  C                - Keep going after reaching the goal
  R                - New game
  P/Esc            - Pause
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options (chance that a new tile is a 4):
  easy   - 5%
  normal - 10%
  hard   - 25%

With --watch, spectators can follow the game over a websocket at
ws://<addr>/watch?session=<id>; the session ID is printed on start.

Examples:
  t2048 play
  t2048 play 2048-3x3
  t2048 play --difficulty hard --seed 42
  t2048 play --watch :8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagWatch, "watch", "", "Serve the spectator feed on this address (e.g. :8080)")
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if appConfig.Platform.TickRate > 0 {
		cfg.TickRate = appConfig.Platform.TickRate
	}
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := t2048.ClassicID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q (run 't2048 list' to see available boards)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	logger := fileLogger()
	t2048.SetLogger(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := tui.GameOptions{
		Store:  store,
		Logger: logger,
	}

	watchAddr := flagWatch
	if watchAddr == "" {
		watchAddr = appConfig.Server.WatchAddr
	}
	if watchAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := websocket.NewHub(logger.WithPrefix("watch"))
		go func() {
			if err := hub.ListenAndServe(ctx, watchAddr); err != nil {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()

		opts.Publisher = hub
		opts.SessionID = uuid.NewString()
		fmt.Printf("Spectate at ws://%s/watch?session=%s\n", displayAddr(watchAddr), opts.SessionID)
	}

	logger.Info("starting game", "board", gameID, "seed", flagSeed)
	if err := tui.Run(game, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// displayAddr fills in localhost for addresses without a host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

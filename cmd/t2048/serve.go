package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/transport/websocket"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeWatch  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the 2048 SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a board picker menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.t2048/ssh_host_key

With --watch, every session can be followed over a websocket; the menu
shows each player their spectator link, and /sessions lists live games.

Examples:
  t2048 serve                           # Listen on :23234 with auto-generated key
  t2048 serve --ssh :2222               # Listen on port 2222
  t2048 serve --host-key ./my_host_key  # Use specific host key
  t2048 serve --watch :8080             # Also serve the spectator feed

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default: from config, :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default: from config)")
	serveCmd.Flags().StringVar(&flagServeWatch, "watch", "", "Serve the spectator feed on this address (e.g. :8080)")
}

func runServe(_ *cobra.Command, _ []string) error {
	srvCfg := appConfig.Server
	if flagSSHAddr != "" {
		srvCfg.SSHAddr = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		srvCfg.IdleTimeoutMinutes = flagIdleTimeout
	}
	if flagServeWatch != "" {
		srvCfg.WatchAddr = flagServeWatch
	}

	logger := newLogger(os.Stderr, "t2048-ssh")
	t2048.SetLogger(logger.WithPrefix("t2048-engine"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := sshServerConfig(srvCfg, appConfig.Platform.TickRate)

	var publisher tui.Publisher
	hubErr := make(chan error, 1)
	if srvCfg.WatchAddr != "" {
		hub := websocket.NewHub(logger.WithPrefix("t2048-watch"))
		publisher = hub
		cfg.WatchURL = fmt.Sprintf("ws://%s/watch", displayAddr(srvCfg.WatchAddr))
		go func() {
			hubErr <- hub.ListenAndServe(ctx, srvCfg.WatchAddr)
		}()
	}

	server, err := tui.NewSSHServer(cfg, store, publisher, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting 2048 SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh %s\n", sshHint(cfg.Address))
	if cfg.WatchURL != "" {
		fmt.Printf("Spectator feed: %s?session=<id>\n", cfg.WatchURL)
	}
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe(ctx)
	stop()

	if publisher != nil {
		// Let the spectator feed finish its shutdown
		select {
		case err := <-hubErr:
			if err != nil {
				logger.Error("spectator feed", "err", err)
			}
		case <-time.After(6 * time.Second):
		}
	}

	if serveErr != nil {
		return fmt.Errorf("server: %w", serveErr)
	}
	return nil
}

// sshServerConfig overlays the configured server settings onto the SSH
// server defaults. Zero values keep the defaults.
func sshServerConfig(srv config.ServerConfig, tickRate int) tui.SSHServerConfig {
	cfg := tui.DefaultSSHServerConfig()
	if srv.SSHAddr != "" {
		cfg.Address = srv.SSHAddr
	}
	cfg.HostKeyPath = srv.HostKey
	if srv.IdleTimeoutMinutes > 0 {
		cfg.IdleTimeout = srv.IdleTimeout()
	}
	if tickRate > 0 {
		cfg.TickRate = tickRate
	}
	return cfg
}

// sshHint formats the ssh command line for addr.
func sshHint(addr string) string {
	host, port := "localhost", "22"
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			if i > 0 {
				host = addr[:i]
			}
			port = addr[i+1:]
			break
		}
	}
	return fmt.Sprintf("%s -p %s", host, port)
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.t2048/ssh_host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// WatchURL is shown in the menu so players can share their spectator link.
	WatchURL string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server hosting one game session per connection.
type SSHServer struct {
	config    SSHServerConfig
	server    *ssh.Server
	store     *storage.Store
	publisher Publisher
	logger    *log.Logger
}

// NewSSHServer creates a new SSH server. store and publisher may be nil.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, publisher Publisher, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}

	srv := &SSHServer{
		config:    cfg,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = filepath.Join(config.DataDir(), "ssh_host_key")
	}
	hostKeyPath = config.ExpandPath(hostKeyPath)

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	sessionID, _ := sess.Context().Value(sessionIDKey).(string)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	model := NewSessionModel(cfg, GameOptions{
		Store:     s.store,
		Publisher: s.publisher,
		SessionID: sessionID,
		Logger:    s.logger.With("user", sess.User()),
	})
	if s.config.WatchURL != "" {
		model.watchHint = fmt.Sprintf("Spectate: %s?session=%s", s.config.WatchURL, sessionID)
		model.menu.footer = model.watchHint
	}

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

type contextKey string

const sessionIDKey contextKey = "t2048-session"

// sessionMiddleware assigns a session ID, which doubles as the spectator
// feed ID, and closes the feed when the connection ends.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		sessionID := uuid.NewString()
		sess.Context().SetValue(sessionIDKey, sessionID)
		s.logger.Info("session assigned", "user", sess.User(), "session", sessionID)

		next(sess)

		if s.publisher != nil {
			s.publisher.Close(sessionID)
		}
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled
// or the listener fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown()
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages a full session flow: menu -> game or scoreboard -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	config     core.RuntimeConfig
	opts       GameOptions
	watchHint  string
	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *GameModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts GameOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		config: cfg,
		opts:   opts,
		menu:   newEmbeddedMenu(opts.Store, cfg, ""),
	}
}

func newEmbeddedMenu(store *storage.Store, cfg core.RuntimeConfig, footer string) MenuModel {
	menu := NewMenuModel(store, cfg)
	menu.embedded = true
	menu.footer = footer
	return menu
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		sb.embedded = true
		m.scoreboard = &sb
		return m, sb.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			// Menu only lists registered games
			m.opts.Logger.Error("cannot create game", "err", err)
			m.menu = newEmbeddedMenu(m.opts.Store, m.config, m.watchHint)
			return m, nil
		}

		m.config.Seed = time.Now().UnixNano()
		gm := NewGameModel(game, m.config, m.opts)
		m.gameModel = &gm
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.scoreboard = nil
		m.menu = newEmbeddedMenu(m.opts.Store, m.config, m.watchHint)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	switch {
	case m.gameModel.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.gameModel.BackToMenu():
		m.gameModel = nil
		// Rebuild so best scores include the game just played
		m.menu = newEmbeddedMenu(m.opts.Store, m.config, m.watchHint)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Spectator events published by the game model.
const (
	EventNewGame  = "new_game"
	EventMove     = "move"
	EventWin      = "win"
	EventGameOver = "game_over"
)

// Publisher receives game state updates for spectators.
// Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(sessionID, event string, payload any)
	Close(sessionID string)
}

// GameOptions holds the optional collaborators of a game model.
type GameOptions struct {
	Store     *storage.Store
	Publisher Publisher
	SessionID string // Spectator session; required when Publisher is set
	Logger    *log.Logger
}

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	publisher  Publisher
	sessionID  string
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool   // Back quits the program instead of returning to a menu
	savedRun   string // Run whose score has been saved
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new game model.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	if opts.Store != nil {
		if best, err := opts.Store.HighScore(game.ID()); err == nil {
			cfg.BestScore = best
		} else {
			opts.Logger.Warn("cannot load best score", "game", game.ID(), "err", err)
		}
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		publisher:  opts.Publisher,
		sessionID:  opts.SessionID,
		logger:     opts.Logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.closeFeed()
		return m, tea.Quit
	}

	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused || m.gameState.Won {
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				m.closeFeed()
				return m, tea.Quit
			}
			// The session keeps its spectator feed for the next game
			return m, nil
		}
		// Esc during play pauses
		action = core.ActionPause
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events without losing the board.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	m.saveScoreOnce()
	if event, ok := spectatorEvent(prev, m.gameState, result.Changed); ok {
		m.publish(event)
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScoreOnce records a finished run's score, once per run.
func (m *GameModel) saveScoreOnce() {
	st := m.gameState
	if !st.GameOver || st.Score <= 0 || st.RunID == m.savedRun {
		return
	}
	m.savedRun = st.RunID

	if m.store == nil {
		return
	}
	_, err := m.store.SaveScore(storage.ScoreRecord{
		GameID:  m.game.ID(),
		RunID:   st.RunID,
		Score:   st.Score,
		MaxTile: st.MaxTile,
		Moves:   st.Moves,
	})
	switch {
	case errors.Is(err, storage.ErrDuplicateRun):
		// Already recorded by an earlier model for this run
	case err != nil:
		m.logger.Error("cannot save score", "game", m.game.ID(), "err", err)
	default:
		m.logger.Info("score saved", "game", m.game.ID(), "score", st.Score, "max_tile", st.MaxTile)
	}
}

// spectatorEvent classifies a state transition. Ticks that change nothing
// produce no event.
func spectatorEvent(prev, next core.GameState, changed bool) (string, bool) {
	switch {
	case next.RunID != prev.RunID:
		return EventNewGame, true
	case next.GameOver && !prev.GameOver:
		return EventGameOver, true
	case next.Won && !prev.Won:
		return EventWin, true
	case changed, next.Paused != prev.Paused:
		return EventMove, true
	}
	return "", false
}

func (m *GameModel) publish(event string) {
	if m.publisher == nil {
		return
	}
	obs, ok := m.game.(registry.Observable)
	if !ok {
		return
	}
	m.publisher.Publish(m.sessionID, event, obs.Observe())
}

func (m *GameModel) closeFeed() {
	if m.publisher != nil {
		m.publisher.Close(m.sessionID)
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.DataDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	model := NewGameModel(game, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

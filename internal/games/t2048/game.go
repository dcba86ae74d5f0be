package t2048

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Game adapts the engine to the platform's tick loop.
type Game struct {
	variant Variant
	cfg     config.T2048Config
	eng     *engine.Engine
	logger  *log.Logger
	tick    uint64

	runID    string
	best     int
	tickRate int

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
	fx       effects
}

// Package-level settings applied on the next Reset
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// configured spawn probability.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to new engines.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Reset loads the configuration, builds a fresh engine and starts a new run.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadT2048(configPath)
	if err != nil {
		logger.Warn("falling back to default config", "err", err)
		cfg = config.DefaultT2048Config()
	}
	g.applyOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", "variant", g.variant.ID, "err", err)
		cfg = config.DefaultT2048Config()
		g.applyOverrides(&cfg)
	}

	ec := cfg.EngineConfig()
	ec.Rand = rand.New(rand.NewSource(rc.Seed))
	ec.Logger = logger.WithPrefix(g.variant.ID)

	eng, err := engine.New(ec)
	if err != nil {
		// Validate and engine.New check the same board rules
		panic(fmt.Sprintf("t2048: engine rejected a validated config: %v", err))
	}

	g.cfg = cfg
	g.eng = eng
	g.logger = logger
	g.tick = 0
	g.best = rc.BestScore
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.paused = false
	g.fx.reset()
	g.newRun()
	g.checkScreenSize()
}

// applyOverrides applies the difficulty preset and the variant's board
// shape on top of a loaded config.
func (g *Game) applyOverrides(cfg *config.T2048Config) {
	if difficultyPreset != "" {
		config.ApplyT2048Preset(cfg, difficultyPreset)
	}
	if g.variant.Size > 0 {
		cfg.Board.Size = g.variant.Size
	}
	if g.variant.WinTile > 0 {
		cfg.Board.WinTile = g.variant.WinTile
	}
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) newRun() {
	g.runID = uuid.NewString()
	g.logger.Info("new run", "variant", g.variant.ID, "run", g.runID)
}

// restart starts a new game on the same engine, continuing its random stream.
func (g *Game) restart() {
	g.eng.NewGame()
	g.paused = false
	g.fx.reset()
	g.newRun()
}

// checkScreenSize checks if the screen is large enough for a compact board.
func (g *Game) checkScreenSize() {
	l := g.layout()
	g.tooSmall = g.screenW < l.boardW || g.screenH < l.totalH
}

// Step advances the game by one tick. At most one move is applied per tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.fx.step()

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	status := g.eng.Status()

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State(), Changed: true}
	}

	if in.Has(core.ActionPause) && status == engine.StatusOngoing {
		g.paused = !g.paused
		return core.StepResult{State: g.State()}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch status {
	case engine.StatusGameOver:
		return core.StepResult{State: g.State()}
	case engine.StatusWin:
		// The win overlay holds input until the player decides.
		if in.Has(core.ActionContinue) {
			g.eng.ContinueAfterWin()
			return core.StepResult{State: g.State(), Changed: true}
		}
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionOf(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	before := g.eng.Snapshot()
	if !g.eng.Move(dir) {
		return core.StepResult{State: g.State()}
	}
	after := g.eng.Snapshot()

	g.fx.start(diffEffects(before, after), max(1, g.tickRate/4))
	g.best = max(g.best, after.Score)

	return core.StepResult{State: g.State(), Changed: true}
}

// moveActions lists the movement actions in priority order.
var moveActions = [...]core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

// directionOf maps the frame's movement action to a direction.
// Up wins over Down wins over Left wins over Right when several are set.
func directionOf(in core.InputFrame) (engine.Direction, bool) {
	for _, a := range moveActions {
		if !in.Has(a) {
			continue
		}
		// Movement actions are named after their direction
		d, err := engine.ParseDirection(a.String())
		return d, err == nil
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	snap := g.eng.Snapshot()
	return core.GameState{
		RunID:    g.runID,
		Score:    snap.Score,
		MaxTile:  snap.MaxTile,
		Moves:    snap.Moves,
		Won:      snap.Status == engine.StatusWin,
		GameOver: snap.Status == engine.StatusGameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

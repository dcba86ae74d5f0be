// Package engine implements the deterministic sliding-tile merge engine
// behind the 2048 game: board state, directional moves, merge scoring,
// tile spawning and win / game-over detection.
//
// An Engine is not safe for concurrent use. Hosts serialize calls.
package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Defaults applied to zero Config fields.
const (
	DefaultSize       = 4
	DefaultWinTile    = 2048
	DefaultSpawn4Prob = 0.10
)

var (
	ErrInvalidSize      = errors.New("engine: board size must be at least 2")
	ErrInvalidWinTile   = errors.New("engine: win tile must be a power of two >= 4")
	ErrInvalidSpawnProb = errors.New("engine: spawn4 probability must be within [0, 1]")
)

// Status is the game progress state.
type Status string

const (
	StatusOngoing  Status = "ongoing"
	StatusWin      Status = "win"
	StatusGameOver Status = "game_over"
)

// Config holds engine construction parameters.
type Config struct {
	Size       int     // Board dimension (0 = DefaultSize)
	WinTile    int     // Tile value that wins the game (0 = DefaultWinTile)
	Spawn4Prob float64 // Probability that a spawned tile is a 4 (0 = DefaultSpawn4Prob)
	Seed       int64   // RNG seed, ignored when Rand is set
	Rand       *rand.Rand
	Logger     *log.Logger // Debug sink; nil discards
}

// Engine owns the board, score, status and identity counter of one game.
type Engine struct {
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger

	board     Board
	nextID    int
	score     int
	moves     int
	status    Status
	continued bool // Win acknowledged; further win checks suppressed
}

// New validates cfg and returns an engine with a fresh game started.
func New(cfg Config) (*Engine, error) {
	if cfg.Size == 0 {
		cfg.Size = DefaultSize
	}
	if cfg.WinTile == 0 {
		cfg.WinTile = DefaultWinTile
	}
	if cfg.Spawn4Prob == 0 {
		cfg.Spawn4Prob = DefaultSpawn4Prob
	}

	if cfg.Size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, cfg.Size)
	}
	if cfg.WinTile < 4 || cfg.WinTile&(cfg.WinTile-1) != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWinTile, cfg.WinTile)
	}
	if cfg.Spawn4Prob < 0 || cfg.Spawn4Prob > 1 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidSpawnProb, cfg.Spawn4Prob)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		cfg:    cfg,
		rng:    rng,
		logger: logger,
	}
	e.NewGame()
	return e, nil
}

// Size returns the board dimension.
func (e *Engine) Size() int {
	return e.cfg.Size
}

// WinTile returns the tile value that wins the game.
func (e *Engine) WinTile() int {
	return e.cfg.WinTile
}

// NewGame clears the board, resets score, status, identities and the
// continuation flag, and spawns two tiles.
func (e *Engine) NewGame() {
	e.board = newBoard(e.cfg.Size)
	e.nextID = 0
	e.score = 0
	e.moves = 0
	e.status = StatusOngoing
	e.continued = false
	e.logger.Debug("new game", "size", e.cfg.Size, "win_tile", e.cfg.WinTile)

	e.spawnTile()
	e.spawnTile()
}

// Move slides the board in direction d.
// Returns false without touching any state when the game is over or when
// no line changes; otherwise spawns one tile and re-evaluates the status.
func (e *Engine) Move(d Direction) bool {
	if e.status == StatusGameOver {
		e.logger.Debug("move rejected", "dir", d, "status", e.status)
		return false
	}
	if !d.Valid() {
		return false
	}

	nextID := e.nextID
	mint := func() int {
		id := nextID
		nextID++
		return id
	}

	board, gained, changed := slide(e.board, d, mint)
	if !changed {
		e.logger.Debug("move did not change the board", "dir", d)
		return false
	}

	e.board = board
	e.nextID = nextID
	e.score += gained
	e.moves++
	e.logger.Debug("move", "dir", d, "gained", gained, "score", e.score)

	e.spawnTile()
	e.updateStatus()
	return true
}

// ContinueAfterWin acknowledges a win: status returns to ongoing and the
// win check stays off until the next NewGame. No-op unless status is win.
//
// The board is re-evaluated right away rather than left ongoing: a win
// that also left the board deadlocked resolves to game over, so hosts see
// the end of the run without needing a move that can never succeed.
func (e *Engine) ContinueAfterWin() {
	if e.status != StatusWin {
		return
	}
	e.continued = true
	e.status = StatusOngoing
	e.logger.Debug("continuing after win", "score", e.score)
	e.updateStatus()
}

// Status returns the current game status.
func (e *Engine) Status() Status {
	return e.status
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// spawnTile places a 2 (or a 4 with probability Spawn4Prob) into a
// uniformly chosen empty cell. Does nothing on a full board.
func (e *Engine) spawnTile() {
	empty := e.board.EmptyCells()
	if len(empty) == 0 {
		e.logger.Debug("no empty cells for new tile")
		return
	}

	p := empty[e.rng.Intn(len(empty))]

	value := 2
	if e.rng.Float64() < e.cfg.Spawn4Prob {
		value = 4
	}

	id := e.nextID
	e.nextID++
	e.board.set(p.Row, p.Col, Cell{Value: value, ID: id})
	e.logger.Debug("spawned tile", "value", value, "row", p.Row, "col", p.Col, "id", id)
}

// updateStatus re-evaluates the status after a successful move.
// Win takes precedence over a simultaneous deadlock.
func (e *Engine) updateStatus() {
	if e.status == StatusGameOver || (e.status == StatusWin && !e.continued) {
		return
	}

	prev := e.status
	switch {
	case !e.continued && e.board.Contains(e.cfg.WinTile):
		e.status = StatusWin
	case e.board.HasEmptyCell(), e.board.HasPossibleMerge():
		e.status = StatusOngoing
	default:
		e.status = StatusGameOver
	}

	if e.status != prev {
		e.logger.Debug("status changed", "from", prev, "to", e.status, "score", e.score)
	}
}

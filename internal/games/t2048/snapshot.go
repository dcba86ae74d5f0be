package t2048

import "github.com/vovakirdan/tui-2048/internal/games/t2048/engine"

// Snapshot captures the complete game state for determinism testing and
// spectators.
type Snapshot struct {
	Tick    uint64          `json:"tick"`
	Variant string          `json:"variant"`
	RunID   string          `json:"run_id"`
	Paused  bool            `json:"paused"`
	Best    int             `json:"best"`
	Engine  engine.Snapshot `json:"engine"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:    g.tick,
		Variant: g.variant.ID,
		RunID:   g.runID,
		Paused:  g.paused,
		Best:    g.best,
		Engine:  g.eng.Snapshot(),
	}
}

// Observe returns the snapshot as a value for spectator feeds.
func (g *Game) Observe() any {
	return g.Snapshot()
}

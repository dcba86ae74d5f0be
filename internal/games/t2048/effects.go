package t2048

import "github.com/vovakirdan/tui-2048/internal/games/t2048/engine"

// Effect is a short-lived highlight attached to a tile identity.
type Effect int

const (
	EffectNone Effect = iota
	EffectSpawned
	EffectMerged
)

// effects tracks highlights produced by the most recent move.
type effects struct {
	byID      map[int]Effect
	remaining int // Ticks left before highlights fade
}

// diffEffects compares two snapshots by tile identity. Tiles created by a
// merge are marked merged; any other identity absent from prev was spawned.
func diffEffects(prev, next engine.Snapshot) map[int]Effect {
	seen := make(map[int]bool, len(prev.Tiles))
	for _, t := range prev.Tiles {
		seen[t.ID] = true
	}

	out := make(map[int]Effect)
	for _, t := range next.Tiles {
		switch {
		case t.Merged:
			out[t.ID] = EffectMerged
		case !seen[t.ID]:
			out[t.ID] = EffectSpawned
		}
	}
	return out
}

func (e *effects) start(byID map[int]Effect, duration int) {
	e.byID = byID
	e.remaining = duration
}

func (e *effects) step() {
	if e.remaining == 0 {
		return
	}
	e.remaining--
	if e.remaining == 0 {
		e.byID = nil
	}
}

func (e *effects) reset() {
	e.byID = nil
	e.remaining = 0
}

func (e *effects) of(id int) Effect {
	return e.byID[id]
}

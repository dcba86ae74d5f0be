package engine

// Snapshot is a read-only copy of the engine state after a command.
type Snapshot struct {
	Size      int    `json:"size"`
	Tiles     []Tile `json:"tiles"` // Row-major order
	Score     int    `json:"score"`
	Status    Status `json:"status"`
	Moves     int    `json:"moves"`
	MaxTile   int    `json:"max_tile"`
	WinTile   int    `json:"win_tile"`
	Continued bool   `json:"continued"`
}

// Snapshot returns a copy of the current state. Mutating the result never
// affects the engine.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Size:      e.cfg.Size,
		Tiles:     e.board.Tiles(),
		Score:     e.score,
		Status:    e.status,
		Moves:     e.moves,
		MaxTile:   e.board.MaxTile(),
		WinTile:   e.cfg.WinTile,
		Continued: e.continued,
	}
}

// Grid returns tile values laid out as a Size×Size matrix, 0 for empty.
func (s Snapshot) Grid() [][]int {
	grid := make([][]int, s.Size)
	for r := range grid {
		grid[r] = make([]int, s.Size)
	}
	for _, t := range s.Tiles {
		grid[t.Row][t.Col] = t.Value
	}
	return grid
}

// TileByID returns the tile with the given identity, if present.
func (s Snapshot) TileByID(id int) (Tile, bool) {
	for _, t := range s.Tiles {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

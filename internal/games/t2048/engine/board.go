package engine

// Cell is a single board position. A zero Value is the empty cell and
// never carries an identity, so value and identity move together.
type Cell struct {
	Value  int
	ID     int
	Merged bool // Created by a merge during the latest move
}

// Empty reports whether the cell holds no tile.
func (c Cell) Empty() bool {
	return c.Value == 0
}

// Tile is a read-only view of an occupied cell.
type Tile struct {
	Value  int  `json:"value"`
	ID     int  `json:"id"`
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Merged bool `json:"merged"`
}

// Point is a grid coordinate.
type Point struct {
	Row, Col int
}

// Board is an n×n grid of cells.
type Board struct {
	size  int
	cells [][]Cell
}

func newBoard(size int) Board {
	cells := make([][]Cell, size)
	for r := range cells {
		cells[r] = make([]Cell, size)
	}
	return Board{size: size, cells: cells}
}

// Size returns the board dimension.
func (b Board) Size() int {
	return b.size
}

// At returns the cell at (row, col).
func (b Board) At(row, col int) Cell {
	return b.cells[row][col]
}

func (b *Board) set(row, col int, c Cell) {
	b.cells[row][col] = c
}

func (b Board) clone() Board {
	out := newBoard(b.size)
	for r := range b.size {
		copy(out.cells[r], b.cells[r])
	}
	return out
}

// Tiles returns all occupied cells in row-major order.
func (b Board) Tiles() []Tile {
	var tiles []Tile
	for r := range b.size {
		for c := range b.size {
			cell := b.cells[r][c]
			if cell.Empty() {
				continue
			}
			tiles = append(tiles, Tile{
				Value:  cell.Value,
				ID:     cell.ID,
				Row:    r,
				Col:    c,
				Merged: cell.Merged,
			})
		}
	}
	return tiles
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func (b Board) EmptyCells() []Point {
	var pts []Point
	for r := range b.size {
		for c := range b.size {
			if b.cells[r][c].Empty() {
				pts = append(pts, Point{Row: r, Col: c})
			}
		}
	}
	return pts
}

// HasEmptyCell returns true if there's at least one empty cell.
func (b Board) HasEmptyCell() bool {
	for r := range b.size {
		for c := range b.size {
			if b.cells[r][c].Empty() {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any two 4-neighbours hold equal values.
func (b Board) HasPossibleMerge() bool {
	for r := range b.size {
		for c := range b.size {
			v := b.cells[r][c].Value
			if v == 0 {
				continue
			}
			if c < b.size-1 && b.cells[r][c+1].Value == v {
				return true
			}
			if r < b.size-1 && b.cells[r+1][c].Value == v {
				return true
			}
		}
	}
	return false
}

// Contains reports whether any tile has exactly the given value.
func (b Board) Contains(value int) bool {
	for r := range b.size {
		for c := range b.size {
			if b.cells[r][c].Value == value {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the maximum tile value on the board.
func (b Board) MaxTile() int {
	maxVal := 0
	for r := range b.size {
		for c := range b.size {
			maxVal = max(maxVal, b.cells[r][c].Value)
		}
	}
	return maxVal
}

// readLine extracts line k in the direction of travel.
func (b Board) readLine(d Direction, k int) []Cell {
	line := make([]Cell, b.size)
	for pos := range b.size {
		r, c := d.travel(k, pos, b.size)
		line[pos] = b.cells[r][c]
	}
	return line
}

// writeLine stores a processed line back using the same traversal as readLine.
func (b *Board) writeLine(d Direction, k int, line []Cell) {
	for pos := range b.size {
		r, c := d.travel(k, pos, b.size)
		b.cells[r][c] = line[pos]
	}
}

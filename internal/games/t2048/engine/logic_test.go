package engine

import (
	"reflect"
	"testing"
)

// cellsOf builds a line with identities assigned left to right from 100.
func cellsOf(values ...int) []Cell {
	line := make([]Cell, len(values))
	for i, v := range values {
		if v != 0 {
			line[i] = Cell{Value: v, ID: 100 + i}
		}
	}
	return line
}

func valuesOf(line []Cell) []int {
	out := make([]int, len(line))
	for i, c := range line {
		out[i] = c.Value
	}
	return out
}

func counter(start int) func() int {
	next := start
	return func() int {
		id := next
		next++
		return id
	}
}

// boardFrom builds a board from a value matrix, numbering identities row-major.
func boardFrom(rows [][]int) Board {
	b := newBoard(len(rows))
	id := 0
	for r, row := range rows {
		for c, v := range row {
			if v != 0 {
				b.set(r, c, Cell{Value: v, ID: id})
				id++
			}
		}
	}
	return b
}

func gridOf(b Board) [][]int {
	out := make([][]int, b.Size())
	for r := range b.Size() {
		out[r] = make([]int, b.Size())
		for c := range b.Size() {
			out[r][c] = b.At(r, c).Value
		}
	}
	return out
}

func TestResolveLine(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
		changed  bool
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
			changed:  true,
		},
		{
			name:     "gap then pair merges first pair only",
			input:    []int{2, 0, 2, 2},
			expected: []int{4, 2, 0, 0},
			score:    4,
			changed:  true,
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			score:    4,
			changed:  true,
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			score:    8,
			changed:  true,
		},
		{
			name:     "no cascade into merged tile",
			input:    []int{4, 4, 8, 0},
			expected: []int{8, 8, 0, 0},
			score:    8,
			changed:  true,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
		},
		{
			name:     "already packed",
			input:    []int{4, 2, 0, 0},
			expected: []int{4, 2, 0, 0},
		},
		{
			name:     "empty row",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
		},
		{
			name:     "single tile slides",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
			changed:  true,
		},
		{
			name:     "values beyond 2048",
			input:    []int{4096, 4096, 0, 2},
			expected: []int{8192, 2, 0, 0},
			score:    8192,
			changed:  true,
		},
		{
			name:     "longer line",
			input:    []int{2, 2, 0, 4, 4, 4},
			expected: []int{4, 8, 4, 0, 0, 0},
			score:    12,
			changed:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolveLine(cellsOf(tt.input...), counter(0))
			if got := valuesOf(res.cells); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("resolveLine(%v) = %v, want %v", tt.input, got, tt.expected)
			}
			if res.score != tt.score {
				t.Errorf("resolveLine(%v) score = %d, want %d", tt.input, res.score, tt.score)
			}
			if res.changed != tt.changed {
				t.Errorf("resolveLine(%v) changed = %v, want %v", tt.input, res.changed, tt.changed)
			}
		})
	}
}

func TestResolveLineIdentities(t *testing.T) {
	// ids: 2@100, 2@102, 8@103
	res := resolveLine(cellsOf(2, 0, 2, 8), counter(7))

	want := []Cell{
		{Value: 4, ID: 7, Merged: true},
		{Value: 8, ID: 103},
		{},
		{},
	}
	if !reflect.DeepEqual(res.cells, want) {
		t.Errorf("resolveLine cells = %+v, want %+v", res.cells, want)
	}
}

func TestResolveLineClearsStaleMergedFlag(t *testing.T) {
	line := []Cell{{}, {Value: 8, ID: 3, Merged: true}, {}, {}}
	res := resolveLine(line, counter(0))

	if res.cells[0].Merged {
		t.Error("slid tile should not keep merged flag from previous move")
	}
	if res.cells[0].ID != 3 {
		t.Errorf("slid tile ID = %d, want 3", res.cells[0].ID)
	}
}

func TestResolveLineEmptyCellsHaveNoIdentity(t *testing.T) {
	res := resolveLine(cellsOf(2, 2, 4, 4), counter(50))
	for i, c := range res.cells {
		if c.Empty() && (c.ID != 0 || c.Merged) {
			t.Errorf("empty cell %d carries identity %+v", i, c)
		}
	}
}

func TestSlideDirections(t *testing.T) {
	start := [][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	tests := []struct {
		dir      Direction
		expected [][]int
		score    int
	}{
		{
			dir: DirLeft,
			expected: [][]int{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
			score: 20,
		},
		{
			dir: DirRight,
			expected: [][]int{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
			score: 20,
		},
		{
			dir: DirUp,
			expected: [][]int{
				{2, 4, 4, 4},
				{4, 0, 2, 0},
				{2, 0, 0, 0},
				{0, 0, 0, 0},
			},
			score: 8,
		},
		{
			dir: DirDown,
			expected: [][]int{
				{0, 0, 0, 0},
				{2, 0, 0, 0},
				{4, 0, 4, 0},
				{2, 4, 2, 4},
			},
			score: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			b := boardFrom(start)
			next, score, changed := slide(b, tt.dir, counter(100))

			if got := gridOf(next); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("slide %s: got\n%v\nwant\n%v", tt.dir, got, tt.expected)
			}
			if score != tt.score {
				t.Errorf("slide %s score = %d, want %d", tt.dir, score, tt.score)
			}
			if !changed {
				t.Errorf("slide %s should report a change", tt.dir)
			}
			if !reflect.DeepEqual(gridOf(b), start) {
				t.Errorf("slide %s mutated its input board", tt.dir)
			}
		})
	}
}

func TestSlideRightMergesFromTheFarEdge(t *testing.T) {
	b := boardFrom([][]int{
		{2, 2, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	next, _, _ := slide(b, DirRight, counter(10))
	want := []int{0, 0, 2, 4}
	got := gridOf(next)[0]
	if !reflect.DeepEqual(got, want) {
		t.Errorf("row after RIGHT = %v, want %v", got, want)
	}

	// The leftmost 2 (id 0) survives untouched; the merged 4 is new.
	if id := next.At(0, 2).ID; id != 0 {
		t.Errorf("surviving tile ID = %d, want 0", id)
	}
	if c := next.At(0, 3); c.ID != 10 || !c.Merged {
		t.Errorf("merged tile = %+v, want ID 10 merged", c)
	}
}

func TestSlideNoChange(t *testing.T) {
	b := boardFrom([][]int{
		{2, 4, 8, 16},
		{4, 8, 16, 32},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	_, score, changed := slide(b, DirLeft, counter(0))
	if changed {
		t.Error("packed rows without pairs should not change on LEFT")
	}
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
}

func TestBoardQueries(t *testing.T) {
	deadlock := boardFrom([][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})
	if deadlock.HasEmptyCell() {
		t.Error("full board reports an empty cell")
	}
	if deadlock.HasPossibleMerge() {
		t.Error("checkerboard reports a possible merge")
	}

	vertical := boardFrom([][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 8},
		{4, 2, 4, 8},
	})
	if !vertical.HasPossibleMerge() {
		t.Error("vertical pair not detected")
	}

	if got := vertical.MaxTile(); got != 8 {
		t.Errorf("MaxTile() = %d, want 8", got)
	}
	if !vertical.Contains(8) || vertical.Contains(16) {
		t.Error("Contains() mismatch")
	}

	sparse := boardFrom([][]int{
		{0, 2},
		{4, 0},
	})
	want := []Point{{Row: 0, Col: 0}, {Row: 1, Col: 1}}
	if got := sparse.EmptyCells(); !reflect.DeepEqual(got, want) {
		t.Errorf("EmptyCells() = %v, want %v", got, want)
	}
	if n := len(sparse.Tiles()); n != 2 {
		t.Errorf("Tiles() returned %d tiles, want 2", n)
	}
}

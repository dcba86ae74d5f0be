package engine

// lineResult is the outcome of resolving a single row or column.
type lineResult struct {
	cells   []Cell
	changed bool
	score   int
}

// resolveLine slides and merges one line toward index 0.
// mint supplies a fresh identity for every tile created by a merge.
//
// Each tile takes part in at most one merge, and a freshly doubled tile is
// never compared against its next neighbour in the same pass.
func resolveLine(line []Cell, mint func() int) lineResult {
	n := len(line)

	// Compact
	packed := make([]Cell, 0, n)
	for _, c := range line {
		if c.Empty() {
			continue
		}
		c.Merged = false
		packed = append(packed, c)
	}

	// Merge pass
	var res lineResult
	merged := make([]bool, len(packed))
	for i := 0; i < len(packed)-1; {
		if packed[i].Value == packed[i+1].Value && !merged[i] && !merged[i+1] {
			v := packed[i].Value * 2
			packed[i] = Cell{Value: v, ID: mint(), Merged: true}
			packed[i+1] = Cell{}
			merged[i] = true
			res.score += v
			i += 2
		} else {
			i++
		}
	}

	// Re-compact and pad
	res.cells = make([]Cell, 0, n)
	for _, c := range packed {
		if !c.Empty() {
			res.cells = append(res.cells, c)
		}
	}
	for len(res.cells) < n {
		res.cells = append(res.cells, Cell{})
	}

	for i := range line {
		if line[i].Value != res.cells[i].Value {
			res.changed = true
			break
		}
	}

	return res
}

// slide applies a move in direction d to a copy of b.
// Returns the new board, score gained, and whether any line changed.
func slide(b Board, d Direction, mint func() int) (Board, int, bool) {
	next := b.clone()
	score := 0
	changed := false

	for k := range next.size {
		res := resolveLine(next.readLine(d, k), mint)
		next.writeLine(d, k, res.cells)
		score += res.score
		changed = changed || res.changed
	}

	return next, score, changed
}

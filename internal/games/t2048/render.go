package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/engine"
)

const (
	cellWidth = 7 // Cell width including the left border
	hudHeight = 3
)

// layout holds the computed board geometry for the current screen.
type layout struct {
	cellH  int // Cell height including the top border
	boardW int
	boardH int
	totalH int // HUD + board + controls line
}

// layout picks tall cells (value on the middle of three rows) when the
// screen allows it and falls back to single-row cells otherwise.
func (g *Game) layout() layout {
	n := engine.DefaultSize
	if g.eng != nil {
		n = g.eng.Size()
	} else if g.variant.Size > 0 {
		n = g.variant.Size
	}

	build := func(cellH int) layout {
		l := layout{cellH: cellH, boardW: n*cellWidth + 1, boardH: n*cellH + 1}
		l.totalH = hudHeight + l.boardH + 1
		return l
	}

	tall := build(4)
	if g.screenH >= tall.totalH {
		return tall
	}
	return build(2)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	snap := g.eng.Snapshot()
	boardX := (g.screenW - l.boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, snap, boardX, l.boardW)
	g.renderBoard(dst, snap, l, boardX, boardY)

	hint := g.Controls()
	hintX := core.Clamp((g.screenW-len(hint))/2, 0, max(g.screenW-1, 0))
	dst.DrawTextColored(hintX, boardY+l.boardH, hint, core.ColorGray)

	g.renderOverlays(dst, snap, boardX+l.boardW/2, boardY+l.boardH/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score, best score and progress line.
func (g *Game) renderHUD(dst *core.Screen, snap engine.Snapshot, boardX, boardW int) {
	title := g.variant.Title
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", snap.Score))

	best := fmt.Sprintf("Best: %d", max(g.best, snap.Score))
	dst.DrawText(max(boardX, boardX+boardW-len(best)), 1, best)

	info := fmt.Sprintf("Max %d  Moves %d  Goal %d", snap.MaxTile, snap.Moves, snap.WinTile)
	if snap.Continued {
		info = fmt.Sprintf("Max %d  Moves %d  Endless", snap.MaxTile, snap.Moves)
	}
	dst.DrawTextColored(boardX+(boardW-len(info))/2, 2, info, core.ColorGray)
}

// renderBoard draws the grid lines and the tiles.
func (g *Game) renderBoard(dst *core.Screen, snap engine.Snapshot, l layout, boardX, boardY int) {
	n := snap.Size

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*l.cellH

			dst.SetColored(px, py, gridJoint(x, y, n), core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < l.cellH; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for _, t := range snap.Tiles {
		interior := core.Rect{
			X: boardX + t.Col*cellWidth + 1,
			Y: boardY + t.Row*l.cellH + 1,
			W: cellWidth - 1,
			H: l.cellH - 1,
		}
		color := core.TileColor(t.Value)
		dst.FillRect(interior, ' ', color)

		switch g.fx.of(t.ID) {
		case EffectMerged:
			dst.SetColored(interior.X, interior.Y, '*', color)
		case EffectSpawned:
			dst.SetColored(interior.X, interior.Y, '+', color)
		}

		val := strconv.Itoa(t.Value)
		cx, cy := interior.Center()
		dst.DrawTextColored(max(interior.X, cx-len(val)/2), cy, val, color)
	}
}

// gridJoint picks the box-drawing rune for grid intersection (x, y).
func gridJoint(x, y, n int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == n:
		return '┐'
	case y == n && x == 0:
		return '└'
	case y == n && x == n:
		return '┘'
	case y == 0:
		return '┬'
	case y == n:
		return '┴'
	case x == 0:
		return '├'
	case x == n:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws pause, win and game over messages.
func (g *Game) renderOverlays(dst *core.Screen, snap engine.Snapshot, centerX, centerY int) {
	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case snap.Status == engine.StatusWin:
		g.drawOverlay(dst, centerX, centerY,
			fmt.Sprintf("You reached %d!", snap.WinTile),
			"C: keep going",
			"R: new game")
	case snap.Status == engine.StatusGameOver:
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Score: %d", snap.Score),
			fmt.Sprintf("Max tile: %d", snap.MaxTile),
			"Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.Rect{W: maxLen + 4, H: len(lines) + 2}
	box.X = centerX - box.W/2
	box.Y = centerY - box.H/2

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | P: Pause | R: New | Q: Quit"
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// tileStyle draws a tile as a solid background with a contrasting value.
func tileStyle(bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Bold(true)
}

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// tileStyles holds the tile backgrounds, 256-color approximations of the
// classic palette.
var tileStyles = map[core.Color]lipgloss.Style{
	core.ColorTile2:     tileStyle("255", "239"),
	core.ColorTile4:     tileStyle("230", "239"),
	core.ColorTile8:     tileStyle("215", "231"),
	core.ColorTile16:    tileStyle("209", "231"),
	core.ColorTile32:    tileStyle("203", "231"),
	core.ColorTile64:    tileStyle("196", "231"),
	core.ColorTile128:   tileStyle("222", "231"),
	core.ColorTile256:   tileStyle("221", "231"),
	core.ColorTile512:   tileStyle("220", "231"),
	core.ColorTile1024:  tileStyle("214", "231"),
	core.ColorTile2048:  tileStyle("178", "231"),
	core.ColorTileSuper: tileStyle("236", "231"),
}

// styleFor returns the style for c, falling back to the default style.
func styleFor(c core.Color) lipgloss.Style {
	styles := colorStyles
	if c.IsTile() {
		styles = tileStyles
	}
	if style, ok := styles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

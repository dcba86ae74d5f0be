package core

// Color represents the style of a screen cell.
// The platform maps each value to a terminal style.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightWhite
	ColorOrange
	ColorGray

	// Tile colors, one per value up to 2048 plus one for anything larger.
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper
)

// TileColor returns the color used to draw a tile of the given value.
func TileColor(value int) Color {
	switch value {
	case 2:
		return ColorTile2
	case 4:
		return ColorTile4
	case 8:
		return ColorTile8
	case 16:
		return ColorTile16
	case 32:
		return ColorTile32
	case 64:
		return ColorTile64
	case 128:
		return ColorTile128
	case 256:
		return ColorTile256
	case 512:
		return ColorTile512
	case 1024:
		return ColorTile1024
	case 2048:
		return ColorTile2048
	default:
		return ColorTileSuper
	}
}

// IsTile reports whether c is one of the tile colors, which platforms
// draw as a background fill rather than a foreground.
func (c Color) IsTile() bool {
	return c >= ColorTile2 && c <= ColorTileSuper
}

package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDirection is returned by ParseDirection for unrecognized input.
var ErrUnknownDirection = errors.New("engine: unknown direction")

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in declaration order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts a name ("up", "L", "right", ...) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// travel maps position pos of line k, read in the direction of travel,
// to grid coordinates on an n×n board.
func (d Direction) travel(k, pos, n int) (row, col int) {
	switch d {
	case DirLeft:
		return k, pos
	case DirRight:
		return k, n - 1 - pos
	case DirUp:
		return pos, k
	default: // DirDown
		return n - 1 - pos, k
	}
}

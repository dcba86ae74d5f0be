package core

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 5, H: 5}

	tests := []struct {
		x, y     int
		expected bool
	}{
		{10, 10, true},  // Top-left corner
		{14, 14, true},  // Bottom-right inside
		{15, 15, false}, // Just outside
		{12, 12, true},  // Center
		{9, 10, false},  // Left of rect
		{10, 9, false},  // Above rect
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	if r.Right() != 40 {
		t.Errorf("Right() = %d, expected 40", r.Right())
	}
	if r.Bottom() != 60 {
		t.Errorf("Bottom() = %d, expected 60", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 25 || cy != 40 {
		t.Errorf("Center() = (%d, %d), expected (25, 40)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.lo, tt.hi, got, tt.expected)
		}
	}
}

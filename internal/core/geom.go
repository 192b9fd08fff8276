// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an axis-aligned area of the screen, used for layout and for
// mapping mouse clicks back to the element drawn there.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Grid lays out n cells of size w x h in rows of at most cols cells,
// centered horizontally inside r. Gap is the spacing between cells.
// Cells that do not fit vertically are still returned; drawing clips them.
func (r Rect) Grid(n, cols, w, h, gap int) []Rect {
	if n <= 0 || cols <= 0 {
		return nil
	}
	cols = Min(cols, n)

	cells := make([]Rect, 0, n)
	for i := 0; i < n; i++ {
		row, col := i/cols, i%cols

		// Rows may be short (last row), center each one on its own width
		inRow := Min(cols, n-row*cols)
		rowW := inRow*w + (inRow-1)*gap
		startX := r.X + (r.W-rowW)/2

		cells = append(cells, NewRect(startX+col*(w+gap), r.Y+row*(h+1), w, h))
	}
	return cells
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}

	if r.Empty() {
		t.Error("20x15 rect should not be empty")
	}
	if !NewRect(0, 0, 0, 3).Empty() {
		t.Error("zero-width rect should be empty")
	}
}

func TestRectGrid(t *testing.T) {
	area := NewRect(0, 5, 80, 20)

	cells := area.Grid(5, 3, 10, 3, 2)
	if len(cells) != 5 {
		t.Fatalf("Grid returned %d cells, expected 5", len(cells))
	}

	// First row: 3 cells, 3*10 + 2*2 = 34 wide, centered in 80
	if cells[0].X != 23 || cells[0].Y != 5 {
		t.Errorf("cells[0] at (%d, %d), expected (23, 5)", cells[0].X, cells[0].Y)
	}
	if cells[2].X != 23+2*12 {
		t.Errorf("cells[2].X = %d, expected %d", cells[2].X, 23+2*12)
	}

	// Second row: 2 cells, 22 wide, centered on its own width
	if cells[3].Y != 9 {
		t.Errorf("cells[3].Y = %d, expected 9", cells[3].Y)
	}
	if cells[3].X != 29 {
		t.Errorf("cells[3].X = %d, expected 29", cells[3].X)
	}

	// No overlaps
	for i := range cells {
		for j := range cells {
			if i == j {
				continue
			}
			cx, cy := cells[i].Center()
			if cells[j].Contains(cx, cy) {
				t.Errorf("cell %d overlaps cell %d", i, j)
			}
		}
	}

	if got := area.Grid(0, 3, 10, 3, 2); got != nil {
		t.Errorf("Grid(0, ...) = %v, expected nil", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
}

package geom

import "testing"

func TestNewRectNormalizes(t *testing.T) {
	r := NewRect(10, 20, 5, 8)
	if r.X0 != 5 || r.Y0 != 8 || r.X1 != 10 || r.Y1 != 20 {
		t.Errorf("expected normalized corners, got %+v", r)
	}
}

func TestArea(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want float64
	}{
		{"unit", Rect{0, 0, 1, 1}, 1},
		{"wide", Rect{0, 0, 10, 2}, 20},
		{"degenerate_line", Rect{0, 0, 10, 0}, 0},
		{"degenerate_point", Rect{5, 5, 5, 5}, 0},
		{"inverted", Rect{10, 10, 0, 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.r.Area(); got != tt.want {
			t.Errorf("%s: Area() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIntersect(t *testing.T) {
	a := Rect{0, 0, 100, 100}
	b := Rect{50, 50, 150, 150}
	got := a.Intersect(b)
	want := Rect{50, 50, 100, 100}
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}
	if got.Area() != 2500 {
		t.Errorf("intersection area = %v, want 2500", got.Area())
	}
}

func TestIntersectDisjoint(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{20, 20, 30, 30}
	got := a.Intersect(b)
	if !got.IsEmpty() {
		t.Errorf("disjoint intersection should be empty, got %+v", got)
	}
	if got.Area() != 0 {
		t.Errorf("disjoint intersection area = %v, want 0", got.Area())
	}
	if a.Intersects(b) {
		t.Error("Intersects should be false for disjoint rects")
	}
}

func TestIntersectTouchingEdge(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{10, 0, 20, 10}
	if a.Intersects(b) {
		t.Error("rects sharing only an edge should not intersect")
	}
}

func TestClampTo(t *testing.T) {
	bounds := Rect{0, 0, 612, 792}
	r := Rect{-50, 700, 900, 1000}
	got := r.ClampTo(bounds)
	want := Rect{0, 700, 612, 792}
	if got != want {
		t.Errorf("ClampTo = %+v, want %+v", got, want)
	}
}

func TestClampToFullyOutside(t *testing.T) {
	bounds := Rect{0, 0, 612, 792}
	r := Rect{1000, 1000, 2000, 2000}
	got := r.ClampTo(bounds)
	if !got.IsEmpty() {
		t.Errorf("fully-outside clamp should be empty, got %+v", got)
	}
	if got.Area() != 0 {
		t.Errorf("fully-outside clamp area = %v, want 0", got.Area())
	}
}

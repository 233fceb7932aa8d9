package geom

import (
	"math"
	"testing"
)

func TestHexagonPath_Vertices(t *testing.T) {
	got := HexagonPath(Size{Width: 160, Height: 200})
	want := []Point{
		{80, 0},
		{150, 50},
		{150, 150},
		{80, 200},
		{10, 150},
		{10, 50},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestInHexagon(t *testing.T) {
	size := Size{Width: 160, Height: 200}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{80, 100}, true},
		{"near top vertex", Point{80, 2}, true},
		{"top-left corner", Point{1, 1}, false},
		{"left padding", Point{5, 100}, false},
		{"right edge inside", Point{149, 100}, true},
		{"bottom-right corner", Point{159, 199}, false},
		{"outside", Point{200, 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InHexagon(size, tt.p); got != tt.want {
				t.Errorf("InHexagon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestInHexagon_EmptySize(t *testing.T) {
	if InHexagon(Size{}, Point{}) {
		t.Fatal("empty size should contain nothing")
	}
}

func TestDistance(t *testing.T) {
	a, b := Point{1, 2}, Point{4, 6}
	if got := DistanceSquared(a, b); got != 25 {
		t.Errorf("DistanceSquared = %g, want 25", got)
	}
	if got := Distance(a, b); math.Abs(got-5) > 1e-12 {
		t.Errorf("Distance = %g, want 5", got)
	}
	if Distance(a, a) != 0 {
		t.Errorf("Distance to self should be 0")
	}
}

func TestLerp_Endpoints(t *testing.T) {
	a := Rect{X: 550, Y: 105, Width: 250, Height: 250}
	b := Rect{Width: 800, Height: 460}
	if Lerp(a, b, 0) != a {
		t.Errorf("Lerp(0) != a")
	}
	if Lerp(a, b, 1) != b {
		t.Errorf("Lerp(1) != b")
	}
	mid := Lerp(a, b, 0.5)
	if mid.Width != 525 || mid.X != 275 {
		t.Errorf("Lerp(0.5) = %v", mid)
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 10, Height: 10}
	if !r.Contains(Point{10, 10}) {
		t.Error("top-left is inside")
	}
	if r.Contains(Point{20, 15}) {
		t.Error("right edge is exclusive")
	}
	if r.Center() != (Point{15, 15}) {
		t.Errorf("Center = %v", r.Center())
	}
}

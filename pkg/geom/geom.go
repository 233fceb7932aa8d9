// Package geom holds the honeycomb geometry: grid placement, centering
// offsets, scrollable content size and the hexagon mask polygon.
//
// Everything here is pure. Coordinates are abstract layout units; hosts
// decide how a unit maps onto pixels or terminal cells.
package geom

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Honeycomb proportions. These reproduce the reference tiling exactly and
// must not be rounded or derived from each other.
const (
	// RowStepFactor is the fraction of a cell height between row origins.
	RowStepFactor = 0.75

	// RowGutter is the fixed vertical gap added to every row step.
	RowGutter = 25.0

	// CenterBias shifts every centering offset down to leave room for the
	// title chrome above the viewport.
	CenterBias = 18.0

	// HexPaddingDivisor gives the horizontal inset of the hexagon's side
	// edges as width/HexPaddingDivisor (an eighth of the width, halved).
	HexPaddingDivisor = 16.0
)

// Point is a position in layout units.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Size is a width/height pair in layout units.
type Size struct {
	Width, Height float64
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFrom builds a rect from an origin and a size.
func RectFrom(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rect's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Center returns the midpoint of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so that adjacent rects never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Offset returns r translated by d.
func (r Rect) Offset(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Bounds returns the rect with the same size at the origin.
func (r Rect) Bounds() Rect { return Rect{Width: r.Width, Height: r.Height} }

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.Width, r.Height)
}

// Lerp interpolates between two rects; t=0 yields a, t=1 yields b exactly.
func Lerp(a, b Rect, t float64) Rect {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y float64) float64 { return x + (y-x)*t }
	return Rect{
		X:      mix(a.X, b.X),
		Y:      mix(a.Y, b.Y),
		Width:  mix(a.Width, b.Width),
		Height: mix(a.Height, b.Height),
	}
}

// DistanceSquared returns the squared Euclidean distance between a and b.
func DistanceSquared(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2)
}

// CenterOffsetFor returns the viewport content offset that centers rect in
// a viewport of the given size, biased down by CenterBias.
func CenterOffsetFor(rect Rect, viewport Size) Point {
	return Point{
		X: rect.X + rect.Width/2 - viewport.Width/2,
		Y: rect.Y + rect.Height/2 - viewport.Height/2 + CenterBias,
	}
}

package geom

// HexagonPath returns the clip polygon of a hexagon cell of the given
// size, in local coordinates, starting at the top vertex and running
// clockwise. The side edges are inset by width/HexPaddingDivisor.
func HexagonPath(size Size) []Point {
	w, h := size.Width, size.Height
	pad := w / HexPaddingDivisor
	return []Point{
		{X: w / 2, Y: 0},
		{X: w - pad, Y: h / 4},
		{X: w - pad, Y: h * 3 / 4},
		{X: w / 2, Y: h},
		{X: pad, Y: h * 3 / 4},
		{X: pad, Y: h / 4},
	}
}

// InHexagon reports whether the local point p falls inside the hexagon
// silhouette of a cell of the given size (even-odd rule).
func InHexagon(size Size, p Point) bool {
	if size.Empty() {
		return false
	}
	return inPolygon(HexagonPath(size), p)
}

func inPolygon(poly []Point, p Point) bool {
	inside := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

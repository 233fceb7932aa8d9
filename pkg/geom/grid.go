package geom

import (
	"fmt"
	"math"
)

// Config describes a honeycomb layout. It is computed once at setup and
// never changes afterwards.
type Config struct {
	Count        int  // number of panels
	Rows         int  // number of rows requested
	CellSize     Size // hexagon cell size
	ViewportSize Size // visible viewport size
}

// ConfigError reports a layout configuration that cannot be placed.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid layout config: %s: %s", e.Field, e.Reason)
}

// PerRow returns floor(Count/Rows), the number of panels in a full row.
// It returns 0 for configurations with no rows.
func (c Config) PerRow() int {
	if c.Rows <= 0 {
		return 0
	}
	return int(math.Floor(float64(c.Count) / float64(c.Rows)))
}

// Validate checks the config before any placement math runs.
func (c Config) Validate() error {
	switch {
	case c.Count <= 0:
		return &ConfigError{Field: "count", Reason: fmt.Sprintf("must be positive, got %d", c.Count)}
	case c.Rows <= 0:
		return &ConfigError{Field: "rows", Reason: fmt.Sprintf("must be positive, got %d", c.Rows)}
	case c.CellSize.Empty():
		return &ConfigError{Field: "cell size", Reason: fmt.Sprintf("must be positive, got %s", c.CellSize)}
	case c.PerRow() < 1:
		return &ConfigError{
			Field:  "rows",
			Reason: fmt.Sprintf("%d rows for %d panels leaves no panel per row", c.Rows, c.Count),
		}
	}
	return nil
}

// Root returns the origin of the first cell. The horizontal term is
// doubled so the first column starts right of center, leaving room for
// the brick-offset rows to shift left.
func (c Config) Root() Point {
	return Point{
		X: (c.ViewportSize.Width/2 - c.CellSize.Width/2) * 2,
		Y: c.ViewportSize.Height/2 - c.CellSize.Height/2,
	}
}

// ContentSize returns the scrollable area: large enough that the first
// and last column and row can each be centered in the viewport.
func (c Config) ContentSize() Size {
	return Size{
		Width:  float64(c.PerRow())*c.CellSize.Width + (c.ViewportSize.Width - c.CellSize.Width),
		Height: float64(c.Rows)*c.CellSize.Height + (c.ViewportSize.Height - c.CellSize.Height),
	}
}

// Cursor walks the honeycomb one cell at a time. The zero value is not
// usable; create one with NewCursor.
type Cursor struct {
	root   Point
	cell   Size
	perRow int
	pos    Point
	row    int // 1-based
	inRow  int // cells emitted in the current row
}

// NewCursor returns a cursor positioned on the first cell of cfg.
func NewCursor(cfg Config) *Cursor {
	root := cfg.Root()
	return &Cursor{
		root:   root,
		cell:   cfg.CellSize,
		perRow: cfg.PerRow(),
		pos:    root,
		row:    1,
	}
}

// Row returns the 0-based row of the next cell.
func (c *Cursor) Row() int { return c.row - 1 }

// Next emits the rect for the current cell and advances. Once a row holds
// perRow cells the cursor drops to the next row: even rows (1-based)
// start half a cell left of the root, odd rows start at the root.
func (c *Cursor) Next() Rect {
	r := RectFrom(c.pos, c.cell)
	c.inRow++
	if c.inRow < c.perRow {
		c.pos.X += c.cell.Width
		return r
	}
	c.row++
	c.inRow = 0
	if c.row%2 == 0 {
		c.pos.X = c.root.X - c.cell.Width/2
	} else {
		c.pos.X = c.root.X
	}
	c.pos.Y += c.cell.Height*RowStepFactor + RowGutter
	return r
}

// PlacePanels returns the home rect of every panel in index order.
func PlacePanels(cfg Config) ([]Rect, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cur := NewCursor(cfg)
	rects := make([]Rect, cfg.Count)
	for i := range rects {
		rects[i] = cur.Next()
	}
	return rects, nil
}

package ui

import (
	"image"
	"image/color"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/Dicklesworthstone/hexview/pkg/geom"
	"github.com/Dicklesworthstone/hexview/pkg/hexagon"
)

// Terminal cells cover a fixed patch of layout space. Each cell shows two
// vertically stacked samples through the upper half block.
const (
	UnitsPerColumn = 10.0
	UnitsPerRow    = 20.0

	halfBlock = "▀"
)

// gridCell is one terminal cell: two color samples or a text rune.
type gridCell struct {
	top, bottom color.RGBA
	text        string // empty for a half block
	skip        bool   // covered by the wide rune to its left
}

// layer is a panel prepared for sampling in one frame.
type layer struct {
	panel *hexagon.Panel
	frame geom.Rect
	thumb image.Image
	solid bool
}

// renderGrid rasterizes the visible part of the content area.
func (m Model) renderGrid(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	off := m.view.ContentOffset()
	layers := m.layers()

	cells := make([][]gridCell, rows)
	for y := range cells {
		cells[y] = make([]gridCell, cols)
		for x := range cells[y] {
			px := off.X + float64(x)*UnitsPerColumn + UnitsPerColumn/2
			py := off.Y + float64(y)*UnitsPerRow
			cells[y][x].top = m.sample(layers, geom.Point{X: px, Y: py + UnitsPerRow/4})
			cells[y][x].bottom = m.sample(layers, geom.Point{X: px, Y: py + 3*UnitsPerRow/4})
		}
	}

	// Titles go bottom to top so the front panel's label wins.
	for i := len(layers) - 1; i >= 0; i-- {
		m.overlayTitle(cells, layers[i], off)
	}
	return m.joinCells(cells)
}

// layers returns the panels front to back with their thumbnails.
func (m Model) layers() []layer {
	order := m.view.ZOrder()
	out := make([]layer, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		p := m.mgr.Panel(order[i])
		if p == nil {
			continue
		}
		l := layer{panel: p, frame: p.Frame(), solid: p.ContentVisible()}
		if !l.solid && p.ThumbnailVisible() {
			l.thumb = p.Thumbnail()
		}
		out = append(out, l)
	}
	return out
}

// sample returns the color at a content-space point. Transparent thumbnail
// pixels outside the hexagon fall through to the panels behind.
func (m Model) sample(layers []layer, pt geom.Point) color.RGBA {
	for _, l := range layers {
		if !l.frame.Contains(pt) {
			continue
		}
		if l.solid {
			return m.theme.Page
		}
		if l.thumb == nil {
			continue
		}
		b := l.thumb.Bounds()
		x := b.Min.X + int((pt.X-l.frame.X)*hexagon.ThumbnailScale)
		y := b.Min.Y + int((pt.Y-l.frame.Y)*hexagon.ThumbnailScale)
		if !(image.Point{X: x, Y: y}).In(b) {
			continue
		}
		c := toRGBA(l.thumb.At(x, y))
		if c.A < 0x80 {
			continue
		}
		c.A = 255
		return c
	}
	return m.theme.Grid
}

// overlayTitle writes the panel title across its middle row, or along the
// top edge for a panel showing live content.
func (m Model) overlayTitle(cells [][]gridCell, l layer, off geom.Point) {
	if l.panel.Content() == nil {
		return
	}
	title := l.panel.Content().Title()
	widthCells := int(l.frame.Width/UnitsPerColumn) - 4
	if title == "" || widthCells < 3 || l.frame.Height < 2*UnitsPerRow {
		return
	}
	title = truncate.StringWithTail(title, uint(widthCells), "…")

	var row, col int
	if l.solid {
		row = int((l.frame.Y - off.Y) / UnitsPerRow)
		col = int((l.frame.X-off.X)/UnitsPerColumn) + 1
	} else {
		c := l.frame.Center()
		row = int((c.Y - off.Y) / UnitsPerRow)
		col = int((c.X-off.X)/UnitsPerColumn) - runewidth.StringWidth(title)/2
	}
	if row < 0 || row >= len(cells) {
		return
	}
	line := cells[row]
	for _, r := range title {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= 0 && col+w <= len(line) {
			line[col].text = string(r)
			line[col].skip = false
			if w == 2 {
				line[col+1].skip = true
			}
		}
		col += w
	}
}

// joinCells turns cells into styled lines, merging runs of equal style.
func (m Model) joinCells(cells [][]gridCell) string {
	r := m.theme.Renderer
	var out strings.Builder
	for y, line := range cells {
		if y > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		var runKey gridCell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := r.NewStyle()
			if runKey.text != "" {
				style = style.Foreground(m.theme.Text).Background(hexColor(runKey.bottom)).Bold(true)
			} else {
				style = style.Foreground(hexColor(runKey.top)).Background(hexColor(runKey.bottom))
			}
			out.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for _, c := range line {
			if c.skip {
				continue
			}
			key := gridCell{top: c.top, bottom: c.bottom}
			glyph := halfBlock
			if c.text != "" {
				bg := mix(c.top, c.bottom)
				key = gridCell{top: bg, bottom: bg, text: "t"}
				glyph = c.text
			}
			if key != runKey {
				flush()
				runKey = key
			}
			run.WriteString(glyph)
		}
		flush()
	}
	return out.String()
}

// Package export writes static images of a placed honeycomb.
package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/hexview/pkg/geom"
	"github.com/Dicklesworthstone/hexview/pkg/hexagon"
)

// GridSnapshotOptions configures a snapshot of the honeycomb.
type GridSnapshotOptions struct {
	Path   string
	Format string // "png" or "svg"; inferred from Path when empty

	Panels      []*hexagon.Panel
	ContentSize geom.Size
	Focused     *hexagon.Panel // outlined when set
	Title       string
	Background  color.Color // defaults to hexagon.DefaultBackground
}

var (
	outlineColor = color.RGBA{R: 0x44, G: 0x47, B: 0x5A, A: 0xFF}
	focusColor   = color.RGBA{R: 0xBD, G: 0x93, B: 0xF9, A: 0xFF}
	titleColor   = color.RGBA{R: 0xF8, G: 0xF8, B: 0xF2, A: 0xFF}
)

// snapshotCell is one panel prepared for drawing, in snapshot pixels.
type snapshotCell struct {
	id      int
	title   string
	rect    image.Rectangle
	image   image.Image
	hexagon []geom.Point
	focused bool
}

type gridScene struct {
	width, height int
	background    color.Color
	title         string
	cells         []snapshotCell
}

// SaveGridSnapshot writes the honeycomb to opts.Path as PNG or SVG.
func SaveGridSnapshot(opts GridSnapshotOptions) error {
	format, err := snapshotFormat(opts.Path, opts.Format)
	if err != nil {
		return err
	}
	scene, err := buildScene(opts)
	if err != nil {
		return err
	}
	return scene.write(opts.Path, format)
}

// SaveGridSnapshots writes the same snapshot to several paths in parallel.
// Each path picks its format from its extension.
func SaveGridSnapshots(paths []string, opts GridSnapshotOptions) error {
	for _, p := range paths {
		if _, err := snapshotFormat(p, ""); err != nil {
			return err
		}
	}
	scene, err := buildScene(opts)
	if err != nil {
		return err
	}
	var g errgroup.Group
	for _, p := range uniquePaths(paths) {
		g.Go(func() error {
			format, _ := snapshotFormat(p, "")
			return scene.write(p, format)
		})
	}
	return g.Wait()
}

// uniquePaths drops repeated paths, keeping first-seen order, so no file
// is written by two goroutines at once.
func uniquePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := filepath.Clean(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

func snapshotFormat(path, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	format = strings.ToLower(format)
	switch format {
	case "png", "svg":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported snapshot format %q (want png or svg)", format)
	}
}

// buildScene renders every thumbnail up front. Panels cache their masked
// thumbnails, so this must not run concurrently with other panel access.
func buildScene(opts GridSnapshotOptions) (*gridScene, error) {
	if len(opts.Panels) == 0 {
		return nil, fmt.Errorf("snapshot: no panels to draw")
	}
	if opts.ContentSize.Empty() {
		return nil, fmt.Errorf("snapshot: empty content size %s", opts.ContentSize)
	}
	// Panels of the first column start right of center and can reach past
	// the scrollable area, so the canvas grows to cover them.
	extent := opts.ContentSize
	for _, p := range opts.Panels {
		home := p.HomeFrame()
		extent.Width = math.Max(extent.Width, home.X+home.Width)
		extent.Height = math.Max(extent.Height, home.Y+home.Height)
	}
	scale := hexagon.ThumbnailScale
	scene := &gridScene{
		width:      int(math.Ceil(extent.Width * scale)),
		height:     int(math.Ceil(extent.Height * scale)),
		background: opts.Background,
		title:      opts.Title,
	}
	if scene.background == nil {
		scene.background = hexagon.DefaultBackground
	}

	for _, p := range opts.Panels {
		home := p.HomeFrame()
		r := image.Rect(
			int(math.Round(home.X*scale)),
			int(math.Round(home.Y*scale)),
			int(math.Round((home.X+home.Width)*scale)),
			int(math.Round((home.Y+home.Height)*scale)),
		)
		cell := snapshotCell{
			id:      p.ID(),
			rect:    r,
			image:   fitImage(p.Thumbnail(), r.Dx(), r.Dy()),
			hexagon: geom.HexagonPath(geom.Size{Width: float64(r.Dx()), Height: float64(r.Dy())}),
			focused: opts.Focused != nil && opts.Focused.ID() == p.ID(),
		}
		if c := p.Content(); c != nil {
			cell.title = c.Title()
		}
		scene.cells = append(scene.cells, cell)
	}
	return scene, nil
}

// fitImage returns img at exactly w x h. A panel that is not at its home
// size has a thumbnail of a different size.
func fitImage(img image.Image, w, h int) image.Image {
	if img == nil {
		return nil
	}
	if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func (s *gridScene) write(path, format string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot: create directory: %w", err)
		}
	}
	switch format {
	case "png":
		return s.savePNG(path)
	default:
		return s.saveSVG(path)
	}
}

func (s *gridScene) savePNG(path string) error {
	dc := gg.NewContext(s.width, s.height)
	dc.SetColor(s.background)
	dc.Clear()

	for _, c := range s.cells {
		if c.image != nil {
			dc.DrawImage(c.image, c.rect.Min.X, c.rect.Min.Y)
		}
		for i, pt := range c.hexagon {
			x, y := float64(c.rect.Min.X)+pt.X, float64(c.rect.Min.Y)+pt.Y
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		if c.focused {
			dc.SetColor(focusColor)
			dc.SetLineWidth(3)
		} else {
			dc.SetColor(outlineColor)
			dc.SetLineWidth(1)
		}
		dc.Stroke()
	}

	if s.title != "" {
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetColor(titleColor)
		dc.DrawString(s.title, 8, 16)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: write png: %w", err)
	}
	return nil
}

func (s *gridScene) saveSVG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create svg: %w", err)
	}
	defer f.Close()

	canvas := svg.New(f)
	canvas.Start(s.width, s.height)
	if s.title != "" {
		canvas.Title(s.title)
	}
	canvas.Rect(0, 0, s.width, s.height, "fill:"+hexColor(s.background))

	for _, c := range s.cells {
		canvas.Group(fmt.Sprintf(`id="panel-%d"`, c.id))
		if c.title != "" {
			canvas.Title(c.title)
		}
		if c.image != nil {
			uri, err := dataURI(c.image)
			if err != nil {
				return err
			}
			canvas.Image(c.rect.Min.X, c.rect.Min.Y, c.rect.Dx(), c.rect.Dy(), uri)
		}
		xs := make([]int, len(c.hexagon))
		ys := make([]int, len(c.hexagon))
		for i, pt := range c.hexagon {
			xs[i] = c.rect.Min.X + int(math.Round(pt.X))
			ys[i] = c.rect.Min.Y + int(math.Round(pt.Y))
		}
		stroke, width := outlineColor, 1
		if c.focused {
			stroke, width = focusColor, 3
		}
		canvas.Polygon(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", hexColor(stroke), width))
		canvas.Gend()
	}

	if s.title != "" {
		canvas.Text(8, 16, s.title, "fill:"+hexColor(titleColor)+";font-family:monospace;font-size:13px")
	}
	canvas.End()
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: write svg: %w", err)
	}
	return nil
}

func dataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("snapshot: encode thumbnail: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

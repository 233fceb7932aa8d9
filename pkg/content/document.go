// Package content provides the documents shown inside hexagon panels.
package content

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/charmbracelet/glamour"
	"golang.org/x/image/font/basicfont"

	"github.com/Dicklesworthstone/hexview/pkg/geom"
)

// PixelsPerUnit is the capture resolution of RenderToImage.
const PixelsPerUnit = 0.5

// Accent colors assigned to documents in load order.
var accents = []color.RGBA{
	{R: 0xBD, G: 0x93, B: 0xF9, A: 0xFF}, // purple
	{R: 0xFF, G: 0x79, B: 0xC6, A: 0xFF}, // pink
	{R: 0x8B, G: 0xE9, B: 0xFD, A: 0xFF}, // cyan
	{R: 0x50, G: 0xFA, B: 0x7B, A: 0xFF}, // green
	{R: 0xFF, G: 0xB8, B: 0x6C, A: 0xFF}, // orange
	{R: 0xF1, G: 0xFA, B: 0x8C, A: 0xFF}, // yellow
	{R: 0xFF, G: 0x55, B: 0x55, A: 0xFF}, // red
}

var (
	pageColor = color.RGBA{R: 0x28, G: 0x2A, B: 0x36, A: 0xFF}
	textColor = color.RGBA{R: 0xF8, G: 0xF8, B: 0xF2, A: 0xFF}
)

// Document is a markdown file presented as panel content.
type Document struct {
	path   string
	title  string
	body   string
	accent color.RGBA
	frame  geom.Rect

	style    string
	rendered map[int]string // glamour output by wrap width
}

// NewDocument builds a document from markdown text. index picks the accent.
func NewDocument(path, body string, index int) *Document {
	d := &Document{
		path:   path,
		accent: accents[index%len(accents)],
		style:  "dark",
	}
	d.setBody(body)
	return d
}

// ReadDocument loads a markdown file from disk.
func ReadDocument(path string, index int) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return NewDocument(path, string(data), index), nil
}

// Reload re-reads the document body. The frame is kept.
func (d *Document) Reload() error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("failed to reload %s: %w", d.path, err)
	}
	d.setBody(string(data))
	return nil
}

func (d *Document) setBody(body string) {
	d.body = body
	d.title = titleOf(d.path, body)
	d.rendered = nil
}

// SetStyle selects the glamour style ("dark", "light", ...).
func (d *Document) SetStyle(style string) {
	if style != d.style {
		d.style = style
		d.rendered = nil
	}
}

func (d *Document) Path() string         { return d.path }
func (d *Document) Title() string        { return d.title }
func (d *Document) Body() string         { return d.body }
func (d *Document) Accent() color.RGBA   { return d.accent }
func (d *Document) Frame() geom.Rect     { return d.frame }
func (d *Document) SetFrame(f geom.Rect) { d.frame = f }

// Render returns the body as styled terminal markdown wrapped at width.
// If glamour fails the raw body is returned alongside the error.
func (d *Document) Render(width int) (string, error) {
	if out, ok := d.rendered[width]; ok {
		return out, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(d.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return d.body, fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(d.body)
	if err != nil {
		return d.body, fmt.Errorf("render %s: %w", d.title, err)
	}
	if d.rendered == nil {
		d.rendered = make(map[int]string)
	}
	d.rendered[width] = out
	return out, nil
}

// RenderToImage draws the document page at its current frame size: an
// accent title bar over the wrapped plain-text body.
func (d *Document) RenderToImage() (image.Image, error) {
	w := int(math.Round(d.frame.Width * PixelsPerUnit))
	h := int(math.Round(d.frame.Height * PixelsPerUnit))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("document %q has empty frame %s", d.title, d.frame)
	}

	face := basicfont.Face7x13
	lineH := float64(face.Height)
	barH := lineH + 10

	dc := gg.NewContext(w, h)
	dc.SetColor(pageColor)
	dc.Clear()

	dc.SetColor(d.accent)
	dc.DrawRectangle(0, 0, float64(w), barH)
	dc.Fill()

	dc.SetFontFace(face)
	dc.SetColor(pageColor)
	dc.DrawStringAnchored(d.title, 8, barH/2, 0, 0.35)

	dc.SetColor(textColor)
	margin := 8.0
	dc.DrawStringWrapped(plainText(d.body), margin, barH+margin, 0, 0, float64(w)-2*margin, 1.3, gg.AlignLeft)
	return dc.Image(), nil
}

// titleOf returns the first level-one heading, or the file name.
func titleOf(path, body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// plainText strips the markdown syntax that reads badly in a bitmap.
func plainText(md string) string {
	var b strings.Builder
	inFence := false
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if !inFence {
			trimmed = strings.TrimLeft(trimmed, "#>")
			trimmed = strings.TrimSpace(trimmed)
			trimmed = strings.NewReplacer("**", "", "__", "", "`", "").Replace(trimmed)
			if strings.HasPrefix(trimmed, "* ") {
				// basicfont is ASCII only.
				trimmed = "- " + trimmed[2:]
			}
		}
		b.WriteString(trimmed)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

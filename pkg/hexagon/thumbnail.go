package hexagon

import (
	"errors"
	"image"
	"image/color"
	"log"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"

	"github.com/Dicklesworthstone/hexview/pkg/geom"
)

// ThumbnailScale is the number of thumbnail pixels per layout unit.
const ThumbnailScale = 0.5

// errEmptyCapture is reported when content renders to a nil or empty image.
var errEmptyCapture = errors.New("content rendered an empty image")

// capture snapshots the live content into the thumbnail. A failed capture
// leaves a placeholder so the panel stays usable.
func (p *Panel) capture() {
	img, err := p.content.RenderToImage()
	if err == nil && (img == nil || img.Bounds().Empty()) {
		err = errEmptyCapture
	}
	if err != nil {
		log.Printf("Warning: thumbnail capture failed for panel %d: %v", p.id, err)
		p.thumbnail = placeholderImage(p.frame.Size(), p.background)
		p.placeholder = true
	} else {
		p.thumbnail = img
		p.placeholder = false
	}
	p.masked.invalidate()
}

// Thumbnail returns the cached screenshot scaled to the current frame and
// clipped to the hexagon silhouette. Pixels outside the hexagon are fully
// transparent. It returns nil before Attach.
func (p *Panel) Thumbnail() image.Image {
	if p.thumbnail == nil {
		return nil
	}
	w := int(math.Round(p.frame.Width * ThumbnailScale))
	h := int(math.Round(p.frame.Height * ThumbnailScale))
	if w <= 0 || h <= 0 {
		return nil
	}
	if img := p.masked.get(w, h); img != nil {
		return img
	}
	title := ""
	if p.content != nil {
		title = p.content.Title()
	}
	img := maskThumbnail(p.thumbnail, w, h, p.background, title)
	p.masked.put(w, h, img)
	return img
}

// maskThumbnail scales src to w x h (aspect fill) and clips it to the
// hexagon mask for that size.
func maskThumbnail(src image.Image, w, h int, bg color.Color, title string) image.Image {
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(scaled, scaled.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.ApproxBiLinear.Scale(scaled, aspectFill(src.Bounds(), w, h), src, src.Bounds(), draw.Over, nil)

	dc := gg.NewContext(w, h)
	tracePath(dc, geom.HexagonPath(geom.Size{Width: float64(w), Height: float64(h)}), 1)
	dc.Clip()
	dc.DrawImage(scaled, 0, 0)

	if title != "" && h >= 40 {
		// Caption band across the middle, like a label over the screenshot.
		bandH := float64(basicfont.Face7x13.Height) + 6
		dc.SetRGBA(0, 0, 0, 0.5)
		dc.DrawRectangle(0, float64(h)/2-bandH/2, float64(w), bandH)
		dc.Fill()
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(title, float64(w)/2, float64(h)/2, 0.5, 0.35)
	}
	return dc.Image()
}

// aspectFill returns the destination rect that covers w x h with src's
// aspect ratio preserved, centered and cropped by the canvas.
func aspectFill(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := float64(src.Dx()), float64(src.Dy())
	scale := math.Max(float64(w)/sw, float64(h)/sh)
	dw, dh := int(math.Ceil(sw*scale)), int(math.Ceil(sh*scale))
	x0, y0 := (w-dw)/2, (h-dh)/2
	return image.Rect(x0, y0, x0+dw, y0+dh)
}

// tracePath adds a closed polygon to dc, scaling each vertex.
func tracePath(dc *gg.Context, pts []geom.Point, scale float64) {
	for i, pt := range pts {
		if i == 0 {
			dc.MoveTo(pt.X*scale, pt.Y*scale)
			continue
		}
		dc.LineTo(pt.X*scale, pt.Y*scale)
	}
	dc.ClosePath()
}

func placeholderImage(size geom.Size, bg color.Color) image.Image {
	w := max(1, int(math.Round(size.Width*ThumbnailScale)))
	h := max(1, int(math.Round(size.Height*ThumbnailScale)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

// maskCache keeps the last masked thumbnail; animation frames mostly ask
// for the same size repeatedly.
type maskCache struct {
	w, h int
	img  image.Image
}

func (c *maskCache) get(w, h int) image.Image {
	if c.img != nil && c.w == w && c.h == h {
		return c.img
	}
	return nil
}

func (c *maskCache) put(w, h int, img image.Image) {
	c.w, c.h, c.img = w, h, img
}

func (c *maskCache) invalidate() { c.img = nil }

package hexagon

import (
	"image"
	"time"

	"github.com/Dicklesworthstone/hexview/pkg/geom"
)

// Viewport is the scrollable container a panel lives in.
type Viewport interface {
	Bounds() geom.Rect
	ContentOffset() geom.Point
	SetContentOffset(offset geom.Point, animated bool)
	SetContentSize(size geom.Size)
	SetScrollEnabled(enabled bool)
	// BringToFront raises the panel with the given id above its siblings.
	BringToFront(id int)
}

// Content is the live view shown inside a panel. A panel lays it out and
// captures it but never owns its lifetime.
type Content interface {
	Title() string
	Frame() geom.Rect
	SetFrame(frame geom.Rect)
	// RenderToImage snapshots the content at its current frame size.
	RenderToImage() (image.Image, error)
}

// Animator runs frame transitions. Animate returns immediately; onFrame
// and onDone are later invoked on the caller's event thread. Starting a
// new animation for the same key supersedes the old one.
type Animator interface {
	Animate(key string, from, to geom.Rect, d time.Duration, onFrame func(geom.Rect), onDone func())
}

// Focuser scrolls the viewport so a panel is centered.
type Focuser interface {
	FocusPanel(p *Panel, animated bool)
}

// Host bundles the collaborators a panel talks to.
type Host struct {
	Viewport Viewport
	Animator Animator
	Focuser  Focuser
}

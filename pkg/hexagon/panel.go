// Package hexagon implements a single honeycomb cell: a content panel that
// idles as a hexagon-masked thumbnail and expands to fill the viewport.
//
// A panel shows a cached screenshot of its content while it is a hexagon
// and while it animates; the live content is only revealed at full size.
// Reframing live content on every animation frame reflows it, so the
// screenshot stands in for it.
package hexagon

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/Dicklesworthstone/hexview/pkg/geom"
)

// TransitionDuration is the expand/collapse animation length.
const TransitionDuration = 125 * time.Millisecond

// DefaultBackground is the panel fill behind thumbnails and placeholders.
var DefaultBackground = color.RGBA{R: 21, G: 21, B: 21, A: 255}

// ErrMissingCenterData is the panic value (wrapped) raised when distance or
// centering data is read before the panel has been placed and attached.
var ErrMissingCenterData = errors.New("center data requested before placement")

// State is the panel's presentation state.
type State int

const (
	StateHexagon State = iota
	StateFullscreen
)

func (s State) String() string {
	switch s {
	case StateHexagon:
		return "hexagon"
	case StateFullscreen:
		return "fullscreen"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Panel is one honeycomb cell.
type Panel struct {
	id   int
	host Host

	frame      geom.Rect // current frame, animated
	homeFrame  geom.Rect // hexagon frame, fixed after placement
	fullFrame  geom.Rect // fullscreen target
	background color.Color

	centerOffset geom.Point
	attached     bool
	distance     float64
	hasDistance  bool

	state         State
	animating     bool
	singleEnabled bool

	content        Content
	thumbnail      image.Image
	placeholder    bool
	thumbVisible   bool
	contentVisible bool

	mask   []geom.Point
	masked *maskCache
}

// New creates a panel in hexagon state at its home frame.
func New(id int, home geom.Rect, host Host) *Panel {
	p := &Panel{
		id:            id,
		host:          host,
		homeFrame:     home,
		background:    DefaultBackground,
		state:         StateHexagon,
		singleEnabled: true,
		thumbVisible:  true,
		masked:        &maskCache{},
	}
	p.resize(home)
	return p
}

// SetBackground changes the fill used behind the thumbnail.
func (p *Panel) SetBackground(c color.Color) {
	p.background = c
	p.masked.invalidate()
}

// Attach binds content into the panel and takes the initial thumbnail.
// The content's current frame is taken as the fullscreen target, so the
// caller sizes it to the viewport first. Attach must be called once.
func (p *Panel) Attach(content Content) {
	cf := content.Frame()
	p.content = content
	p.fullFrame = geom.Rect{Width: cf.Width, Height: cf.Height}
	p.centerOffset = geom.CenterOffsetFor(p.homeFrame, p.fullFrame.Size())
	p.attached = true
	p.UpdateDistance(p.fullFrame.Origin())

	p.resize(p.fullFrame)
	content.SetFrame(p.fullFrame.Bounds())
	p.capture()
	p.resize(p.homeFrame)
	content.SetFrame(p.homeFrame.Bounds())

	p.contentVisible = false
	p.thumbVisible = true
}

// Activate handles a single activation: it centers the panel without
// expanding it. It reports whether a focus request was issued.
func (p *Panel) Activate() bool {
	if !p.singleEnabled || p.state != StateHexagon {
		return false
	}
	p.host.Focuser.FocusPanel(p, true)
	return true
}

// Toggle handles a double activation, expanding a hexagon to fullscreen or
// collapsing it back. State changes immediately; the frame follows the
// animation. Only one panel may be expanded at a time and the caller is
// responsible for not toggling a second one.
func (p *Panel) Toggle() {
	p.mustBeAttached("toggle")
	vp := p.host.Viewport

	var dest geom.Rect
	var collapsed bool
	switch p.state {
	case StateHexagon:
		vp.BringToFront(p.id)
		p.singleEnabled = false
		p.state = StateFullscreen
		dest = p.fullFrame
		p.thumbVisible = false
		p.contentVisible = true
		vp.SetScrollEnabled(false)
		vp.SetContentOffset(p.fullFrame.Origin(), true)
	case StateFullscreen:
		// Live content may have changed since the last capture.
		p.capture()
		p.state = StateHexagon
		dest = p.homeFrame
		p.contentVisible = false
		p.thumbVisible = true
		p.singleEnabled = true
		vp.SetScrollEnabled(true)
		collapsed = true
	}

	p.content.SetFrame(dest.Bounds())
	p.animating = true
	p.host.Animator.Animate(p.animationKey(), p.frame, dest, TransitionDuration, p.resize, func() {
		p.animating = false
		p.resize(dest)
		if collapsed {
			p.host.Focuser.FocusPanel(p, true)
		}
	})
}

// UpdateDistance recomputes the distance from the panel's current visual
// center to center.
func (p *Panel) UpdateDistance(center geom.Point) {
	p.distance = geom.Distance(p.frame.Center(), center)
	p.hasDistance = true
}

// Distance returns the most recently computed distance to the viewport
// center. It panics if no distance has been computed yet.
func (p *Panel) Distance() float64 {
	if !p.hasDistance {
		panic(fmt.Errorf("%w: distance of panel %d", ErrMissingCenterData, p.id))
	}
	return p.distance
}

// CenterOffset returns the content offset that centers this panel. It
// panics before Attach.
func (p *Panel) CenterOffset() geom.Point {
	p.mustBeAttached("center offset")
	return p.centerOffset
}

func (p *Panel) ID() int                       { return p.id }
func (p *Panel) Frame() geom.Rect              { return p.frame }
func (p *Panel) HomeFrame() geom.Rect          { return p.homeFrame }
func (p *Panel) FullscreenFrame() geom.Rect    { return p.fullFrame }
func (p *Panel) State() State                  { return p.state }
func (p *Panel) Content() Content              { return p.content }
func (p *Panel) Animating() bool               { return p.animating }
func (p *Panel) ThumbnailVisible() bool        { return p.thumbVisible }
func (p *Panel) ContentVisible() bool          { return p.contentVisible }
func (p *Panel) SingleActivationEnabled() bool { return p.singleEnabled }
func (p *Panel) Background() color.Color       { return p.background }

// HasThumbnail reports whether the last capture succeeded.
func (p *Panel) HasThumbnail() bool { return p.thumbnail != nil && !p.placeholder }

// Mask returns the hexagon clip polygon for the current frame size.
func (p *Panel) Mask() []geom.Point { return p.mask }

// HitTest reports whether the content-space point lands on the visible
// part of the panel: the hexagon while the thumbnail shows, the whole
// rect while the live content shows.
func (p *Panel) HitTest(pt geom.Point) bool {
	if !p.frame.Contains(pt) {
		return false
	}
	if p.contentVisible {
		return true
	}
	return geom.InHexagon(p.frame.Size(), pt.Sub(p.frame.Origin()))
}

func (p *Panel) String() string {
	return fmt.Sprintf("panel %d (%s) %s", p.id, p.state, p.frame)
}

func (p *Panel) animationKey() string { return fmt.Sprintf("panel/%d", p.id) }

func (p *Panel) mustBeAttached(what string) {
	if !p.attached {
		panic(fmt.Errorf("%w: %s of panel %d", ErrMissingCenterData, what, p.id))
	}
}

// resize moves the panel; the mask only depends on size.
func (p *Panel) resize(frame geom.Rect) {
	sizeChanged := p.mask == nil || frame.Size() != p.frame.Size()
	p.frame = frame
	if sizeChanged {
		p.mask = geom.HexagonPath(frame.Size())
	}
}

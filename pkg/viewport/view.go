// Package viewport is an in-memory scroll view: bounds, content offset,
// content size, z-order of the panels it hosts, drag and deceleration.
//
// It has no rendering of its own; hosts read Offset and ZOrder to draw,
// and feed gestures in through Drag and EndDrag.
package viewport

import (
	"math"
	"slices"
	"time"

	"github.com/Dicklesworthstone/hexview/pkg/geom"
)

// SnapDuration is the length of an animated content offset change.
const SnapDuration = 250 * time.Millisecond

// Deceleration tuning: velocity (units/second) is multiplied by
// DecelerationRate every 1/60 s and motion stops below MinVelocity.
const (
	DecelerationRate = 0.85
	MinVelocity      = 20.0
)

const offsetAnimationKey = "viewport"

// Events are the scroll notifications a View emits. Nil funcs are skipped.
type Events struct {
	Scroll            func(offset geom.Point)
	DragEnded         func(willDecelerate bool)
	DecelerationEnded func()
}

// Animator is the subset of anim.Timeline used for offset animations.
type Animator interface {
	Animate(key string, from, to geom.Rect, d time.Duration, onFrame func(geom.Rect), onDone func())
}

// View is a scrollable viewport.
type View struct {
	bounds        geom.Rect
	offset        geom.Point
	contentSize   geom.Size
	scrollEnabled bool
	zorder        []int

	animator Animator
	events   Events

	snapping     bool
	snapTarget   geom.Point
	dragging     bool
	decelerating bool
	velocity     geom.Point
	lastTick     time.Time
}

// New creates a view with the given visible size. Offset animations are
// scheduled on animator.
func New(size geom.Size, animator Animator) *View {
	return &View{
		bounds:        geom.Rect{Width: size.Width, Height: size.Height},
		scrollEnabled: true,
		animator:      animator,
	}
}

// SetEvents installs the scroll listener.
func (v *View) SetEvents(e Events) { v.events = e }

func (v *View) Bounds() geom.Rect          { return v.bounds }
func (v *View) ContentOffset() geom.Point  { return v.offset }
func (v *View) ContentSize() geom.Size     { return v.contentSize }
func (v *View) ScrollEnabled() bool        { return v.scrollEnabled }
func (v *View) Decelerating() bool         { return v.decelerating }
func (v *View) Snapping() bool             { return v.snapping }
func (v *View) SetContentSize(s geom.Size) { v.contentSize = s }

// SetScrollEnabled toggles user scrolling. Disabling it stops any drag or
// deceleration in progress; programmatic offsets still apply.
func (v *View) SetScrollEnabled(enabled bool) {
	v.scrollEnabled = enabled
	if !enabled {
		v.dragging = false
		v.decelerating = false
		v.velocity = geom.Point{}
	}
}

// VisibleRect returns the part of the content currently shown.
func (v *View) VisibleRect() geom.Rect {
	return geom.RectFrom(v.offset, v.bounds.Size())
}

// SetContentOffset moves the content. Programmatic offsets are not
// clamped, so a panel near the content edge can still be centered.
func (v *View) SetContentOffset(offset geom.Point, animated bool) {
	v.decelerating = false
	v.velocity = geom.Point{}
	if !animated || v.animator == nil {
		v.cancelSnap()
		v.setOffset(offset)
		return
	}
	if offset == v.offset || (v.snapping && offset == v.snapTarget) {
		return
	}
	to := geom.RectFrom(offset, geom.Size{})
	v.snapping = true
	v.snapTarget = offset
	v.animator.Animate(offsetAnimationKey, v.offsetRect(), to, SnapDuration, func(r geom.Rect) {
		v.setOffset(r.Origin())
	}, func() {
		v.snapping = false
	})
}

// AddSubview appends a panel id on top of the z-order.
func (v *View) AddSubview(id int) {
	v.zorder = append(v.zorder, id)
}

// BringToFront moves id to the top of the z-order.
func (v *View) BringToFront(id int) {
	if i := slices.Index(v.zorder, id); i >= 0 {
		v.zorder = append(v.zorder[:i], v.zorder[i+1:]...)
	}
	v.zorder = append(v.zorder, id)
}

// ZOrder returns panel ids from back to front.
func (v *View) ZOrder() []int { return v.zorder }

// Drag scrolls by delta as part of a user drag. The offset is clamped to
// the content. Drags are ignored while scrolling is disabled.
func (v *View) Drag(delta geom.Point) {
	if !v.scrollEnabled {
		return
	}
	if !v.dragging {
		v.cancelSnap()
	}
	v.dragging = true
	v.decelerating = false
	v.setOffset(v.clamp(v.offset, v.offset.Add(delta)))
}

// EndDrag finishes a drag. A velocity above MinVelocity starts
// deceleration, otherwise the drag ends in place.
func (v *View) EndDrag(velocity geom.Point, now time.Time) {
	if !v.dragging {
		return
	}
	v.dragging = false
	decelerate := math.Hypot(velocity.X, velocity.Y) > MinVelocity
	if decelerate {
		v.decelerating = true
		v.velocity = velocity
		v.lastTick = now
	}
	if v.events.DragEnded != nil {
		v.events.DragEnded(decelerate)
	}
}

// Tick advances deceleration to now. It returns whether the view is still
// moving on its own.
func (v *View) Tick(now time.Time) bool {
	if !v.decelerating {
		return false
	}
	dt := now.Sub(v.lastTick).Seconds()
	v.lastTick = now
	if dt <= 0 {
		return true
	}
	next := v.clamp(v.offset, v.offset.Add(geom.Point{X: v.velocity.X * dt, Y: v.velocity.Y * dt}))
	decay := math.Pow(DecelerationRate, dt*60)
	v.velocity = geom.Point{X: v.velocity.X * decay, Y: v.velocity.Y * decay}
	hitEdge := next == v.offset
	v.setOffset(next)

	if hitEdge || math.Hypot(v.velocity.X, v.velocity.Y) < MinVelocity {
		v.decelerating = false
		v.velocity = geom.Point{}
		if v.events.DecelerationEnded != nil {
			v.events.DecelerationEnded()
		}
		return false
	}
	return true
}

// MaxOffset returns the largest offset a drag can reach.
func (v *View) MaxOffset() geom.Point {
	return geom.Point{
		X: math.Max(0, v.contentSize.Width-v.bounds.Width),
		Y: math.Max(0, v.contentSize.Height-v.bounds.Height),
	}
}

// clamp limits a user-driven move from prev to p. Snaps may leave the
// offset outside the draggable range; the range then stretches to include
// prev so the next drag does not jump.
func (v *View) clamp(prev, p geom.Point) geom.Point {
	m := v.MaxOffset()
	return geom.Point{
		X: math.Min(math.Max(p.X, math.Min(0, prev.X)), math.Max(m.X, prev.X)),
		Y: math.Min(math.Max(p.Y, math.Min(0, prev.Y)), math.Max(m.Y, prev.Y)),
	}
}

// cancelSnap supersedes an in-flight offset animation with a no-op one.
func (v *View) cancelSnap() {
	if v.snapping {
		v.snapping = false
		v.animator.Animate(offsetAnimationKey, v.offsetRect(), v.offsetRect(), 0, nil, nil)
	}
}

func (v *View) offsetRect() geom.Rect { return geom.RectFrom(v.offset, geom.Size{}) }

func (v *View) setOffset(p geom.Point) {
	v.offset = p
	if v.events.Scroll != nil {
		v.events.Scroll(p)
	}
}

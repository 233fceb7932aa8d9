package hexagon

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/Dicklesworthstone/hexview/pkg/geom"
)

// ── fakes ───────────────────────────────────────────────────────────────────

type fakeViewport struct {
	bounds        geom.Rect
	offset        geom.Point
	animatedSets  int
	scrollEnabled bool
	front         []int
}

func (v *fakeViewport) Bounds() geom.Rect         { return v.bounds }
func (v *fakeViewport) ContentOffset() geom.Point { return v.offset }
func (v *fakeViewport) SetContentOffset(p geom.Point, animated bool) {
	v.offset = p
	if animated {
		v.animatedSets++
	}
}
func (v *fakeViewport) SetContentSize(geom.Size) {}
func (v *fakeViewport) SetScrollEnabled(on bool) { v.scrollEnabled = on }
func (v *fakeViewport) BringToFront(id int)      { v.front = append(v.front, id) }

type pendingAnim struct {
	key      string
	from, to geom.Rect
	d        time.Duration
	onFrame  func(geom.Rect)
	onDone   func()
}

type fakeAnimator struct {
	pending []*pendingAnim
}

func (a *fakeAnimator) Animate(key string, from, to geom.Rect, d time.Duration, onFrame func(geom.Rect), onDone func()) {
	a.pending = append(a.pending, &pendingAnim{key: key, from: from, to: to, d: d, onFrame: onFrame, onDone: onDone})
}

// finish plays every pending animation through its midpoint and end.
func (a *fakeAnimator) finish() {
	for len(a.pending) > 0 {
		an := a.pending[0]
		a.pending = a.pending[1:]
		an.onFrame(geom.Lerp(an.from, an.to, 0.5))
		an.onFrame(an.to)
		an.onDone()
	}
}

type fakeFocuser struct {
	focused []int
}

func (f *fakeFocuser) FocusPanel(p *Panel, animated bool) {
	f.focused = append(f.focused, p.ID())
}

type fakeContent struct {
	title    string
	frame    geom.Rect
	renders  int
	fail     bool
	fill     color.Color
	captured []geom.Size
}

func (c *fakeContent) Title() string        { return c.title }
func (c *fakeContent) Frame() geom.Rect     { return c.frame }
func (c *fakeContent) SetFrame(f geom.Rect) { c.frame = f }
func (c *fakeContent) RenderToImage() (image.Image, error) {
	c.renders++
	c.captured = append(c.captured, c.frame.Size())
	if c.fail {
		return nil, errors.New("capture failed")
	}
	img := image.NewRGBA(image.Rect(0, 0, int(c.frame.Width/4), int(c.frame.Height/4)))
	fill := c.fill
	if fill == nil {
		fill = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	}
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			img.Set(x, y, fill)
		}
	}
	return img, nil
}

type fixture struct {
	vp      *fakeViewport
	anim    *fakeAnimator
	focus   *fakeFocuser
	content *fakeContent
	panel   *Panel
}

var (
	testViewport = geom.Rect{Width: 800, Height: 460}
	testHome     = geom.Rect{X: 550, Y: 105, Width: 250, Height: 250}
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		vp:      &fakeViewport{bounds: testViewport, scrollEnabled: true},
		anim:    &fakeAnimator{},
		focus:   &fakeFocuser{},
		content: &fakeContent{title: "Doc", frame: testViewport},
	}
	f.panel = New(3, testHome, Host{Viewport: f.vp, Animator: f.anim, Focuser: f.focus})
	f.panel.Attach(f.content)
	return f
}

// ── tests ───────────────────────────────────────────────────────────────────

func TestAttach_CapturesOnceAtFullscreenSize(t *testing.T) {
	f := newFixture(t)
	p := f.panel

	if f.content.renders != 1 {
		t.Fatalf("expected exactly one capture, got %d", f.content.renders)
	}
	if f.content.captured[0] != testViewport.Size() {
		t.Errorf("captured at %v, want fullscreen %v", f.content.captured[0], testViewport.Size())
	}
	if p.Frame() != testHome {
		t.Errorf("frame after attach = %v, want home %v", p.Frame(), testHome)
	}
	if p.FullscreenFrame() != testViewport {
		t.Errorf("fullscreen target = %v, want %v", p.FullscreenFrame(), testViewport)
	}
	if !p.ThumbnailVisible() || p.ContentVisible() {
		t.Errorf("only the thumbnail should be visible after attach")
	}
	if p.State() != StateHexagon {
		t.Errorf("state = %v, want hexagon", p.State())
	}
	if got := f.content.Frame(); got != testHome.Bounds() {
		t.Errorf("content frame = %v, want cell bounds", got)
	}
}

func TestAttach_CenterOffsetAndInitialDistance(t *testing.T) {
	p := newFixture(t).panel

	if want := geom.CenterOffsetFor(testHome, testViewport.Size()); p.CenterOffset() != want {
		t.Errorf("CenterOffset = %v, want %v", p.CenterOffset(), want)
	}
	if want := geom.Distance(testHome.Center(), geom.Point{}); p.Distance() != want {
		t.Errorf("Distance = %g, want %g (from content origin)", p.Distance(), want)
	}
}

func TestToggle_ExpandThenCollapseRestoresHome(t *testing.T) {
	f := newFixture(t)
	p := f.panel

	p.Toggle()
	if p.State() != StateFullscreen {
		t.Fatalf("state not updated at issuance: %v", p.State())
	}
	if !p.Animating() {
		t.Errorf("expected animating after toggle")
	}
	if p.SingleActivationEnabled() {
		t.Errorf("single activation must be disabled while expanded")
	}
	if f.vp.scrollEnabled {
		t.Errorf("viewport scrolling must be disabled while expanded")
	}
	if len(f.vp.front) != 1 || f.vp.front[0] != 3 {
		t.Errorf("panel not brought to front: %v", f.vp.front)
	}
	if p.ThumbnailVisible() || !p.ContentVisible() {
		t.Errorf("live content should replace the thumbnail on expand")
	}
	if an := f.anim.pending[0]; an.d != TransitionDuration || an.to != testViewport {
		t.Errorf("expand animation = %v over %v", an.to, an.d)
	}
	f.anim.finish()
	if p.Frame() != testViewport {
		t.Errorf("frame after expand = %v, want %v", p.Frame(), testViewport)
	}
	if len(f.focus.focused) != 0 {
		t.Errorf("expand must not refocus, got %v", f.focus.focused)
	}

	p.Toggle()
	if p.State() != StateHexagon {
		t.Fatalf("state = %v after second toggle", p.State())
	}
	if f.content.renders != 2 {
		t.Errorf("collapse should recapture before animating, renders=%d", f.content.renders)
	}
	if !p.SingleActivationEnabled() || !f.vp.scrollEnabled {
		t.Errorf("collapse should re-enable single activation and scrolling")
	}
	if !p.ThumbnailVisible() || p.ContentVisible() {
		t.Errorf("thumbnail should replace live content on collapse")
	}
	f.anim.finish()

	if p.Frame() != p.HomeFrame() || p.Frame() != testHome {
		t.Fatalf("frame = %v, want home %v bit-exact", p.Frame(), testHome)
	}
	if p.Animating() {
		t.Errorf("animation flag not cleared")
	}
	if len(f.focus.focused) != 1 || f.focus.focused[0] != 3 {
		t.Errorf("collapse completion should refocus the panel, got %v", f.focus.focused)
	}
}

func TestActivate(t *testing.T) {
	f := newFixture(t)
	p := f.panel

	if !p.Activate() {
		t.Fatal("Activate in hexagon state should request focus")
	}
	if p.State() != StateHexagon {
		t.Errorf("Activate must not change state")
	}

	p.Toggle()
	if p.Activate() {
		t.Errorf("Activate must be ignored while expanded")
	}
	if len(f.focus.focused) != 1 {
		t.Errorf("focus requests = %v, want 1", f.focus.focused)
	}
}

func TestCaptureFailure_FallsBackToPlaceholder(t *testing.T) {
	vp := &fakeViewport{bounds: testViewport}
	content := &fakeContent{title: "Broken", frame: testViewport, fail: true}
	p := New(0, testHome, Host{Viewport: vp, Animator: &fakeAnimator{}, Focuser: &fakeFocuser{}})
	p.Attach(content)

	if p.HasThumbnail() {
		t.Errorf("HasThumbnail should be false after failed capture")
	}
	if p.Thumbnail() == nil {
		t.Fatal("expected placeholder thumbnail")
	}

	content.fail = false
	p.Toggle()
	p.Toggle()
	if !p.HasThumbnail() {
		t.Errorf("next successful capture should replace the placeholder")
	}
}

func TestThumbnail_MaskedToHexagon(t *testing.T) {
	p := newFixture(t).panel
	img := p.Thumbnail()
	if img == nil {
		t.Fatal("nil thumbnail")
	}
	b := img.Bounds()
	wantW, wantH := int(testHome.Width*ThumbnailScale), int(testHome.Height*ThumbnailScale)
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Fatalf("thumbnail size %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner outside the hexagon should be transparent")
	}
	if _, _, _, a := img.At(wantW/2, wantH/4).RGBA(); a == 0 {
		t.Errorf("inside the hexagon should be opaque")
	}
	if p.Thumbnail() != img {
		t.Errorf("same size should hit the cache")
	}
}

func TestMask_FollowsSize(t *testing.T) {
	f := newFixture(t)
	p := f.panel
	before := p.Mask()
	p.Toggle()
	f.anim.finish()
	after := p.Mask()
	if after[1].X == before[1].X {
		t.Errorf("mask not recomputed on resize")
	}
	want := geom.HexagonPath(testViewport.Size())
	for i := range want {
		if after[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, after[i], want[i])
		}
	}
}

func TestHitTest(t *testing.T) {
	p := newFixture(t).panel
	if !p.HitTest(testHome.Center()) {
		t.Errorf("center should hit")
	}
	if p.HitTest(testHome.Origin()) {
		t.Errorf("top-left corner is outside the hexagon")
	}
}

func TestMissingCenterData_Panics(t *testing.T) {
	p := New(7, testHome, Host{})
	for name, fn := range map[string]func(){
		"distance":      func() { p.Distance() },
		"center offset": func() { p.CenterOffset() },
		"toggle":        func() { p.Toggle() },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrMissingCenterData) {
					t.Fatalf("expected ErrMissingCenterData panic, got %v", r)
				}
				if !strings.Contains(err.Error(), "panel 7") {
					t.Errorf("panic should name the panel: %v", err)
				}
			}()
			fn()
		})
	}
}

func TestStateString(t *testing.T) {
	if StateHexagon.String() != "hexagon" || StateFullscreen.String() != "fullscreen" {
		t.Errorf("unexpected state names")
	}
}

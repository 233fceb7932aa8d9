// Package layout places hexagon panels on the honeycomb and keeps the
// panel nearest the viewport center focused.
package layout

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Dicklesworthstone/hexview/pkg/geom"
	"github.com/Dicklesworthstone/hexview/pkg/hexagon"
)

// Viewport is the scroll container the manager drives.
type Viewport interface {
	hexagon.Viewport
	AddSubview(id int)
	ZOrder() []int
}

// Ranking is the panel set ordered by ascending distance to the viewport
// center, ties broken by creation order.
type Ranking []*hexagon.Panel

// Focused returns the nearest panel, or nil for an empty ranking.
func (r Ranking) Focused() *hexagon.Panel {
	if len(r) == 0 {
		return nil
	}
	return r[0]
}

// IDs returns the panel ids in rank order.
func (r Ranking) IDs() []int {
	ids := make([]int, len(r))
	for i, p := range r {
		ids[i] = p.ID()
	}
	return ids
}

// Manager owns the panels and the focus ranking. All methods must be
// called from the single goroutine that delivers viewport events.
type Manager struct {
	viewport Viewport
	animator hexagon.Animator
	config   geom.Config

	panels  []*hexagon.Panel // creation order
	ranking Ranking
}

// New creates a manager for the given viewport. Panel transitions are
// scheduled on animator.
func New(viewport Viewport, animator hexagon.Animator) *Manager {
	return &Manager{viewport: viewport, animator: animator}
}

// Setup places one panel per content item, attaches the content, sizes the
// scrollable area and centers panel 0 without animation. An invalid config
// is rejected before any panel is created.
func (m *Manager) Setup(contents []hexagon.Content, cfg geom.Config) error {
	if len(m.panels) > 0 {
		return fmt.Errorf("layout already set up with %d panels", len(m.panels))
	}
	if cfg.Count != len(contents) {
		return &geom.ConfigError{
			Field:  "count",
			Reason: fmt.Sprintf("config has %d panels but %d contents were given", cfg.Count, len(contents)),
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m.config = cfg
	host := hexagon.Host{Viewport: m.viewport, Animator: m.animator, Focuser: m}
	bounds := m.viewport.Bounds()
	cursor := geom.NewCursor(cfg)
	panels := make([]*hexagon.Panel, 0, len(contents))
	for i, c := range contents {
		p := hexagon.New(i, cursor.Next(), host)
		c.SetFrame(bounds)
		p.Attach(c)
		m.viewport.AddSubview(p.ID())
		panels = append(panels, p)
	}
	m.panels = panels
	m.ranking = make(Ranking, len(panels))
	copy(m.ranking, panels)

	m.viewport.SetContentSize(cfg.ContentSize())
	m.FocusPanel(m.panels[0], false)
	return nil
}

// OnScroll is called for every scroll sample. It recomputes each panel's
// distance to the visual center and returns a copy of the new ranking.
func (m *Manager) OnScroll(offset geom.Point) Ranking {
	if len(m.ranking) == 0 {
		return m.ranking
	}
	center := m.viewport.Bounds().Center().Add(offset)
	for _, p := range m.ranking {
		p.UpdateDistance(center)
	}
	slices.SortStableFunc(m.ranking, func(a, b *hexagon.Panel) int {
		if c := cmp.Compare(a.Distance(), b.Distance()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
	return slices.Clone(m.ranking)
}

// OnScrollSettled snaps the viewport to the nearest panel. Calling it again
// without an intervening scroll targets the same offset.
func (m *Manager) OnScrollSettled() {
	if p := m.ranking.Focused(); p != nil {
		m.FocusPanel(p, true)
	}
}

// OnDragEnded settles immediately unless the viewport keeps decelerating.
func (m *Manager) OnDragEnded(willDecelerate bool) {
	if !willDecelerate {
		m.OnScrollSettled()
	}
}

// OnDecelerationEnded settles once the viewport comes to rest.
func (m *Manager) OnDecelerationEnded() {
	m.OnScrollSettled()
}

// FocusPanel scrolls the viewport so p is centered.
func (m *Manager) FocusPanel(p *hexagon.Panel, animated bool) {
	target := p.CenterOffset()
	if animated && m.viewport.ContentOffset() == target {
		return
	}
	m.viewport.SetContentOffset(target, animated)
}

// Config returns the layout the panels were placed with.
func (m *Manager) Config() geom.Config { return m.config }

// Panels returns the panels in creation order.
func (m *Manager) Panels() []*hexagon.Panel { return m.panels }

// Ranking returns a copy of the ranking from the latest scroll sample.
func (m *Manager) Ranking() Ranking { return slices.Clone(m.ranking) }

// Focused returns the panel nearest the viewport center.
func (m *Manager) Focused() *hexagon.Panel { return m.ranking.Focused() }

// Panel returns the panel with the given id, or nil.
func (m *Manager) Panel(id int) *hexagon.Panel {
	if id < 0 || id >= len(m.panels) {
		return nil
	}
	return m.panels[id]
}

// Fullscreen returns the expanded panel, or nil when all are hexagons.
func (m *Manager) Fullscreen() *hexagon.Panel {
	for _, p := range m.panels {
		if p.State() == hexagon.StateFullscreen {
			return p
		}
	}
	return nil
}

// Busy reports whether any panel is expanded or mid-transition. Embedders
// use it to keep a second panel from being toggled.
func (m *Manager) Busy() bool {
	for _, p := range m.panels {
		if p.State() == hexagon.StateFullscreen || p.Animating() {
			return true
		}
	}
	return false
}

// PanelAt returns the topmost panel whose visible shape contains the
// content-space point, or nil.
func (m *Manager) PanelAt(pt geom.Point) *hexagon.Panel {
	order := m.viewport.ZOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if p := m.Panel(order[i]); p != nil && p.HitTest(pt) {
			return p
		}
	}
	return nil
}

// Package ui hosts the honeycomb in a bubbletea program.
package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/hexview/pkg/anim"
	"github.com/Dicklesworthstone/hexview/pkg/config"
	"github.com/Dicklesworthstone/hexview/pkg/content"
	"github.com/Dicklesworthstone/hexview/pkg/geom"
	"github.com/Dicklesworthstone/hexview/pkg/hexagon"
	"github.com/Dicklesworthstone/hexview/pkg/layout"
	scroll "github.com/Dicklesworthstone/hexview/pkg/viewport"
)

// Input timing and step sizes, in layout units where they are distances.
const (
	FrameInterval     = time.Second / 60
	DragIdleTimeout   = 150 * time.Millisecond
	DoubleClickWindow = 400 * time.Millisecond

	dragStep   = 4 * UnitsPerColumn
	flingSpeed = 2400.0
	wheelStep  = 2 * UnitsPerRow
)

type frameMsg time.Time

// dragIdleMsg fires after a key drag; a stale seq means the drag continued.
type dragIdleMsg struct{ seq int }

// DocumentChangedMsg reports that the file behind a panel changed on disk.
type DocumentChangedMsg struct{ Index int }

type clickRecord struct {
	panel int
	at    time.Time
}

// Options configure NewModel.
type Options struct {
	Config   config.Config
	Width    int // terminal columns
	Height   int // terminal rows, including the status bar
	Renderer *lipgloss.Renderer
	Clock    func() time.Time
}

// Model is the bubbletea model for the honeycomb.
type Model struct {
	docs  []*content.Document
	theme Theme
	clock func() time.Time

	timeline *anim.Timeline
	view     *scroll.View
	mgr      *layout.Manager

	reader    viewport.Model
	readerDoc int // document shown in reader, -1 when none

	help HelpOverlayModel
	jump JumpModel

	width, height int
	ticking       bool
	dragging      bool
	dragSeq       int
	lastClick     clickRecord

	status    string
	statusErr bool
}

// NewModel lays out one panel per document for a terminal of the given
// size. The layout is fixed for the lifetime of the model.
func NewModel(docs []*content.Document, opts Options) (Model, error) {
	if opts.Width < 1 || opts.Height < 2 {
		return Model{}, fmt.Errorf("terminal too small: %dx%d", opts.Width, opts.Height)
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	theme := DefaultTheme(opts.Renderer, opts.Config.Theme)
	m := Model{
		docs:      docs,
		theme:     theme,
		clock:     opts.Clock,
		width:     opts.Width,
		height:    opts.Height,
		readerDoc: -1,
		help:      NewHelpOverlayModel(theme),
	}

	m.timeline = anim.NewTimeline(m.clock)
	m.timeline.SetEasing(anim.EaseInOut)
	size := geom.Size{
		Width:  float64(opts.Width) * UnitsPerColumn,
		Height: float64(opts.Height-1) * UnitsPerRow,
	}
	view := scroll.New(size, m.timeline)
	mgr := layout.New(view, m.timeline)
	view.SetEvents(scroll.Events{
		Scroll:            func(p geom.Point) { mgr.OnScroll(p) },
		DragEnded:         mgr.OnDragEnded,
		DecelerationEnded: mgr.OnDecelerationEnded,
	})
	m.view, m.mgr = view, mgr

	contents := make([]hexagon.Content, len(docs))
	titles := make([]string, len(docs))
	for i, d := range docs {
		d.SetStyle(theme.Name)
		contents[i] = d
		titles[i] = d.Title()
	}
	if err := m.mgr.Setup(contents, opts.Config.Layout(len(docs), size)); err != nil {
		return Model{}, fmt.Errorf("layout: %w", err)
	}
	m.jump = NewJumpModel(theme, titles)
	m.reader = viewport.New(opts.Width, opts.Height-1)
	return m, nil
}

// Manager exposes the layout manager.
func (m Model) Manager() *layout.Manager { return m.mgr }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("hexview")
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.reader.Width = msg.Width
		m.reader.Height = max(1, msg.Height-1)
		m.readerDoc = -1
		m.syncReader()
		return m, nil

	case frameMsg:
		return m.onFrame(time.Time(msg))

	case dragIdleMsg:
		if msg.seq != m.dragSeq || !m.dragging {
			return m, nil
		}
		m.dragging = false
		m.view.EndDrag(geom.Point{}, m.clock())
		cmd := m.startTicking()
		return m, cmd

	case DocumentChangedMsg:
		m.reload(msg.Index)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help.IsVisible() {
		m.help, _ = m.help.Update(msg)
		return m, nil
	}
	if m.jump.IsVisible() {
		return m.handleJumpKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.Toggle()
		return m, nil
	case key.Matches(msg, keys.Copy):
		m.copyFocused()
		return m, nil
	}

	if fp := m.mgr.Fullscreen(); fp != nil {
		switch {
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Collapse):
			m.toggle(fp)
			cmd := m.startTicking()
			return m, cmd
		}
		var cmd tea.Cmd
		m.reader, cmd = m.reader.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Up):
		return m.dragBy(geom.Point{Y: -dragStep})
	case key.Matches(msg, keys.Down):
		return m.dragBy(geom.Point{Y: dragStep})
	case key.Matches(msg, keys.Left):
		return m.dragBy(geom.Point{X: -dragStep})
	case key.Matches(msg, keys.Right):
		return m.dragBy(geom.Point{X: dragStep})
	case key.Matches(msg, keys.FlingUp):
		return m.fling(geom.Point{Y: -1})
	case key.Matches(msg, keys.FlingDown):
		return m.fling(geom.Point{Y: 1})
	case key.Matches(msg, keys.FlingLeft):
		return m.fling(geom.Point{X: -1})
	case key.Matches(msg, keys.FlingRight):
		return m.fling(geom.Point{X: 1})
	case key.Matches(msg, keys.Activate):
		m.endDrag()
		if p := m.mgr.Focused(); p != nil {
			p.Activate()
		}
		cmd := m.startTicking()
		return m, cmd
	case key.Matches(msg, keys.Toggle):
		m.endDrag()
		if p := m.mgr.Focused(); p != nil {
			m.toggle(p)
		}
		cmd := m.startTicking()
		return m, cmd
	case key.Matches(msg, keys.Jump):
		if !m.mgr.Busy() {
			m.jump.Open()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.jump.Close()
		return m, nil
	case "enter":
		idx, ok := m.jump.Selected()
		m.jump.Close()
		if ok && !m.mgr.Busy() {
			m.endDrag()
			if p := m.mgr.Panel(idx); p != nil {
				p.Activate()
			}
		}
		cmd := m.startTicking()
		return m, cmd
	}
	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.help.IsVisible() || m.jump.IsVisible() {
		return m, nil
	}
	if m.mgr.Fullscreen() != nil && msg.Action == tea.MouseActionPress && msg.Button != tea.MouseButtonLeft {
		var cmd tea.Cmd
		m.reader, cmd = m.reader.Update(msg)
		return m, cmd
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.dragBy(geom.Point{Y: -wheelStep})
	case tea.MouseButtonWheelDown:
		return m.dragBy(geom.Point{Y: wheelStep})
	case tea.MouseButtonWheelLeft:
		return m.dragBy(geom.Point{X: -wheelStep})
	case tea.MouseButtonWheelRight:
		return m.dragBy(geom.Point{X: wheelStep})
	case tea.MouseButtonLeft:
		if msg.Y >= m.height-1 {
			// status bar
			return m, nil
		}
		m.click(m.cellToContent(msg.X, msg.Y))
		cmd := m.startTicking()
		return m, cmd
	}
	return m, nil
}

// click activates the panel under pt; a second click on the same panel
// within DoubleClickWindow toggles it.
func (m *Model) click(pt geom.Point) {
	now := m.clock()
	var p *hexagon.Panel
	if m.view.VisibleRect().Contains(pt) {
		p = m.mgr.PanelAt(pt)
	}
	if p == nil {
		m.lastClick = clickRecord{panel: -1}
		return
	}
	if m.lastClick.panel == p.ID() && now.Sub(m.lastClick.at) <= DoubleClickWindow {
		m.lastClick = clickRecord{panel: -1}
		m.endDrag()
		m.toggle(p)
		return
	}
	m.lastClick = clickRecord{panel: p.ID(), at: now}
	m.endDrag()
	p.Activate()
}

// toggle expands or collapses p. Only one panel may be expanded, so a
// toggle is refused while another panel is expanded or moving.
func (m *Model) toggle(p *hexagon.Panel) {
	if p.Animating() {
		return
	}
	if fp := m.mgr.Fullscreen(); fp != nil && fp != p {
		return
	}
	if m.mgr.Fullscreen() == nil && m.mgr.Busy() {
		return
	}
	p.Toggle()
	m.readerDoc = -1
}

func (m Model) dragBy(delta geom.Point) (tea.Model, tea.Cmd) {
	if !m.view.ScrollEnabled() {
		return m, nil
	}
	m.view.Drag(delta)
	m.dragging = true
	m.dragSeq++
	seq := m.dragSeq
	idle := tea.Tick(DragIdleTimeout, func(time.Time) tea.Msg { return dragIdleMsg{seq: seq} })
	frames := m.startTicking()
	return m, tea.Batch(idle, frames)
}

func (m Model) fling(dir geom.Point) (tea.Model, tea.Cmd) {
	if !m.view.ScrollEnabled() {
		return m, nil
	}
	m.view.Drag(geom.Point{X: dir.X * dragStep, Y: dir.Y * dragStep})
	m.dragging = false
	m.dragSeq++
	m.view.EndDrag(geom.Point{X: dir.X * flingSpeed, Y: dir.Y * flingSpeed}, m.clock())
	cmd := m.startTicking()
	return m, cmd
}

// endDrag releases a key drag early so a pending idle tick cannot settle
// over an activation.
func (m *Model) endDrag() {
	if m.dragging {
		m.dragging = false
		m.dragSeq++
		m.view.EndDrag(geom.Point{}, m.clock())
	}
}

func (m *Model) moving() bool {
	return m.timeline.Running() || m.view.Decelerating()
}

func (m *Model) startTicking() tea.Cmd {
	if m.ticking || !m.moving() {
		return nil
	}
	m.ticking = true
	return tickFrame()
}

func tickFrame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) onFrame(now time.Time) (tea.Model, tea.Cmd) {
	m.timeline.Tick(now)
	m.view.Tick(now)
	m.syncReader()
	if m.moving() {
		return m, tickFrame()
	}
	m.ticking = false
	return m, nil
}

// syncReader loads the expanded document into the reader once its
// transition has finished.
func (m *Model) syncReader() {
	fp := m.mgr.Fullscreen()
	if fp == nil || fp.Animating() {
		m.readerDoc = -1
		return
	}
	if m.readerDoc == fp.ID() {
		return
	}
	doc := m.docs[fp.ID()]
	text, err := doc.Render(max(20, m.reader.Width-2))
	if err != nil {
		log.Printf("Warning: markdown render failed for %s: %v", doc.Path(), err)
	}
	m.reader.SetContent(text)
	m.reader.GotoTop()
	m.readerDoc = fp.ID()
}

func (m *Model) reload(i int) {
	if i < 0 || i >= len(m.docs) {
		return
	}
	doc := m.docs[i]
	if err := doc.Reload(); err != nil {
		log.Printf("Warning: %v", err)
		m.setStatus(err.Error(), true)
		return
	}
	m.jump.SetTitle(i, doc.Title())
	if m.readerDoc == i {
		m.readerDoc = -1
		m.syncReader()
	}
	m.setStatus("Reloaded "+doc.Title(), false)
}

func (m *Model) copyFocused() {
	p := m.mgr.Fullscreen()
	if p == nil {
		p = m.mgr.Focused()
	}
	if p == nil {
		return
	}
	doc := m.docs[p.ID()]
	if err := clipboard.WriteAll(doc.Body()); err != nil {
		m.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.setStatus("Copied "+doc.Title(), false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// cellToContent maps a terminal cell to the content-space point at its
// center.
func (m Model) cellToContent(x, y int) geom.Point {
	off := m.view.ContentOffset()
	return geom.Point{
		X: off.X + float64(x)*UnitsPerColumn + UnitsPerColumn/2,
		Y: off.Y + float64(y)*UnitsPerRow + UnitsPerRow/2,
	}
}

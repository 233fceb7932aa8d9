// Package anim drives frame transitions from an event loop.
//
// A Timeline holds keyed tracks. Nothing runs on its own goroutine: the
// host calls Tick from its event loop and every frame and completion
// callback runs inside that call.
package anim

import (
	"sort"
	"time"

	"github.com/Dicklesworthstone/hexview/pkg/geom"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseInOut is smoothstep, matching the platform default curve closely
// enough for short transitions.
func EaseInOut(t float64) float64 { return t * t * (3 - 2*t) }

type track struct {
	from, to geom.Rect
	start    time.Time
	duration time.Duration
	seq      uint64
	onFrame  func(geom.Rect)
	onDone   func()
}

// Timeline schedules rect tweens. The zero value is not usable; create
// one with NewTimeline.
type Timeline struct {
	now    func() time.Time
	easing Easing
	tracks map[string]*track
	seq    uint64
}

// NewTimeline creates a timeline reading time from clock. A nil clock
// uses time.Now.
func NewTimeline(clock func() time.Time) *Timeline {
	if clock == nil {
		clock = time.Now
	}
	return &Timeline{
		now:    clock,
		easing: EaseInOut,
		tracks: make(map[string]*track),
	}
}

// SetEasing replaces the easing used for subsequent frames.
func (tl *Timeline) SetEasing(e Easing) {
	if e == nil {
		e = Linear
	}
	tl.easing = e
}

// Animate starts a tween. A running track with the same key is replaced
// and its completion is dropped. A non-positive duration completes on the
// next Tick.
func (tl *Timeline) Animate(key string, from, to geom.Rect, d time.Duration, onFrame func(geom.Rect), onDone func()) {
	tl.seq++
	tl.tracks[key] = &track{
		from:     from,
		to:       to,
		start:    tl.now(),
		duration: d,
		seq:      tl.seq,
		onFrame:  onFrame,
		onDone:   onDone,
	}
}

// Running reports whether any track is in flight.
func (tl *Timeline) Running() bool { return len(tl.tracks) > 0 }

// Has reports whether the track key is in flight.
func (tl *Timeline) Has(key string) bool {
	_, ok := tl.tracks[key]
	return ok
}

// Tick advances every track to now and returns whether any are still
// running. Tracks are stepped in start order so that callbacks which start
// new animations see a consistent state.
func (tl *Timeline) Tick(now time.Time) bool {
	if len(tl.tracks) == 0 {
		return false
	}
	keys := make([]string, 0, len(tl.tracks))
	for k := range tl.tracks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return tl.tracks[keys[i]].seq < tl.tracks[keys[j]].seq })

	for _, k := range keys {
		tr, ok := tl.tracks[k]
		if !ok {
			continue
		}
		progress := 1.0
		if tr.duration > 0 {
			progress = float64(now.Sub(tr.start)) / float64(tr.duration)
		}
		if progress < 1 {
			if progress < 0 {
				progress = 0
			}
			if tr.onFrame != nil {
				tr.onFrame(geom.Lerp(tr.from, tr.to, tl.easing(progress)))
			}
			continue
		}
		// Done: deliver the exact end frame, then complete. The callback
		// may start a new track under the same key, so only remove ours.
		if cur := tl.tracks[k]; cur == tr {
			delete(tl.tracks, k)
		}
		if tr.onFrame != nil {
			tr.onFrame(tr.to)
		}
		if tr.onDone != nil {
			tr.onDone()
		}
	}
	return len(tl.tracks) > 0
}

// Finish completes every running track immediately, including tracks that
// completions start, up to a bounded number of rounds.
func (tl *Timeline) Finish() {
	for round := 0; round < 16 && len(tl.tracks) > 0; round++ {
		far := tl.now().Add(24 * time.Hour)
		for _, tr := range tl.tracks {
			if end := tr.start.Add(tr.duration); end.After(far) {
				far = end
			}
		}
		tl.Tick(far)
	}
}

package scrollsync

import "time"

// GuardWindow is the quiet period after a programmatic scroll command
// during which all scroll events are ignored. A commanded surface fires
// its own scroll event as a side effect of being scrolled; without the
// guard that event would bounce back and command the originating
// surface in an endless ping-pong.
const GuardWindow = 100 * time.Millisecond

// Metrics describes the scroll geometry of a surface at one instant.
type Metrics struct {
	Top    float64 // current scroll offset
	Height float64 // total content height
	Client float64 // visible height
}

// Fraction returns the relative scroll position in [0, 1]. A surface
// whose content fits entirely in view has fraction 0.
func (m Metrics) Fraction() float64 {
	if m.Height <= m.Client {
		return 0
	}
	return m.Top / (m.Height - m.Client)
}

// Surface is one side of the synchronization pair. Implementations wrap
// the editor pane and the preview pane.
type Surface interface {
	// ScrollMetrics reports the surface's current geometry.
	ScrollMetrics() Metrics
	// ScrollTo commands the surface to the given offset. Implementations
	// on a surface that is not ready must treat this as a no-op.
	ScrollTo(offset float64)
	// Ready reports whether the surface can accept scroll commands.
	Ready() bool
}

// Synchronizer keeps two surfaces visually aligned. It is a two-state
// machine: idle, where the next user scroll on either surface drives the
// other to the same fraction, and syncing, where every incoming event is
// dropped until GuardWindow has elapsed since the last command. Events
// arriving while syncing are not queued; the next natural scroll after
// the guard releases re-establishes alignment.
type Synchronizer struct {
	a, b    Surface
	enabled bool

	lastCommand time.Time
	now         func() time.Time
}

// New returns a synchronizer for the given pair, enabled by default.
func New(a, b Surface) *Synchronizer {
	return &Synchronizer{a: a, b: b, enabled: true, now: time.Now}
}

// SetEnabled turns synchronization on or off.
func (s *Synchronizer) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled reports whether synchronization is active.
func (s *Synchronizer) Enabled() bool {
	return s.enabled
}

// Syncing reports whether the guard window is currently open.
func (s *Synchronizer) Syncing() bool {
	return s.now().Sub(s.lastCommand) < GuardWindow
}

// ScrollEventA handles a scroll event originating on surface A.
func (s *Synchronizer) ScrollEventA() bool {
	return s.propagate(s.a, s.b)
}

// ScrollEventB handles a scroll event originating on surface B.
func (s *Synchronizer) ScrollEventB() bool {
	return s.propagate(s.b, s.a)
}

// propagate maps from's scroll fraction onto to. It returns true when a
// command was issued, false when the event was dropped or was a no-op.
func (s *Synchronizer) propagate(from, to Surface) bool {
	if !s.enabled || s.Syncing() {
		return false
	}
	if to == nil || !to.Ready() {
		return false
	}

	ratio := from.ScrollMetrics().Fraction()
	m := to.ScrollMetrics()
	scrollable := m.Height - m.Client
	if scrollable < 0 {
		scrollable = 0
	}

	to.ScrollTo(ratio * scrollable)
	s.lastCommand = s.now()
	return true
}

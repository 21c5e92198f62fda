package scrollsync

import (
	"math"
	"testing"
	"time"
)

// fakeSurface records commands and reports fixed geometry.
type fakeSurface struct {
	metrics  Metrics
	ready    bool
	commands []float64
}

func (f *fakeSurface) ScrollMetrics() Metrics { return f.metrics }
func (f *fakeSurface) Ready() bool            { return f.ready }

func (f *fakeSurface) ScrollTo(offset float64) {
	f.commands = append(f.commands, offset)
	f.metrics.Top = offset
}

// newPair returns a synchronizer over two fake surfaces with a
// controllable clock.
func newPair(editor, preview *fakeSurface) (*Synchronizer, *time.Time) {
	s := New(editor, preview)
	clock := time.Unix(0, 0)
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestFractionPreserved(t *testing.T) {
	editor := &fakeSurface{metrics: Metrics{Height: 1000, Client: 200}, ready: true}
	preview := &fakeSurface{metrics: Metrics{Height: 3000, Client: 600}, ready: true}
	s, clock := newPair(editor, preview)

	for _, ratio := range []float64{0, 0.25, 0.5, 0.75, 1} {
		*clock = clock.Add(time.Second) // past the guard from the previous iteration
		editor.metrics.Top = ratio * (editor.metrics.Height - editor.metrics.Client)

		if !s.ScrollEventA() {
			t.Fatalf("ratio %v: event was dropped", ratio)
		}

		got := preview.metrics.Fraction()
		if math.Abs(got-ratio) > 1e-9 {
			t.Errorf("ratio %v: preview at fraction %v", ratio, got)
		}
	}
}

func TestNoOscillation(t *testing.T) {
	editor := &fakeSurface{metrics: Metrics{Top: 400, Height: 1000, Client: 200}, ready: true}
	preview := &fakeSurface{metrics: Metrics{Height: 3000, Client: 600}, ready: true}
	s, _ := newPair(editor, preview)

	if !s.ScrollEventA() {
		t.Fatal("initial event was dropped")
	}

	// The preview's own scroll event, fired as a side effect of the
	// command, arrives within the guard window and must not bounce back.
	if s.ScrollEventB() {
		t.Error("echo event re-triggered a command on the editor")
	}
	if len(editor.commands) != 0 {
		t.Errorf("editor received %d commands, want 0", len(editor.commands))
	}
	if len(preview.commands) != 1 {
		t.Errorf("preview received %d commands, want exactly 1", len(preview.commands))
	}
}

func TestEventsDroppedNotQueued(t *testing.T) {
	editor := &fakeSurface{metrics: Metrics{Top: 100, Height: 1000, Client: 200}, ready: true}
	preview := &fakeSurface{metrics: Metrics{Height: 3000, Client: 600}, ready: true}
	s, clock := newPair(editor, preview)

	s.ScrollEventA()
	editor.metrics.Top = 700
	s.ScrollEventA() // dropped, inside guard
	s.ScrollEventA() // dropped

	if len(preview.commands) != 1 {
		t.Fatalf("preview received %d commands during guard, want 1", len(preview.commands))
	}

	// After the guard releases the next event goes through.
	*clock = clock.Add(GuardWindow)
	if !s.ScrollEventA() {
		t.Fatal("event after guard release was dropped")
	}
	if len(preview.commands) != 2 {
		t.Errorf("preview received %d commands, want 2", len(preview.commands))
	}
}

func TestGuardReopensOnEachCommand(t *testing.T) {
	editor := &fakeSurface{metrics: Metrics{Top: 100, Height: 1000, Client: 200}, ready: true}
	preview := &fakeSurface{metrics: Metrics{Top: 0, Height: 3000, Client: 600}, ready: true}
	s, clock := newPair(editor, preview)

	s.ScrollEventA()
	*clock = clock.Add(GuardWindow)
	s.ScrollEventB()

	if !s.Syncing() {
		t.Error("guard should be open immediately after a command")
	}
	*clock = clock.Add(GuardWindow)
	if s.Syncing() {
		t.Error("guard should expire after the quiet period")
	}
}

func TestTargetNotReady(t *testing.T) {
	editor := &fakeSurface{metrics: Metrics{Top: 400, Height: 1000, Client: 200}, ready: true}
	preview := &fakeSurface{metrics: Metrics{Height: 3000, Client: 600}}
	s, _ := newPair(editor, preview)

	if s.ScrollEventA() {
		t.Error("command issued to a surface that is not ready")
	}
	if len(preview.commands) != 0 {
		t.Errorf("not-ready preview received %d commands", len(preview.commands))
	}
	if s.Syncing() {
		t.Error("dropped command should not open the guard window")
	}
}

func TestUnscrollableSourceMapsToTop(t *testing.T) {
	editor := &fakeSurface{metrics: Metrics{Top: 0, Height: 100, Client: 200}, ready: true}
	preview := &fakeSurface{metrics: Metrics{Top: 500, Height: 3000, Client: 600}, ready: true}
	s, _ := newPair(editor, preview)

	if !s.ScrollEventA() {
		t.Fatal("event was dropped")
	}
	if got := preview.commands[0]; got != 0 {
		t.Errorf("short content should map to offset 0, got %v", got)
	}
}

func TestUnscrollableTargetHeldAtTop(t *testing.T) {
	editor := &fakeSurface{metrics: Metrics{Top: 400, Height: 1000, Client: 200}, ready: true}
	preview := &fakeSurface{metrics: Metrics{Height: 100, Client: 600}, ready: true}
	s, _ := newPair(editor, preview)

	s.ScrollEventA()
	if got := preview.commands[0]; got != 0 {
		t.Errorf("unscrollable target should be commanded to 0, got %v", got)
	}
}

func TestDisabled(t *testing.T) {
	editor := &fakeSurface{metrics: Metrics{Top: 400, Height: 1000, Client: 200}, ready: true}
	preview := &fakeSurface{metrics: Metrics{Height: 3000, Client: 600}, ready: true}
	s, _ := newPair(editor, preview)

	s.SetEnabled(false)
	if s.ScrollEventA() || s.ScrollEventB() {
		t.Error("disabled synchronizer issued a command")
	}
}

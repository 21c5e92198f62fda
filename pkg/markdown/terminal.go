package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// TerminalRenderer renders markdown for the TUI preview pane. It is
// rebuilt whenever the pane width or theme changes, since glamour bakes
// word wrap into the renderer.
type TerminalRenderer struct {
	theme    string
	width    int
	renderer *glamour.TermRenderer
}

// NewTerminalRenderer creates a renderer for the given glamour style
// ("dark", "light", "notty", ...) and wrap width.
func NewTerminalRenderer(theme string, width int) *TerminalRenderer {
	t := &TerminalRenderer{theme: theme}
	t.SetWidth(width)
	return t
}

// SetWidth rebuilds the underlying renderer for a new wrap width.
func (t *TerminalRenderer) SetWidth(width int) {
	if width < 1 {
		width = 1
	}
	if t.renderer != nil && t.width == width {
		return
	}
	t.width = width

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(t.theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fall back to plain wrapping in Render.
		t.renderer = nil
		return
	}
	t.renderer = r
}

// Render produces styled terminal output for text. Failures degrade to
// plain word-wrapped text with an error note rather than an empty pane.
func (t *TerminalRenderer) Render(text string) string {
	if t.renderer == nil {
		return wordwrap.String(text, t.width)
	}

	out, err := t.renderer.Render(text)
	if err != nil {
		note := fmt.Sprintf("[preview unavailable: %v]\n\n", err)
		return note + wordwrap.String(text, t.width)
	}
	return out
}

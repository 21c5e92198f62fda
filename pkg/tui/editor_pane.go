package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mdraft/mdraft-cli/pkg/scrollsync"
)

// SurfaceCommands is the capability the orchestrator holds to drive the
// editing surface. The pane is never handed out as a mutable widget;
// everything callers may do to it goes through this interface.
type SurfaceCommands interface {
	InsertAtCursor(text string)
	ReplaceAll(text string)
	ReplaceSelection(text string)
	WrapSelection(prefix, suffix string)
	Selection() (string, bool)
	ScrollTo(offset float64)
}

// EditorPane wraps the textarea widget and tracks a line-based
// selection. It is one side of the scroll synchronization pair.
type EditorPane struct {
	textarea textarea.Model

	// Line selection: anchor is set when selection starts, the other
	// end follows the cursor. -1 means no selection.
	selAnchor int

	width  int
	height int
}

var _ scrollsync.Surface = (*EditorPane)(nil)
var _ SurfaceCommands = (*EditorPane)(nil)

// NewEditorPane creates the editing surface.
func NewEditorPane(showLineNumbers bool) *EditorPane {
	ta := textarea.New()
	ta.ShowLineNumbers = showLineNumbers
	ta.Prompt = "  "
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(20)
	ta.Focus()

	return &EditorPane{
		textarea:  ta,
		selAnchor: -1,
	}
}

// SetSize resizes the underlying textarea.
func (e *EditorPane) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.textarea.SetWidth(width)
	e.textarea.SetHeight(height)
}

// Focus gives the pane keyboard focus.
func (e *EditorPane) Focus() tea.Cmd {
	return e.textarea.Focus()
}

// Blur removes keyboard focus.
func (e *EditorPane) Blur() {
	e.textarea.Blur()
}

// Focused reports whether the pane has keyboard focus.
func (e *EditorPane) Focused() bool {
	return e.textarea.Focused()
}

// Update routes a message to the textarea.
func (e *EditorPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return cmd
}

// View renders the pane.
func (e *EditorPane) View() string {
	return e.textarea.View()
}

// Value returns the full text.
func (e *EditorPane) Value() string {
	return e.textarea.Value()
}

// SetValue replaces the full text and clears any selection.
func (e *EditorPane) SetValue(text string) {
	e.textarea.SetValue(text)
	e.selAnchor = -1
}

// Line returns the cursor's current line index.
func (e *EditorPane) Line() int {
	return e.textarea.Line()
}

// ToggleSelection starts a line selection at the cursor, or clears an
// existing one.
func (e *EditorPane) ToggleSelection() {
	if e.selAnchor >= 0 {
		e.selAnchor = -1
		return
	}
	e.selAnchor = e.textarea.Line()
}

// HasSelection reports whether a line selection is active.
func (e *EditorPane) HasSelection() bool {
	return e.selAnchor >= 0
}

// selectionRange returns the selected line span, normalized.
func (e *EditorPane) selectionRange() (int, int) {
	start, end := e.selAnchor, e.textarea.Line()
	if start > end {
		start, end = end, start
	}
	return start, end
}

// Selection returns the selected text, if any.
func (e *EditorPane) Selection() (string, bool) {
	if !e.HasSelection() {
		return "", false
	}
	lines := strings.Split(e.textarea.Value(), "\n")
	start, end := e.selectionRange()
	if end >= len(lines) {
		end = len(lines) - 1
	}
	return strings.Join(lines[start:end+1], "\n"), true
}

// InsertAtCursor inserts text at the cursor position.
func (e *EditorPane) InsertAtCursor(text string) {
	e.textarea.InsertString(text)
}

// ReplaceAll replaces the whole document text.
func (e *EditorPane) ReplaceAll(text string) {
	e.SetValue(text)
}

// ReplaceSelection replaces the selected lines with text, leaving
// everything outside the selection untouched. Without a selection it
// replaces the whole text.
func (e *EditorPane) ReplaceSelection(text string) {
	if !e.HasSelection() {
		e.ReplaceAll(text)
		return
	}

	lines := strings.Split(e.textarea.Value(), "\n")
	start, end := e.selectionRange()
	if end >= len(lines) {
		end = len(lines) - 1
	}

	var out []string
	out = append(out, lines[:start]...)
	out = append(out, strings.Split(text, "\n")...)
	out = append(out, lines[end+1:]...)
	e.SetValue(strings.Join(out, "\n"))
}

// WrapSelection surrounds the selection with prefix and suffix, e.g.
// "**"/"**" for bold. Without a selection it inserts the markers at the
// cursor.
func (e *EditorPane) WrapSelection(prefix, suffix string) {
	sel, ok := e.Selection()
	if !ok {
		e.textarea.InsertString(prefix + suffix)
		return
	}
	e.ReplaceSelection(prefix + sel + suffix)
}

// ScrollMetrics reports line-based geometry for synchronization. The
// cursor line stands in for the scroll offset: the textarea keeps the
// cursor visible, so driving the cursor drives the view.
func (e *EditorPane) ScrollMetrics() scrollsync.Metrics {
	return scrollsync.Metrics{
		Top:    float64(e.textarea.Line()),
		Height: float64(e.textarea.LineCount()),
		Client: float64(e.height),
	}
}

// ScrollTo moves the cursor to the given line.
func (e *EditorPane) ScrollTo(offset float64) {
	if !e.Ready() {
		return
	}

	target := int(offset + 0.5)
	if max := e.textarea.LineCount() - 1; target > max {
		target = max
	}
	if target < 0 {
		target = 0
	}

	// The textarea exposes no absolute vertical positioning; walk the
	// cursor there.
	for i := 0; e.textarea.Line() < target && i < 10000; i++ {
		e.textarea.CursorDown()
	}
	for i := 0; e.textarea.Line() > target && i < 10000; i++ {
		e.textarea.CursorUp()
	}
}

// Ready reports whether the pane can accept scroll commands.
func (e *EditorPane) Ready() bool {
	return e.height > 0
}

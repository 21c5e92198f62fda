package tui

import (
	"testing"
)

func TestSelectionFollowsCursor(t *testing.T) {
	e := NewEditorPane(false)
	e.SetSize(80, 10)
	e.SetValue("alpha\nbeta\ngamma")

	// SetValue leaves the cursor on the last line.
	e.ToggleSelection()
	sel, ok := e.Selection()
	if !ok {
		t.Fatal("expected active selection after toggle")
	}
	if sel != "gamma" {
		t.Errorf("selection = %q, want %q", sel, "gamma")
	}

	e.textarea.CursorUp()
	sel, _ = e.Selection()
	if sel != "beta\ngamma" {
		t.Errorf("selection = %q, want %q", sel, "beta\ngamma")
	}
}

func TestToggleSelectionClears(t *testing.T) {
	e := NewEditorPane(false)
	e.SetValue("one\ntwo")

	e.ToggleSelection()
	if !e.HasSelection() {
		t.Fatal("expected selection after first toggle")
	}
	e.ToggleSelection()
	if e.HasSelection() {
		t.Fatal("expected no selection after second toggle")
	}
}

func TestReplaceSelectionKeepsSurroundingText(t *testing.T) {
	e := NewEditorPane(false)
	e.SetSize(80, 10)
	e.SetValue("alpha\nbeta\ngamma")

	e.ToggleSelection() // anchored on gamma
	e.textarea.CursorUp()

	e.ReplaceSelection("REPLACED")
	if got, want := e.Value(), "alpha\nREPLACED"; got != want {
		t.Errorf("value = %q, want %q", got, want)
	}
	if e.HasSelection() {
		t.Error("selection should clear after replacement")
	}
}

func TestReplaceSelectionWithoutSelectionReplacesAll(t *testing.T) {
	e := NewEditorPane(false)
	e.SetValue("old content")

	e.ReplaceSelection("new content")
	if got := e.Value(); got != "new content" {
		t.Errorf("value = %q, want %q", got, "new content")
	}
}

func TestWrapSelection(t *testing.T) {
	e := NewEditorPane(false)
	e.SetValue("plain")

	e.ToggleSelection()
	e.WrapSelection("**", "**")
	if got := e.Value(); got != "**plain**" {
		t.Errorf("value = %q, want %q", got, "**plain**")
	}
}

func TestWrapWithoutSelectionInsertsMarkers(t *testing.T) {
	e := NewEditorPane(false)
	e.SetValue("")

	e.WrapSelection("_", "_")
	if got := e.Value(); got != "__" {
		t.Errorf("value = %q, want %q", got, "__")
	}
}

func TestScrollToMovesCursorLine(t *testing.T) {
	e := NewEditorPane(false)
	e.SetSize(80, 5)

	text := ""
	for i := 0; i < 20; i++ {
		text += "line\n"
	}
	e.SetValue(text)

	e.ScrollTo(5)
	if got := e.Line(); got != 5 {
		t.Errorf("line = %d, want 5", got)
	}

	e.ScrollTo(1000)
	if got, max := e.Line(), e.textarea.LineCount()-1; got != max {
		t.Errorf("line = %d, want clamp to %d", got, max)
	}

	e.ScrollTo(-3)
	if got := e.Line(); got != 0 {
		t.Errorf("line = %d, want clamp to 0", got)
	}
}

func TestEditorNotReadyBeforeSizing(t *testing.T) {
	e := NewEditorPane(false)
	if e.Ready() {
		t.Error("pane should not be ready before it has a size")
	}
	e.SetSize(80, 10)
	if !e.Ready() {
		t.Error("pane should be ready once sized")
	}
}

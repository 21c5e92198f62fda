package tui

import (
	"time"

	"github.com/mdraft/mdraft-cli/pkg/assistant"
	"github.com/mdraft/mdraft-cli/pkg/models"
)

// StatusMsg sets a transient status bar message.
type StatusMsg string

// statusClearMsg clears the status bar after its display period.
type statusClearMsg struct{ id int }

// documentOpenedMsg carries a file loaded from disk.
type documentOpenedMsg struct {
	path    string
	text    string
	modTime time.Time
}

// documentSavedMsg reports a completed save.
type documentSavedMsg struct {
	path string
	at   time.Time
}

// fileOpErrMsg reports a failed file operation; the document is left
// untouched.
type fileOpErrMsg struct {
	op  string
	err error
}

// assistantResultMsg carries the outcome of an assistant call.
type assistantResultMsg struct {
	intent Intent
	result assistant.Result
}

// treeLoadedMsg carries the project tree for the file browser.
type treeLoadedMsg struct {
	nodes []models.FileNode
	err   error
}

// openFileRequestMsg asks the app to open a project file.
type openFileRequestMsg struct{ path string }

// settingsAppliedMsg reports saved settings to re-apply.
type settingsAppliedMsg struct{ settings *models.Settings }

// closeOverlayMsg dismisses the active overlay (browser, settings).
type closeOverlayMsg struct{}

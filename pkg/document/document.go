package document

import (
	"fmt"
	"path/filepath"
	"time"
)

// DefaultName is used for documents that have never been saved.
const DefaultName = "untitled.md"

// Document is the authoritative in-memory copy of the text being edited.
// There is exactly one writer at a time: the editor session that owns it.
// Collaborators (the assistant, the preview) read snapshots and hand
// content back to the owner to apply.
type Document struct {
	Text         string
	Modified     bool
	Name         string
	Path         string
	LastModified time.Time
}

// New returns an empty unsaved document.
func New() *Document {
	return &Document{Name: DefaultName}
}

// NewFromFile returns a document loaded from path with the given content.
func NewFromFile(path, text string, modTime time.Time) *Document {
	return &Document{
		Text:         text,
		Name:         filepath.Base(path),
		Path:         path,
		LastModified: modTime,
	}
}

// SetText replaces the whole document text and marks it modified.
func (d *Document) SetText(text string) {
	if text == d.Text {
		return
	}
	d.Text = text
	d.Modified = true
}

// ReplaceRange replaces the byte range [start, end) with repl and marks
// the document modified. Out-of-bounds or inverted ranges are an error
// and leave the document untouched.
func (d *Document) ReplaceRange(start, end int, repl string) error {
	if start < 0 || end > len(d.Text) || start > end {
		return fmt.Errorf("invalid range [%d, %d) for document of %d bytes", start, end, len(d.Text))
	}
	d.Text = d.Text[:start] + repl + d.Text[end:]
	d.Modified = true
	return nil
}

// Insert inserts text at the given byte offset. Offsets are clamped to
// the document bounds.
func (d *Document) Insert(at int, text string) {
	if at < 0 {
		at = 0
	}
	if at > len(d.Text) {
		at = len(d.Text)
	}
	d.Text = d.Text[:at] + text + d.Text[at:]
	d.Modified = true
}

// MarkSaved records a successful save to path and clears the modified flag.
func (d *Document) MarkSaved(path string, at time.Time) {
	d.Path = path
	d.Name = filepath.Base(path)
	d.Modified = false
	d.LastModified = at
}

// HasPath reports whether the document has ever been saved to disk.
func (d *Document) HasPath() bool {
	return d.Path != ""
}

package templates

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mdraft/mdraft-cli/pkg/files"
)

// Template is a starter document installable into a new project.
type Template struct {
	Name        string
	Filename    string
	Description string
	Content     string
}

// All returns the starter documents offered by `mdraft init`.
func All() []Template {
	return []Template{
		welcome(),
		noteTemplate(),
		articleTemplate(),
	}
}

// Get returns the template with the given name, if it exists.
func Get(name string) (Template, bool) {
	for _, t := range All() {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Install writes the template into the project root. Existing files are
// left alone unless force is set.
func Install(t Template, root string, force bool) (bool, error) {
	path := filepath.Join(root, t.Filename)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, fmt.Errorf("%s already exists", t.Filename)
		}
	}
	if err := files.WriteDocument(path, t.Content); err != nil {
		return false, err
	}
	return true, nil
}

func welcome() Template {
	return Template{
		Name:        "welcome",
		Filename:    "welcome.md",
		Description: "A short tour of the editor",
		Content: `# Welcome to mdraft

mdraft is a terminal markdown editor with a live preview and an
optional writing assistant.

## Keys

- ` + "`ctrl+s`" + ` save, ` + "`ctrl+o`" + ` open a file
- ` + "`ctrl+r`" + ` toggle the preview, ` + "`ctrl+t`" + ` switch panes
- ` + "`ctrl+x`" + ` anchor a line selection
- ` + "`ctrl+g`" + ` settings, ` + "`ctrl+y`" + ` copy as HTML

## Assistant

Configure an OpenAI-compatible endpoint in settings, then use the
sidebar to continue, optimize, translate or summarize your writing.
Results are shown as a proposal first; nothing changes until you
apply it.

Happy writing.
`,
	}
}

func noteTemplate() Template {
	return Template{
		Name:        "note",
		Filename:    "note.md",
		Description: "A minimal dated note",
		Content: `# Note

> Date:

## Summary

## Details

## Follow-ups

- [ ]
`,
	}
}

func articleTemplate() Template {
	return Template{
		Name:        "article",
		Filename:    "article.md",
		Description: "A skeleton for a longer article",
		Content: `# Title

*Subtitle or one-line summary.*

## Introduction

Set the scene: what question does this article answer, and for whom?

## Background

## Main section

Break the argument into subsections as it grows.

### Subsection

## Conclusion

What should the reader take away?
`,
	}
}

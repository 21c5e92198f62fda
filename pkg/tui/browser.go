package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mdraft/mdraft-cli/pkg/models"
	"github.com/mdraft/mdraft-cli/pkg/project"
)

// Browser is the file-open overlay: a fuzzy filter over the project
// tree, markdown files openable with enter.
type Browser struct {
	paths    []string
	filtered []string
	cursor   int
	filter   textinput.Model
	loadErr  error

	width  int
	height int
}

// NewBrowser creates an empty browser; call SetNodes once the tree has
// loaded.
func NewBrowser() *Browser {
	filter := textinput.New()
	filter.Placeholder = "Filter files..."
	filter.CharLimit = 100
	filter.Width = 40

	return &Browser{filter: filter}
}

// SetSize stores the overlay dimensions.
func (b *Browser) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.filter.Width = width - 6
}

// SetNodes replaces the browser contents with a freshly loaded tree.
func (b *Browser) SetNodes(nodes []models.FileNode, err error) {
	b.loadErr = err
	b.paths = project.Flatten(nodes)
	b.cursor = 0
	b.applyFilter()
}

// Focus activates the filter input.
func (b *Browser) Focus() tea.Cmd {
	b.filter.SetValue("")
	b.applyFilter()
	return b.filter.Focus()
}

// Blur deactivates the filter input.
func (b *Browser) Blur() {
	b.filter.Blur()
}

func (b *Browser) applyFilter() {
	query := strings.TrimSpace(b.filter.Value())
	if query == "" {
		b.filtered = b.paths
	} else {
		matches := fuzzy.Find(query, b.paths)
		b.filtered = make([]string, 0, len(matches))
		for _, m := range matches {
			b.filtered = append(b.filtered, m.Str)
		}
	}
	if b.cursor >= len(b.filtered) {
		b.cursor = 0
	}
}

// Update handles keys while the browser overlay is open. Selecting a
// file emits an openFileRequestMsg for the app to act on.
func (b *Browser) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "ctrl+p":
		if b.cursor > 0 {
			b.cursor--
		}
		return nil
	case "down", "ctrl+n":
		if b.cursor < len(b.filtered)-1 {
			b.cursor++
		}
		return nil
	case "enter":
		if b.cursor >= len(b.filtered) {
			return nil
		}
		path := b.filtered[b.cursor]
		return func() tea.Msg { return openFileRequestMsg{path: path} }
	}

	var cmd tea.Cmd
	b.filter, cmd = b.filter.Update(msg)
	b.applyFilter()
	return cmd
}

// View renders the overlay.
func (b *Browser) View() string {
	var s strings.Builder
	s.WriteString(TitleStyle.Render("Open File"))
	s.WriteString("\n\n")
	s.WriteString(b.filter.View())
	s.WriteString("\n\n")

	if b.loadErr != nil {
		s.WriteString(ErrorStyle.Render("Could not read project: " + b.loadErr.Error()))
	} else if len(b.filtered) == 0 {
		s.WriteString(DimStyle.Render("No matching files"))
	} else {
		visible := b.height - 8
		if visible < 3 {
			visible = 3
		}
		start := 0
		if b.cursor >= visible {
			start = b.cursor - visible + 1
		}
		end := start + visible
		if end > len(b.filtered) {
			end = len(b.filtered)
		}
		for i := start; i < end; i++ {
			cursor := "  "
			style := NormalStyle
			if i == b.cursor {
				cursor = "> "
				style = SelectedStyle
			}
			s.WriteString(cursor + style.Render(b.filtered[i]) + "\n")
		}
	}

	s.WriteString("\n" + DimStyle.Render("enter open · esc close"))
	return lipgloss.NewStyle().
		Width(b.width).
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(s.String())
}

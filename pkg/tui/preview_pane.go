package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mdraft/mdraft-cli/pkg/markdown"
	"github.com/mdraft/mdraft-cli/pkg/scrollsync"
)

// PreviewPane renders the live markdown preview into a viewport. It is
// the other side of the scroll synchronization pair.
type PreviewPane struct {
	viewport viewport.Model
	renderer *markdown.TerminalRenderer
	rendered bool

	width  int
	height int
}

var _ scrollsync.Surface = (*PreviewPane)(nil)

// NewPreviewPane creates a preview pane with the given glamour theme.
func NewPreviewPane(theme string) *PreviewPane {
	return &PreviewPane{
		viewport: viewport.New(80, 20),
		renderer: markdown.NewTerminalRenderer(theme, 80),
	}
}

// SetSize resizes the viewport and re-wraps the renderer.
func (p *PreviewPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.Width = width
	p.viewport.Height = height
	p.renderer.SetWidth(width)
}

// SetTheme switches the glamour style; takes effect on the next render.
func (p *PreviewPane) SetTheme(theme string) {
	p.renderer = markdown.NewTerminalRenderer(theme, p.width)
}

// Render recomputes the preview from document text. The viewport keeps
// its offset so minor edits do not yank the view to the top.
func (p *PreviewPane) Render(text string) {
	offset := p.viewport.YOffset
	p.viewport.SetContent(p.renderer.Render(text))
	p.rendered = true

	if offset < p.viewport.TotalLineCount() {
		p.viewport.SetYOffset(offset)
	}
}

// Update routes a message to the viewport.
func (p *PreviewPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the pane.
func (p *PreviewPane) View() string {
	return p.viewport.View()
}

// YOffset exposes the current scroll offset for change detection.
func (p *PreviewPane) YOffset() int {
	return p.viewport.YOffset
}

// ScrollMetrics reports the viewport geometry.
func (p *PreviewPane) ScrollMetrics() scrollsync.Metrics {
	return scrollsync.Metrics{
		Top:    float64(p.viewport.YOffset),
		Height: float64(p.viewport.TotalLineCount()),
		Client: float64(p.viewport.Height),
	}
}

// ScrollTo commands the viewport to the given offset.
func (p *PreviewPane) ScrollTo(offset float64) {
	if !p.Ready() {
		return
	}
	p.viewport.SetYOffset(int(offset + 0.5))
}

// Ready reports whether the pane has rendered content and can be
// scrolled; commands before the first render are no-ops.
func (p *PreviewPane) Ready() bool {
	return p.rendered && p.height > 0
}

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Message     string // Main confirmation message
	Warning     string // Optional warning text (shown in orange)
	Destructive bool   // If true, Yes is rendered in red
	YesLabel    string // Custom label for Yes (default: "Yes")
	NoLabel     string // Custom label for No (default: "No")
}

// ConfirmationModel handles confirmation prompts
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
	viewWidth int
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y", "enter":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
		return nil

	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
		return nil
	}

	return nil
}

// View renders the confirmation as an inline prompt
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	yesStyle := SuccessStyle
	if m.config.Destructive {
		yesStyle = ErrorStyle
	}

	line := fmt.Sprintf("%s %s/%s",
		m.config.Message,
		yesStyle.Render("["+m.config.YesLabel+"]"),
		DimStyle.Render(m.config.NoLabel))
	if m.config.Warning != "" {
		line = WarningStyle.Render(m.config.Warning) + " " + line
	}

	if m.viewWidth > 0 && lipgloss.Width(line) < m.viewWidth {
		return lipgloss.NewStyle().
			Width(m.viewWidth).
			Align(lipgloss.Center).
			Render(line)
	}
	return line
}

// ViewWithWidth renders the confirmation centered in the given width
func (m *ConfirmationModel) ViewWithWidth(width int) string {
	m.viewWidth = width
	return m.View()
}

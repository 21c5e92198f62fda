package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Intent identifies one of the fixed assistant operations.
type Intent int

const (
	IntentContinue Intent = iota
	IntentOptimize
	IntentTranslate
	IntentSummarize
	IntentCustom
	IntentTestConnection
)

// String returns the menu label for the intent.
func (i Intent) String() string {
	switch i {
	case IntentContinue:
		return "Continue writing"
	case IntentOptimize:
		return "Optimize"
	case IntentTranslate:
		return "Translate"
	case IntentSummarize:
		return "Summarize"
	case IntentCustom:
		return "Custom prompt"
	case IntentTestConnection:
		return "Test connection"
	default:
		return "Unknown"
	}
}

// replacesText reports whether the intent's result replaces the input
// text (as opposed to being appended after it).
func (i Intent) replacesText() bool {
	return i == IntentOptimize || i == IntentTranslate || i == IntentSummarize || i == IntentCustom
}

// runIntentMsg asks the app to execute an assistant call.
type runIntentMsg struct {
	intent Intent
	arg    string // target language or custom instruction
}

// assistantPaneMode tracks what the sidebar is currently showing.
type assistantPaneMode int

const (
	assistantMenu assistantPaneMode = iota
	assistantArgInput
	assistantProposal
)

var assistantIntents = []Intent{
	IntentContinue,
	IntentOptimize,
	IntentTranslate,
	IntentSummarize,
	IntentCustom,
	IntentTestConnection,
}

// AssistantPane is the AI sidebar: an intent menu, argument input for
// translate/custom, and a proposal view for returned content. When the
// assistant is not configured the pane renders inert.
type AssistantPane struct {
	mode      assistantPaneMode
	cursor    int
	busy      bool
	available bool

	argInput  textinput.Model
	argIntent Intent

	proposal       string
	proposalIntent Intent
	diffSummary    string

	width  int
	height int
}

// NewAssistantPane creates the sidebar.
func NewAssistantPane(available bool) *AssistantPane {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 30

	return &AssistantPane{
		available: available,
		argInput:  input,
	}
}

// SetSize stores the pane dimensions.
func (a *AssistantPane) SetSize(width, height int) {
	a.width = width
	a.height = height
	a.argInput.Width = width - 4
}

// SetAvailable updates availability after a settings change.
func (a *AssistantPane) SetAvailable(available bool) {
	a.available = available
}

// Busy reports whether a call is in flight.
func (a *AssistantPane) Busy() bool {
	return a.busy
}

// SetBusy marks a call in flight; while set, further requests are
// ignored rather than queued.
func (a *AssistantPane) SetBusy(busy bool) {
	a.busy = busy
}

// HasProposal reports whether returned content awaits a decision.
func (a *AssistantPane) HasProposal() bool {
	return a.mode == assistantProposal
}

// Proposal returns the pending content and the intent that produced it.
func (a *AssistantPane) Proposal() (string, Intent) {
	return a.proposal, a.proposalIntent
}

// ShowProposal displays returned content with a diff summary against
// the text it would replace.
func (a *AssistantPane) ShowProposal(intent Intent, content, current string) {
	a.mode = assistantProposal
	a.proposal = content
	a.proposalIntent = intent
	a.diffSummary = summarizeDiff(current, content)
}

// ClearProposal discards pending content and returns to the menu.
func (a *AssistantPane) ClearProposal() {
	a.mode = assistantMenu
	a.proposal = ""
	a.diffSummary = ""
}

// summarizeDiff describes the change a proposal would make.
func summarizeDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)

	var added, removed int
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += len(d.Text)
		case diffmatchpatch.DiffDelete:
			removed += len(d.Text)
		}
	}
	return fmt.Sprintf("+%d −%d chars", added, removed)
}

// Update handles keys while the sidebar has focus. It may emit a
// runIntentMsg for the app to execute.
func (a *AssistantPane) Update(msg tea.KeyMsg) tea.Cmd {
	if !a.available {
		return nil
	}

	switch a.mode {
	case assistantMenu:
		return a.updateMenu(msg)
	case assistantArgInput:
		return a.updateArgInput(msg)
	case assistantProposal:
		// Proposal accept/discard is handled by the app, which owns the
		// editing surface.
		return nil
	}
	return nil
}

func (a *AssistantPane) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(assistantIntents)-1 {
			a.cursor++
		}
	case "enter":
		if a.busy {
			return nil
		}
		intent := assistantIntents[a.cursor]
		if intent == IntentTranslate || intent == IntentCustom {
			a.mode = assistantArgInput
			a.argIntent = intent
			a.argInput.SetValue("")
			if intent == IntentTranslate {
				a.argInput.Placeholder = "Target language, e.g. French"
			} else {
				a.argInput.Placeholder = "Instruction, e.g. make this formal"
			}
			return a.argInput.Focus()
		}
		return func() tea.Msg { return runIntentMsg{intent: intent} }
	}
	return nil
}

func (a *AssistantPane) updateArgInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.mode = assistantMenu
		a.argInput.Blur()
		return nil
	case "enter":
		arg := strings.TrimSpace(a.argInput.Value())
		if arg == "" {
			return nil
		}
		intent := a.argIntent
		a.mode = assistantMenu
		a.argInput.Blur()
		return func() tea.Msg { return runIntentMsg{intent: intent, arg: arg} }
	}

	var cmd tea.Cmd
	a.argInput, cmd = a.argInput.Update(msg)
	return cmd
}

// View renders the sidebar.
func (a *AssistantPane) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Assistant"))
	b.WriteString("\n\n")

	if !a.available {
		b.WriteString(DimStyle.Render("Not configured.\nEnable the assistant and set\nan API URL and key in settings."))
		return lipgloss.NewStyle().Width(a.width).Render(b.String())
	}

	switch a.mode {
	case assistantArgInput:
		b.WriteString(NormalStyle.Render(a.argIntent.String()))
		b.WriteString("\n")
		b.WriteString(a.argInput.View())
		b.WriteString("\n\n")
		b.WriteString(DimStyle.Render("enter run · esc back"))

	case assistantProposal:
		b.WriteString(NormalStyle.Render(a.proposalIntent.String()))
		b.WriteString(" ")
		b.WriteString(WarningStyle.Render(a.diffSummary))
		b.WriteString("\n\n")
		b.WriteString(truncateLines(a.proposal, a.height-8))
		b.WriteString("\n\n")
		b.WriteString(DimStyle.Render("enter apply · esc discard"))

	default:
		for i, intent := range assistantIntents {
			cursor := "  "
			style := NormalStyle
			if i == a.cursor {
				cursor = "> "
				style = SelectedStyle
			}
			b.WriteString(cursor + style.Render(intent.String()) + "\n")
		}
		if a.busy {
			b.WriteString("\n" + WarningStyle.Render("Working..."))
		}
	}

	return lipgloss.NewStyle().Width(a.width).Render(b.String())
}

// truncateLines clips text to at most n lines for the proposal preview.
func truncateLines(text string, n int) string {
	if n < 1 {
		n = 1
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n") + "\n" + DimStyle.Render("…")
}

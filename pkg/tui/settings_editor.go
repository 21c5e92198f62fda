package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mdraft/mdraft-cli/pkg/assistant"
	"github.com/mdraft/mdraft-cli/pkg/files"
	"github.com/mdraft/mdraft-cli/pkg/models"
)

// settingsField indexes the focusable rows of the settings form.
type settingsField int

const (
	fieldTheme settingsField = iota
	fieldShowPreview
	fieldSyncScroll
	fieldTabWidth
	fieldLineNumbers
	fieldWordWrap
	fieldAIEnabled
	fieldAPIURL
	fieldAPIKey
	fieldModel
	fieldTestConnection
	fieldSave
	fieldCount
)

var themes = []string{"dark", "light", "dracula", "notty"}

// connectionTestedMsg carries the outcome of a settings-form
// connection test.
type connectionTestedMsg struct {
	result assistant.Result
}

// SettingsEditor is the settings overlay: a focus-cycling form over
// the persisted configuration, with an inline connection test.
type SettingsEditor struct {
	settings models.Settings
	focus    settingsField

	urlInput   textinput.Model
	keyInput   textinput.Model
	modelInput textinput.Model
	tabInput   textinput.Model

	testStatus string
	testOK     bool
	testing    bool

	width  int
	height int
}

// NewSettingsEditor builds the form pre-filled from current settings.
func NewSettingsEditor(settings models.Settings) *SettingsEditor {
	url := textinput.New()
	url.CharLimit = 200
	url.Width = 40
	url.SetValue(settings.AI.APIURL)

	key := textinput.New()
	key.CharLimit = 200
	key.Width = 40
	key.EchoMode = textinput.EchoPassword
	key.SetValue(settings.AI.APIKey)

	model := textinput.New()
	model.CharLimit = 100
	model.Width = 40
	model.SetValue(settings.AI.Model)

	tab := textinput.New()
	tab.CharLimit = 2
	tab.Width = 4
	tab.SetValue(strconv.Itoa(settings.Editor.TabWidth))

	return &SettingsEditor{
		settings:   settings,
		urlInput:   url,
		keyInput:   key,
		modelInput: model,
		tabInput:   tab,
	}
}

// SetSize stores the overlay dimensions.
func (s *SettingsEditor) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *SettingsEditor) focusedInput() *textinput.Model {
	switch s.focus {
	case fieldAPIURL:
		return &s.urlInput
	case fieldAPIKey:
		return &s.keyInput
	case fieldModel:
		return &s.modelInput
	case fieldTabWidth:
		return &s.tabInput
	default:
		return nil
	}
}

func (s *SettingsEditor) setFocus(f settingsField) tea.Cmd {
	if in := s.focusedInput(); in != nil {
		in.Blur()
	}
	s.focus = f
	if in := s.focusedInput(); in != nil {
		return in.Focus()
	}
	return nil
}

// collect copies input values back into the settings struct.
func (s *SettingsEditor) collect() {
	s.settings.AI.APIURL = strings.TrimSpace(s.urlInput.Value())
	s.settings.AI.APIKey = strings.TrimSpace(s.keyInput.Value())
	s.settings.AI.Model = strings.TrimSpace(s.modelInput.Value())
	if n, err := strconv.Atoi(strings.TrimSpace(s.tabInput.Value())); err == nil && n > 0 && n <= 16 {
		s.settings.Editor.TabWidth = n
	}
}

// Update handles keys while the settings overlay is open.
func (s *SettingsEditor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case connectionTestedMsg:
		s.testing = false
		s.testOK = msg.result.Success
		if msg.result.Success {
			s.testStatus = "Connection OK"
		} else if msg.result.Err != "" {
			s.testStatus = msg.result.Err
		} else {
			s.testStatus = "Connection failed"
		}
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter", " ":
			if cmd, handled := s.activate(msg.String()); handled {
				return cmd
			}
		}

		if in := s.focusedInput(); in != nil {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			return cmd
		}
	}
	return nil
}

// activate applies enter/space to the focused row. Text inputs report
// unhandled so the keystroke reaches the input instead.
func (s *SettingsEditor) activate(key string) (tea.Cmd, bool) {
	switch s.focus {
	case fieldTheme:
		for i, t := range themes {
			if t == s.settings.UI.Theme {
				s.settings.UI.Theme = themes[(i+1)%len(themes)]
				return nil, true
			}
		}
		s.settings.UI.Theme = themes[0]
		return nil, true
	case fieldShowPreview:
		s.settings.UI.ShowPreview = !s.settings.UI.ShowPreview
		return nil, true
	case fieldSyncScroll:
		s.settings.UI.SyncScroll = !s.settings.UI.SyncScroll
		return nil, true
	case fieldLineNumbers:
		s.settings.Editor.ShowLineNumbers = !s.settings.Editor.ShowLineNumbers
		return nil, true
	case fieldWordWrap:
		s.settings.Editor.WordWrap = !s.settings.Editor.WordWrap
		return nil, true
	case fieldAIEnabled:
		s.settings.AI.Enabled = !s.settings.AI.Enabled
		return nil, true
	case fieldTestConnection:
		if key != "enter" || s.testing {
			return nil, true
		}
		s.collect()
		s.testing = true
		s.testStatus = ""
		cfg := s.settings.AI
		return func() tea.Msg {
			return connectionTestedMsg{result: assistant.New(cfg).TestConnection(context.Background())}
		}, true
	case fieldSave:
		if key != "enter" {
			return nil, true
		}
		s.collect()
		saved := s.settings
		return func() tea.Msg {
			if err := files.WriteSettings(&saved); err != nil {
				return fileOpErrMsg{op: "save settings", err: err}
			}
			return settingsAppliedMsg{settings: &saved}
		}, true
	}
	return nil, false
}

func (s *SettingsEditor) row(f settingsField, label, value string) string {
	cursor := "  "
	style := NormalStyle
	if s.focus == f {
		cursor = "> "
		style = SelectedStyle
	}
	return fmt.Sprintf("%s%s %s", cursor, style.Render(label), value)
}

func onOff(v bool) string {
	if v {
		return SuccessStyle.Render("on")
	}
	return DimStyle.Render("off")
}

// View renders the overlay.
func (s *SettingsEditor) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Settings"))
	b.WriteString("\n\n")

	b.WriteString(s.row(fieldTheme, "Theme:", s.settings.UI.Theme) + "\n")
	b.WriteString(s.row(fieldShowPreview, "Show preview:", onOff(s.settings.UI.ShowPreview)) + "\n")
	b.WriteString(s.row(fieldSyncScroll, "Sync scroll:", onOff(s.settings.UI.SyncScroll)) + "\n")
	b.WriteString(s.row(fieldTabWidth, "Tab width:", s.tabInput.View()) + "\n")
	b.WriteString(s.row(fieldLineNumbers, "Line numbers:", onOff(s.settings.Editor.ShowLineNumbers)) + "\n")
	b.WriteString(s.row(fieldWordWrap, "Word wrap:", onOff(s.settings.Editor.WordWrap)) + "\n")
	b.WriteString("\n")
	b.WriteString(s.row(fieldAIEnabled, "Assistant:", onOff(s.settings.AI.Enabled)) + "\n")
	b.WriteString(s.row(fieldAPIURL, "API URL:", s.urlInput.View()) + "\n")
	b.WriteString(s.row(fieldAPIKey, "API key:", s.keyInput.View()) + "\n")
	b.WriteString(s.row(fieldModel, "Model:", s.modelInput.View()) + "\n")
	b.WriteString("\n")

	testLabel := "[ Test connection ]"
	if s.testing {
		testLabel = "[ Testing... ]"
	}
	b.WriteString(s.row(fieldTestConnection, testLabel, "") + "\n")
	if s.testStatus != "" {
		status := ErrorStyle.Render(s.testStatus)
		if s.testOK {
			status = SuccessStyle.Render(s.testStatus)
		}
		b.WriteString("  " + status + "\n")
	}
	b.WriteString(s.row(fieldSave, "[ Save ]", "") + "\n")
	b.WriteString("\n" + DimStyle.Render("tab next · enter toggle/run · esc close"))

	return lipgloss.NewStyle().
		Width(s.width).
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(b.String())
}

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mdraft/mdraft-cli/pkg/assistant"
	"github.com/mdraft/mdraft-cli/pkg/document"
	"github.com/mdraft/mdraft-cli/pkg/files"
	"github.com/mdraft/mdraft-cli/pkg/markdown"
	"github.com/mdraft/mdraft-cli/pkg/models"
	"github.com/mdraft/mdraft-cli/pkg/project"
	"github.com/mdraft/mdraft-cli/pkg/scrollsync"
	"github.com/mdraft/mdraft-cli/pkg/utils"
)

const (
	sidebarWidth   = 32
	statusDuration = 3 * time.Second
)

type focusTarget int

const (
	focusEditor focusTarget = iota
	focusPreview
	focusAssistant
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayBrowser
	overlaySettings
	overlaySaveAs
)

// App is the top-level model: the editor and preview panes, the
// assistant sidebar, and the overlays, wired together around a single
// document.
type App struct {
	root     string
	settings *models.Settings

	doc     *document.Document
	editor  *EditorPane
	preview *PreviewPane
	sidebar *AssistantPane
	browser *Browser
	setform *SettingsEditor
	confirm *ConfirmationModel
	sync    *scrollsync.Synchronizer
	client  *assistant.Client

	focus       focusTarget
	overlay     overlayKind
	showPreview bool

	saveAsInput textinput.Model

	// pending assistant request context, consumed when the result lands
	pendingSource    string
	pendingSelection bool

	// last observed scroll positions, for edge detection
	lastLine    int
	lastYOffset int

	status   string
	statusID int

	width  int
	height int
}

// NewApp builds the application model for the project rooted at root.
// initialPath, when non-empty, is opened on startup.
func NewApp(root string, settings *models.Settings, initialPath string) *App {
	client := assistant.New(settings.AI)

	editor := NewEditorPane(settings.Editor.ShowLineNumbers)
	preview := NewPreviewPane(settings.UI.Theme)
	sync := scrollsync.New(editor, preview)
	sync.SetEnabled(settings.UI.SyncScroll)

	saveAs := textinput.New()
	saveAs.Placeholder = document.DefaultName
	saveAs.CharLimit = 120
	saveAs.Width = 40

	app := &App{
		root:        root,
		settings:    settings,
		doc:         document.New(),
		editor:      editor,
		preview:     preview,
		sidebar:     NewAssistantPane(client.Available()),
		browser:     NewBrowser(),
		confirm:     NewConfirmation(),
		sync:        sync,
		client:      client,
		showPreview: settings.UI.ShowPreview,
		saveAsInput: saveAs,
	}
	if initialPath != "" {
		// Init loads this path; the placeholder document is replaced
		// once the file arrives.
		app.doc.Path = initialPath
	}
	return app
}

// Init opens the initial file if one was given and starts the cursor
// blink.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.editor.Focus()}
	if a.doc.Path != "" {
		cmds = append(cmds, a.loadDocument(a.doc.Path))
	}
	return tea.Batch(cmds...)
}

func (a *App) loadDocument(path string) tea.Cmd {
	return func() tea.Msg {
		text, modTime, err := files.ReadDocument(path)
		if err != nil {
			return fileOpErrMsg{op: "open", err: err}
		}
		return documentOpenedMsg{path: path, text: text, modTime: modTime}
	}
}

func (a *App) saveDocument(path, text string) tea.Cmd {
	return func() tea.Msg {
		if err := files.WriteDocument(path, text); err != nil {
			return fileOpErrMsg{op: "save", err: err}
		}
		return documentSavedMsg{path: path, at: time.Now()}
	}
}

func (a *App) loadTree() tea.Cmd {
	root := a.root
	return func() tea.Msg {
		nodes, err := project.BuildTree(root, "")
		return treeLoadedMsg{nodes: nodes, err: err}
	}
}

func (a *App) setStatus(text string) tea.Cmd {
	a.status = text
	a.statusID++
	id := a.statusID
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

// Update routes messages. Overlays and confirmations take precedence
// over the panes.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case StatusMsg:
		return a, a.setStatus(string(msg))

	case statusClearMsg:
		if msg.id == a.statusID {
			a.status = ""
		}
		return a, nil

	case documentOpenedMsg:
		a.doc = document.NewFromFile(msg.path, msg.text, msg.modTime)
		a.editor.SetValue(msg.text)
		a.preview.Render(msg.text)
		a.lastLine = a.editor.Line()
		a.lastYOffset = a.preview.YOffset()
		a.overlay = overlayNone
		return a, a.setStatus("Opened " + filepath.Base(msg.path))

	case documentSavedMsg:
		a.doc.MarkSaved(msg.path, msg.at)
		return a, a.setStatus("Saved " + filepath.Base(msg.path))

	case fileOpErrMsg:
		return a, a.setStatus(fmt.Sprintf("%s failed: %v", msg.op, msg.err))

	case treeLoadedMsg:
		a.browser.SetNodes(msg.nodes, msg.err)
		return a, nil

	case openFileRequestMsg:
		path := filepath.Join(a.root, msg.path)
		if a.doc.Modified {
			a.confirm.Show(ConfirmationConfig{
				Message:     "Discard changes and open " + msg.path + "?",
				Warning:     "Unsaved changes will be lost",
				Destructive: true,
			}, func() tea.Cmd {
				return a.loadDocument(path)
			}, nil)
			return a, nil
		}
		return a, a.loadDocument(path)

	case runIntentMsg:
		return a, a.runIntent(msg.intent, msg.arg)

	case assistantResultMsg:
		return a, a.handleAssistantResult(msg)

	case settingsAppliedMsg:
		a.applySettings(msg.settings)
		return a, a.setStatus("Settings saved")

	case connectionTestedMsg:
		if a.setform != nil {
			return a, a.setform.Update(msg)
		}
		return a, nil

	case closeOverlayMsg:
		a.closeOverlay()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirm.Active() {
		return a, a.confirm.Update(msg)
	}

	switch a.overlay {
	case overlayBrowser:
		if msg.String() == "esc" {
			a.closeOverlay()
			return a, nil
		}
		return a, a.browser.Update(msg)
	case overlaySettings:
		if msg.String() == "esc" {
			a.closeOverlay()
			return a, nil
		}
		return a, a.setform.Update(msg)
	case overlaySaveAs:
		return a, a.updateSaveAs(msg)
	}

	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		if a.doc.Modified {
			a.confirm.Show(ConfirmationConfig{
				Message:     "Quit without saving?",
				Warning:     "Unsaved changes will be lost",
				Destructive: true,
			}, func() tea.Cmd {
				return tea.Quit
			}, nil)
			return a, nil
		}
		return a, tea.Quit

	case "ctrl+s":
		return a, a.requestSave()

	case "ctrl+n":
		if a.doc.Modified {
			a.confirm.Show(ConfirmationConfig{
				Message:     "Discard changes and start a new document?",
				Warning:     "Unsaved changes will be lost",
				Destructive: true,
			}, func() tea.Cmd {
				a.newDocument()
				return a.setStatus("New document")
			}, nil)
			return a, nil
		}
		a.newDocument()
		return a, a.setStatus("New document")

	case "ctrl+o":
		a.overlay = overlayBrowser
		a.browser.SetSize(a.width-10, a.height-6)
		return a, tea.Batch(a.browser.Focus(), a.loadTree())

	case "ctrl+g":
		a.overlay = overlaySettings
		a.setform = NewSettingsEditor(*a.settings)
		a.setform.SetSize(min(a.width-10, 70), a.height-4)
		return a, nil

	case "ctrl+r":
		a.showPreview = !a.showPreview
		a.layout()
		if a.showPreview {
			a.preview.Render(a.doc.Text)
		}
		return a, nil

	case "ctrl+t":
		a.cycleFocus()
		return a, nil

	case "ctrl+x":
		if a.focus == focusEditor {
			a.editor.ToggleSelection()
			if a.editor.HasSelection() {
				return a, a.setStatus("Selection anchored")
			}
			return a, a.setStatus("Selection cleared")
		}
		return a, nil

	case "ctrl+y":
		return a, a.exportHTML()
	}

	switch a.focus {
	case focusEditor:
		return a, a.updateEditor(msg)
	case focusPreview:
		return a, a.updatePreview(msg)
	case focusAssistant:
		return a, a.updateAssistant(msg)
	}
	return a, nil
}

func (a *App) updateEditor(msg tea.KeyMsg) tea.Cmd {
	cmd := a.editor.Update(msg)

	if text := a.editor.Value(); text != a.doc.Text {
		a.doc.SetText(text)
		if a.showPreview {
			a.preview.Render(text)
		}
	}

	if line := a.editor.Line(); line != a.lastLine {
		a.lastLine = line
		a.sync.ScrollEventA()
		a.lastYOffset = a.preview.YOffset()
	}
	return cmd
}

func (a *App) updatePreview(msg tea.KeyMsg) tea.Cmd {
	cmd := a.preview.Update(msg)

	if offset := a.preview.YOffset(); offset != a.lastYOffset {
		a.lastYOffset = offset
		a.sync.ScrollEventB()
		a.lastLine = a.editor.Line()
	}
	return cmd
}

func (a *App) updateAssistant(msg tea.KeyMsg) tea.Cmd {
	if a.sidebar.HasProposal() {
		switch msg.String() {
		case "enter":
			return a.applyProposal()
		case "esc":
			a.sidebar.ClearProposal()
			return a.setStatus("Discarded")
		}
		return nil
	}
	return a.sidebar.Update(msg)
}

func (a *App) runIntent(intent Intent, arg string) tea.Cmd {
	if a.sidebar.Busy() {
		return nil
	}

	source := a.doc.Text
	onSelection := false
	if sel, ok := a.editor.Selection(); ok && intent.replacesText() {
		source = sel
		onSelection = true
	}
	a.pendingSource = source
	a.pendingSelection = onSelection
	a.sidebar.SetBusy(true)

	client := a.client
	return func() tea.Msg {
		ctx := context.Background()
		var res assistant.Result
		switch intent {
		case IntentContinue:
			res = client.ContinueWriting(ctx, source)
		case IntentOptimize:
			res = client.OptimizeContent(ctx, source)
		case IntentTranslate:
			res = client.Translate(ctx, source, arg)
		case IntentSummarize:
			res = client.Summarize(ctx, source)
		case IntentCustom:
			res = client.CustomPrompt(ctx, arg, source)
		case IntentTestConnection:
			res = client.TestConnection(ctx)
		}
		return assistantResultMsg{intent: intent, result: res}
	}
}

func (a *App) handleAssistantResult(msg assistantResultMsg) tea.Cmd {
	a.sidebar.SetBusy(false)

	if !msg.result.Success {
		return a.setStatus(msg.result.Err)
	}
	if msg.intent == IntentTestConnection {
		return a.setStatus("Assistant connection OK")
	}

	before := a.pendingSource
	if !msg.intent.replacesText() {
		before = ""
	}
	a.sidebar.ShowProposal(msg.intent, msg.result.Content, before)
	a.focus = focusAssistant
	return nil
}

func (a *App) applyProposal() tea.Cmd {
	content, intent := a.sidebar.Proposal()
	if intent.replacesText() {
		if a.pendingSelection {
			a.editor.ReplaceSelection(content)
		} else {
			a.editor.ReplaceAll(content)
		}
	} else {
		a.editor.InsertAtCursor(content)
	}
	a.sidebar.ClearProposal()

	a.doc.SetText(a.editor.Value())
	if a.showPreview {
		a.preview.Render(a.doc.Text)
	}
	a.focus = focusEditor
	return tea.Batch(a.editor.Focus(), a.setStatus("Applied"))
}

func (a *App) newDocument() {
	a.doc = document.New()
	a.editor.SetValue("")
	a.preview.Render("")
	a.lastLine = 0
	a.lastYOffset = 0
	a.focus = focusEditor
	a.editor.Focus()
}

func (a *App) requestSave() tea.Cmd {
	if !a.doc.HasPath() {
		a.overlay = overlaySaveAs
		a.saveAsInput.SetValue(document.DefaultName)
		return a.saveAsInput.Focus()
	}
	return a.saveDocument(a.doc.Path, a.doc.Text)
}

func (a *App) updateSaveAs(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.closeOverlay()
		return nil
	case "enter":
		name := strings.TrimSpace(a.saveAsInput.Value())
		if name == "" {
			return nil
		}
		if !strings.HasSuffix(name, ".md") {
			name += ".md"
		}
		a.closeOverlay()
		return a.saveDocument(filepath.Join(a.root, name), a.doc.Text)
	}
	var cmd tea.Cmd
	a.saveAsInput, cmd = a.saveAsInput.Update(msg)
	return cmd
}

func (a *App) exportHTML() tea.Cmd {
	html := markdown.RenderHTML(a.doc.Text)
	if err := clipboard.WriteAll(html); err != nil {
		return a.setStatus(fmt.Sprintf("copy failed: %v", err))
	}
	return a.setStatus("HTML copied to clipboard")
}

func (a *App) applySettings(settings *models.Settings) {
	a.settings = settings
	a.client = assistant.New(settings.AI)
	a.sidebar.SetAvailable(a.client.Available())
	a.sync.SetEnabled(settings.UI.SyncScroll)
	a.preview.SetTheme(settings.UI.Theme)
	a.showPreview = settings.UI.ShowPreview
	a.closeOverlay()
	a.layout()
	if a.showPreview {
		a.preview.Render(a.doc.Text)
	}
}

func (a *App) closeOverlay() {
	switch a.overlay {
	case overlayBrowser:
		a.browser.Blur()
	case overlaySaveAs:
		a.saveAsInput.Blur()
	case overlaySettings:
		a.setform = nil
	}
	a.overlay = overlayNone
}

func (a *App) cycleFocus() {
	a.editor.Blur()
	switch a.focus {
	case focusEditor:
		if a.showPreview {
			a.focus = focusPreview
		} else {
			a.focus = focusAssistant
		}
	case focusPreview:
		a.focus = focusAssistant
	case focusAssistant:
		a.focus = focusEditor
		a.editor.Focus()
	}
}

// layout distributes the window between the panes. The assistant
// sidebar keeps a fixed width; the editor and preview split the rest.
func (a *App) layout() {
	if a.width == 0 {
		return
	}
	contentHeight := a.height - 2 // status bar
	main := a.width - sidebarWidth
	if main < 20 {
		main = a.width
	}

	if a.showPreview {
		half := main / 2
		a.editor.SetSize(half-2, contentHeight-2)
		a.preview.SetSize(main-half-2, contentHeight-2)
	} else {
		a.editor.SetSize(main-2, contentHeight-2)
	}
	a.sidebar.SetSize(sidebarWidth-2, contentHeight-2)
}

// View renders the panes, or the active overlay centered over a dimmed
// frame.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.confirm.Active() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			a.confirm.ViewWithWidth(min(a.width-4, 60)))
	}

	switch a.overlay {
	case overlayBrowser:
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.browser.View())
	case overlaySettings:
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.setform.View())
	case overlaySaveAs:
		box := TitleStyle.Render("Save As") + "\n\n" + a.saveAsInput.View() + "\n\n" +
			DimStyle.Render("enter save · esc cancel")
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).Render(box))
	}

	panes := []string{a.frame(a.editor.View(), a.focus == focusEditor)}
	if a.showPreview {
		panes = append(panes, a.frame(a.preview.View(), a.focus == focusPreview))
	}
	panes = append(panes, a.frame(a.sidebar.View(), a.focus == focusAssistant))

	content := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar())
}

func (a *App) frame(content string, active bool) string {
	if active {
		return ActiveBorderStyle.Render(content)
	}
	return InactiveBorderStyle.Render(content)
}

func (a *App) statusBar() string {
	name := a.doc.Name
	if a.doc.Modified {
		name = ModifiedStyle.Render(name + " •")
	}

	stats := utils.FormatStats(utils.Measure(a.doc.Text))

	parts := []string{name, stats}
	if a.sync.Enabled() && a.showPreview {
		parts = append(parts, "sync")
	}
	if a.status != "" {
		parts = append(parts, a.status)
	}

	line := strings.Join(parts, "  ·  ")
	return StatusBarStyle.Width(a.width).Render(line)
}

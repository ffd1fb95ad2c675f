package shell

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"inlaw/cmd/inlaw/ui"
	"inlaw/internal/assistant"
	"inlaw/internal/files"
	"inlaw/internal/logging"
	"inlaw/internal/orchestrator"
	"inlaw/internal/state"
)

func describeFile(path string) (state.FileInfo, error) {
	return files.Describe(path)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(ui.NewLayoutConfig(msg.Width, msg.Height))
		m.ready = true
		return m, nil

	case deferredMsg:
		m.orch.Fire(msg.task)
		return m.synced()

	case StoreChangedMsg:
		logging.ShellDebug("store changed externally, reloading")
		m.orch.Reload()
		return m.synced()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	if m.picking != pickNone {
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleMouse closes the open dialog on a click outside its box.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.snap.Navigation.Prompt != nil || !m.snap.Navigation.DialogOpen() {
		return m, nil
	}
	box := m.dialogOverlay()
	rect := m.layout.DialogRect(lipgloss.Width(box), lipgloss.Height(box))
	if rect.Contains(msg.X, msg.Y) {
		return m, nil
	}
	logging.ShellDebug("backdrop click at %d,%d", msg.X, msg.Y)
	m.orch.CloseDialog()
	return m.synced()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	nav := m.snap.Navigation
	if nav.Prompt != nil {
		switch strings.ToLower(msg.String()) {
		case "y", "enter":
			m.orch.ResolvePrompt(true)
		case "n", "esc":
			m.orch.ResolvePrompt(false)
		default:
			return m, nil
		}
		return m.synced()
	}

	if m.picking != pickNone {
		return m.handlePicker(msg)
	}

	switch msg.Type {
	case tea.KeyEsc:
		switch {
		case nav.DialogOpen():
			m.orch.CloseDialog()
		case nav.Notice != nil || nav.Warning != "":
			m.orch.DismissNotice()
		default:
			m.status = ""
			return m, nil
		}
		return m.synced()
	case tea.KeyCtrlT:
		m.orch.ToggleTheme()
		return m.synced()
	}

	if nav.DialogOpen() {
		return m.handleDialogKey(msg)
	}
	if nav.SignInVisible {
		return m.handleSignInKey(msg)
	}
	if model, cmd, ok := m.handleShortcut(msg); ok {
		return model, cmd
	}

	switch nav.ActiveView {
	case state.ViewTemplates:
		return m.handleTemplatesKey(msg)
	case state.ViewCaseSearch:
		return m.handleSearchKey(msg)
	case state.ViewDocuments:
		return m.handleDocumentsKey(msg)
	default:
		return m.handleChatKey(msg)
	}
}

// handleShortcut runs keys that work from every view once signed in.
func (m Model) handleShortcut(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyF1:
		m.orch.SetView(state.ViewChat)
	case tea.KeyF2:
		m.orch.SetView(state.ViewTemplates)
	case tea.KeyF3:
		m.orch.SetView(state.ViewCaseSearch)
	case tea.KeyF4:
		m.orch.SetView(state.ViewDocuments)
	case tea.KeyCtrlN:
		m.input.Reset()
		m.recentCursor = -1
		m.orch.StartNewChat()
	case tea.KeyCtrlR:
		m.orch.RegenerateLast()
	case tea.KeyCtrlO:
		target := pickAttach
		if m.snap.Navigation.ActiveView == state.ViewDocuments {
			target = pickUpload
		}
		return m.openPicker(target)
	case tea.KeyCtrlS:
		m.orch.OpenDialog(state.DialogSettings, nil)
	case tea.KeyCtrlP:
		m.orch.OpenDialog(state.DialogProfile, nil)
	case tea.KeyCtrlL:
		m.orch.OpenPricing()
	case tea.KeyCtrlX:
		m.orch.SignOut()
	default:
		return m, nil, false
	}
	model, cmd := m.synced()
	return model, cmd, true
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	conv := m.snap.Conversation
	switch msg.String() {
	case "enter":
		if m.orch.SendMessage(m.input.Value()) {
			m.input.Reset()
		}
		return m.synced()
	case "alt+up":
		if n := len(conv.RecentSummaries); n > 0 {
			m.recentCursor = max(m.recentCursor-1, 0)
		}
		return m, nil
	case "alt+down":
		if n := len(conv.RecentSummaries); n > 0 {
			m.recentCursor = min(m.recentCursor+1, n-1)
		}
		return m, nil
	case "alt+enter":
		if m.recentCursor >= 0 && m.recentCursor < len(conv.RecentSummaries) {
			m.orch.OpenRecent(conv.RecentSummaries[m.recentCursor].ID)
			m.input.Reset()
			return m.synced()
		}
		return m, nil
	case "alt+1", "alt+2", "alt+3", "alt+4":
		if len(conv.Messages) == 0 {
			m.orch.SendSuggestion(int(msg.String()[4] - '1'))
			return m.synced()
		}
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != conv.Draft {
		m.orch.SetDraft(v)
		return m.synced(cmd)
	}
	return m, cmd
}

// templateRow is a line of the Templates view: a category header when kind
// is TemplateNone, otherwise a template inside category.
type templateRow struct {
	category int
	kind     state.TemplateKind
}

// templateRows lists the visible rows. Collapsed categories show only
// their header.
func (m Model) templateRows() []templateRow {
	var rows []templateRow
	for ci, c := range state.TemplateCatalog {
		rows = append(rows, templateRow{category: ci})
		if m.collapsed[c.Name] {
			continue
		}
		for _, k := range c.Templates {
			rows = append(rows, templateRow{category: ci, kind: k})
		}
	}
	return rows
}

// toggleCategory collapses or expands a category and parks the cursor on
// its header.
func (m *Model) toggleCategory(ci int) {
	name := state.TemplateCatalog[ci].Name
	m.collapsed[name] = !m.collapsed[name]
	for i, r := range m.templateRows() {
		if r.category == ci && r.kind == state.TemplateNone {
			m.templateCursor = i
			return
		}
	}
}

func (m Model) handleTemplatesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.templateRows()
	m.templateCursor = min(m.templateCursor, len(rows)-1)
	row := rows[m.templateCursor]
	switch msg.Type {
	case tea.KeyUp:
		m.templateCursor = max(m.templateCursor-1, 0)
	case tea.KeyDown:
		m.templateCursor = min(m.templateCursor+1, len(rows)-1)
	case tea.KeySpace:
		m.toggleCategory(row.category)
	case tea.KeyEnter:
		if row.kind == state.TemplateNone {
			m.toggleCategory(row.category)
			return m, nil
		}
		m.orch.OpenTemplate(row.kind)
		return m.synced()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if err := m.orch.SubmitSearch(m.search.Value()); err != nil {
			m.status = errorText(err)
			return m, nil
		}
		m.status = ""
		return m.synced()
	}
	if !m.search.Focused() {
		m.search.Focus()
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleDocumentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kinds := map[string]state.AnalysisKind{
		"s": state.AnalysisSummary,
		"e": state.AnalysisErrors,
		"c": state.AnalysisCompliance,
	}
	key := msg.String()
	if kind, ok := kinds[key]; ok {
		if _, ok := m.orch.AnalyzeDocument(kind); !ok {
			m.status = "Upload a PDF or Word document first (ctrl+o)."
			if a := m.snap.Conversation.Analysis; a != nil && a.Analyzing {
				m.status = "Analyzing " + a.Result.Kind.String() + "…"
			}
			return m, nil
		}
		m.status = ""
		return m.synced()
	}
	if key == "x" {
		m.orch.ClearUpload()
		return m.synced()
	}
	return m, nil
}

func (m Model) openPicker(target pickTarget) (tea.Model, tea.Cmd, bool) {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf", ".doc", ".docx", ".txt", ".png", ".jpg", ".jpeg", ".gif"}
	if target == pickUpload {
		fp.AllowedTypes = []string{".pdf", ".doc", ".docx"}
	}
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}
	fp.Height = max(m.layout.TerminalHeight-8, 3)
	m.picker = fp
	m.picking = target
	m.status = ""
	return m, m.picker.Init(), true
}

func (m Model) handlePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.picking = pickNone
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.status = sentence(orchestrator.ErrUnsupportedType.Error()) + ": " + path
		return m, cmd
	}
	ok, path := m.picker.DidSelectFile(msg)
	if !ok {
		return m, cmd
	}

	target := m.picking
	m.picking = pickNone
	info, err := m.describe(path)
	if err != nil {
		logging.ShellDebug("describe %s: %v", path, err)
		m.status = "Could not read " + path
		return m.synced(cmd)
	}
	if target == pickUpload {
		err = m.orch.UploadDocument(info)
	} else {
		err = m.orch.AttachFile(info)
	}
	m.status = fileStatus(err)
	return m.synced(cmd)
}

func fileStatus(err error) string {
	var ferr *orchestrator.FileError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, orchestrator.ErrTooLarge):
		return "File size must be less than 10MB"
	case errors.As(err, &ferr):
		return "Unsupported file type: " + ferr.Mime
	default:
		return sentence(err.Error())
	}
}

// suggestionLabel numbers a suggestion for the welcome screen.
func suggestionLabel(i int, s assistant.Suggestion) string {
	return "alt+" + string(rune('1'+i)) + "  " + s.Label
}

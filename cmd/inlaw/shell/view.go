package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"inlaw/cmd/inlaw/ui"
	"inlaw/internal/assistant"
	"inlaw/internal/orchestrator"
	"inlaw/internal/state"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	nav := m.snap.Navigation

	switch {
	case nav.Prompt != nil:
		return m.place(m.renderPrompt(*nav.Prompt))
	case nav.DialogOpen():
		return m.place(m.dialogOverlay())
	case m.picking != pickNone:
		title := m.styles.Header.Render(" Select a file ")
		return lipgloss.JoinVertical(lipgloss.Left, title, m.styles.Content.Render(m.picker.View()))
	case nav.SignInVisible:
		return m.place(m.withBanner(m.renderSignIn()))
	}

	main := m.renderMain()
	if w := m.layout.SidebarWidth(); w > 0 {
		main = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(w), main)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		main,
		m.renderBanner(),
		m.renderFooter(),
	)
}

// dialogOverlay is the open dialog with the banner beneath it.
func (m Model) dialogOverlay() string {
	return m.withBanner(m.renderDialog())
}

func (m Model) withBanner(box string) string {
	if b := m.renderBanner(); b != "" {
		return lipgloss.JoinVertical(lipgloss.Center, box, b)
	}
	return box
}

// place centers an overlay on the screen, matching DialogRect.
func (m Model) place(box string) string {
	return lipgloss.Place(m.layout.TerminalWidth, m.layout.TerminalHeight, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderHeader() string {
	s := m.styles
	tabs := make([]string, 0, len(state.Views))
	for i, v := range state.Views {
		label := fmt.Sprintf("F%d %s", i+1, v)
		if v == m.snap.Navigation.ActiveView {
			tabs = append(tabs, s.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, s.Tab.Render(label))
		}
	}
	sess := m.snap.Session
	user := s.Muted.Render(sess.Name()) + " " + s.Badge.Render(sess.Plan.Label())
	return lipgloss.JoinHorizontal(lipgloss.Center, ui.Logo(s), "  ", strings.Join(tabs, ""), "  ", user)
}

func (m Model) renderSidebar(width int) string {
	s := m.styles
	var sb strings.Builder
	sb.WriteString(s.Bold.Render("Recent") + "\n")
	recent := m.snap.Conversation.RecentSummaries
	if len(recent) == 0 {
		sb.WriteString(s.Muted.Render("No conversations yet"))
	}
	for i, r := range recent {
		line := truncate(r.Preview, width-4)
		if i == m.recentCursor {
			sb.WriteString(s.Selected.Render("› "+line) + "\n")
		} else {
			sb.WriteString(s.Muted.Render("  "+line) + "\n")
		}
	}
	return s.Sidebar.Width(width).Height(m.layout.TranscriptHeight() + ui.InputHeight).Render(sb.String())
}

func (m Model) renderMain() string {
	var body string
	switch m.snap.Navigation.ActiveView {
	case state.ViewTemplates:
		body = m.renderTemplates()
	case state.ViewCaseSearch:
		body = m.renderSearch()
	case state.ViewDocuments:
		body = m.renderDocuments()
	default:
		body = m.renderChat()
	}
	return m.styles.Content.Width(m.layout.MainWidth()).Render(body)
}

func (m Model) renderChat() string {
	conv := m.snap.Conversation
	var top string
	if len(conv.Messages) == 0 {
		top = m.renderWelcome()
	} else {
		top = m.transcript.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, m.input.View())
}

func (m Model) renderWelcome() string {
	s := m.styles
	g := assistant.Greet(m.now(), m.snap.Session.Name())
	var sb strings.Builder
	sb.WriteString(s.Title.Render(g.String()) + "\n")
	sb.WriteString(s.Subtitle.Render(g.Subtext) + "\n\n")
	for i, sug := range assistant.Suggestions {
		sb.WriteString(s.Body.Render(suggestionLabel(i, sug)) + "\n")
	}
	return lipgloss.NewStyle().Height(m.layout.TranscriptHeight()).Render(sb.String())
}

func (m Model) renderTranscript() string {
	s := m.styles
	var sb strings.Builder
	for _, msg := range m.snap.Conversation.Messages {
		if msg.Role == state.RoleAssistant {
			sb.WriteString(s.AssistantLabel.Render("Assistant") + "\n")
			sb.WriteString(m.md.Render(msg.Text) + "\n")
			continue
		}
		sb.WriteString(s.UserLabel.Render("You") + "\n")
		if msg.Attachment != nil {
			sb.WriteString(s.Attachment.Render("📎 "+msg.Text) + "\n\n")
			continue
		}
		sb.WriteString(s.UserMessage.Render(msg.Text) + "\n\n")
	}
	return sb.String()
}

func (m Model) renderTemplates() string {
	s := m.styles
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Document templates") + "\n")
	for i, r := range m.templateRows() {
		var line string
		if r.kind == state.TemplateNone {
			if i > 0 {
				sb.WriteString("\n")
			}
			c := state.TemplateCatalog[r.category]
			marker := "▾ "
			if m.collapsed[c.Name] {
				marker = "▸ "
			}
			line = s.Bold.Render(marker + c.Name)
		} else {
			line = "    " + r.kind.String()
		}
		switch {
		case i == m.templateCursor:
			sb.WriteString(s.Selected.Render("› "+strings.TrimLeft(line, " ")) + "\n")
		case r.kind == state.TemplateNone:
			sb.WriteString(line + "\n")
		default:
			sb.WriteString(s.Body.Render(line) + "\n")
		}
	}
	sb.WriteString("\n" + s.Muted.Render("↑/↓ choose • enter open • space fold category"))
	return sb.String()
}

func (m Model) renderSearch() string {
	s := m.styles
	search := m.snap.Conversation.Search
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Case search") + "\n")
	sb.WriteString(m.search.View() + "\n\n")
	switch {
	case search.Loading:
		sb.WriteString(s.Spinner.Render(m.spinner.View()) + " Searching for " + s.Bold.Render(search.Query) + "...\n")
	case search.Query != "" && len(search.Results) == 0:
		sb.WriteString(s.Muted.Render("No results for "+search.Query) + "\n")
	}
	if !search.Loading {
		for _, r := range search.Results {
			sb.WriteString(s.Bold.Render(r.Title) + "\n")
			sb.WriteString(s.Muted.Render(r.Court+" • "+r.Date+" • "+r.Type) + "\n\n")
		}
	}
	return sb.String()
}

func (m Model) renderDocuments() string {
	s := m.styles
	conv := m.snap.Conversation
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Document analysis") + "\n")
	if conv.PendingUpload == nil {
		sb.WriteString(s.Muted.Render("No document uploaded. Press ctrl+o to choose a PDF or Word file.") + "\n")
		return sb.String()
	}
	up := conv.PendingUpload
	sb.WriteString(s.Bold.Render(up.Name) + " " + s.Muted.Render(orchestrator.FormatSize(up.SizeBytes)) + "\n")
	sb.WriteString(s.Muted.Render("s summary • e find errors • c compliance • x remove") + "\n\n")

	a := conv.Analysis
	switch {
	case a == nil:
	case a.Analyzing:
		sb.WriteString(s.Spinner.Render(m.spinner.View()) + " Analyzing " + a.Result.Kind.String() + "...\n")
	default:
		sb.WriteString(m.renderAnalysis(a.Result))
	}
	return sb.String()
}

func (m Model) renderAnalysis(r state.AnalysisResult) string {
	s := m.styles
	var sb strings.Builder
	sb.WriteString(s.Title.Render(r.Title) + "\n")
	for _, line := range r.Body {
		sb.WriteString(s.Body.Render(line) + "\n")
	}
	for _, f := range r.Findings {
		sb.WriteString(s.Warning.Render(fmt.Sprintf("Line %d: ", f.Line)) + s.Body.Render(f.Message) + "\n")
	}
	if r.Kind == state.AnalysisCompliance {
		sb.WriteString(s.Success.Render(fmt.Sprintf("Compliance score: %d%%", r.Compliance)) + "\n")
	}
	return sb.String()
}

func (m Model) renderSignIn() string {
	s := m.styles
	content := lipgloss.JoinVertical(lipgloss.Left,
		ui.Logo(s),
		s.DialogTitle.Render("Sign in"),
		m.signIn.view(s),
		s.Muted.Render("enter sign in • ctrl+g Google • ctrl+u create account • tab next"),
	)
	return s.Dialog.Width(m.layout.DialogWidth()).Render(content)
}

func (m Model) renderPrompt(p state.Prompt) string {
	s := m.styles
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Body.Render(p.Text),
		"",
		s.Muted.Render("y / enter confirm • n / esc cancel"),
	)
	return s.Prompt.Width(m.layout.DialogWidth()).Render(content)
}

// renderBanner shows the storage warning, the notice and the status line.
func (m Model) renderBanner() string {
	s := m.styles
	nav := m.snap.Navigation
	var lines []string
	if nav.Warning != "" {
		lines = append(lines, s.Warning.Render("⚠ "+nav.Warning))
	}
	if nav.Notice != nil {
		style := s.Success
		if nav.Notice.Level == state.NoticeWarning {
			style = s.Warning
		}
		lines = append(lines, style.Render(strings.ReplaceAll(nav.Notice.Text, "\n\n", " • "))+s.Muted.Render("  (esc)"))
	}
	if m.status != "" {
		lines = append(lines, s.Error.Render(m.status))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	help := "ctrl+n new • ctrl+r regenerate • ctrl+o attach • ctrl+s settings • ctrl+p profile • ctrl+l plans • ctrl+t theme • ctrl+x sign out"
	if m.layout.IsCompact {
		help = "ctrl+n new • ctrl+o attach • ctrl+s settings • ctrl+c quit"
	}
	return m.styles.Footer.Render(help)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

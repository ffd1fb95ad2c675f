// Package ui provides the visual styling for the inlaw terminal client.
// The palette is navy ink on paper with brass highlights; dark mode keeps
// the brass and inverts paper and ink.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"inlaw/internal/state"
)

const (
	brass     = lipgloss.Color("#b08d57")
	oxblood   = lipgloss.Color("#c0392b")
	sealGreen = lipgloss.Color("#2e7d32")
	amber     = lipgloss.Color("#e0a800")
)

// Theme is a palette named after the page it paints.
type Theme struct {
	Paper   lipgloss.Color // screen background
	Ink     lipgloss.Color // body text
	Heading lipgloss.Color // titles and the header bar
	Faded   lipgloss.Color // hints and secondary text
	Rule    lipgloss.Color // borders
	Sheet   lipgloss.Color // dialog background
	IsDark  bool
}

func LightTheme() Theme {
	return Theme{
		Paper:   "#f7f6f2",
		Ink:     "#1b2a41",
		Heading: "#1b2a41",
		Faded:   "#8a8f98",
		Rule:    "#d9d6cc",
		Sheet:   "#ffffff",
	}
}

func DarkTheme() Theme {
	return Theme{
		Paper:   "#111827",
		Ink:     "#ececec",
		Heading: "#d4b483",
		Faded:   "#6b7280",
		Rule:    "#374151",
		Sheet:   "#1f2937",
		IsDark:  true,
	}
}

// ThemeFor maps the persisted theme preference to a palette.
func ThemeFor(t state.Theme) Theme {
	if t == state.ThemeDark {
		return DarkTheme()
	}
	return LightTheme()
}

// GlamourStyle names the glamour standard style matching the palette.
func (t Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// Styles are the rendered pieces of the shell, one per visual role.
type Styles struct {
	Theme Theme

	Header, Footer, Content, Sidebar lipgloss.Style

	Title, Subtitle, Body, Muted, Bold lipgloss.Style

	// Tab is a view in the header; Selected marks the cursor row in lists.
	Tab, ActiveTab, Selected lipgloss.Style

	UserLabel, AssistantLabel, UserMessage, Attachment lipgloss.Style

	Dialog, DialogTitle, Prompt lipgloss.Style
	// Field labels a form input; FocusField labels the focused one.
	Field, FocusField lipgloss.Style

	Success, Error, Warning lipgloss.Style
	Spinner, Badge          lipgloss.Style
}

// NewStyles builds every style from t.
func NewStyles(t Theme) Styles {
	plain := lipgloss.NewStyle()
	ink := plain.Foreground(t.Ink)
	faded := plain.Foreground(t.Faded)
	highlight := plain.Foreground(brass).Bold(true)
	heading := plain.Foreground(t.Heading).Bold(true)

	return Styles{
		Theme: t,

		Header:  plain.Background(t.Heading).Foreground(t.Paper).Bold(true).Padding(0, 2),
		Footer:  faded.Padding(0, 2),
		Content: plain.Padding(1, 2),
		Sidebar: plain.Padding(1, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(t.Rule),

		Title:    heading.MarginBottom(1),
		Subtitle: faded.Italic(true),
		Body:     ink,
		Muted:    faded,
		Bold:     ink.Bold(true),

		Tab:       faded.Padding(0, 1),
		ActiveTab: highlight.Underline(true).Padding(0, 1),
		Selected:  highlight,

		UserLabel:      heading.MarginTop(1),
		AssistantLabel: highlight.MarginTop(1),
		UserMessage:    ink.PaddingLeft(2),
		Attachment:     faded.Italic(true).PaddingLeft(2),

		Dialog: ink.Background(t.Sheet).
			Padding(1, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brass),
		DialogTitle: heading.MarginBottom(1),
		Prompt: ink.Padding(1, 3).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(amber),
		Field:      faded,
		FocusField: highlight,

		Success: plain.Foreground(sealGreen).Bold(true),
		Error:   plain.Foreground(oxblood).Bold(true),
		Warning: plain.Foreground(amber).Bold(true),
		Spinner: plain.Foreground(brass),
		Badge:   plain.Background(brass).Foreground(t.Paper).Bold(true).Padding(0, 1),
	}
}

// StylesFor is NewStyles(ThemeFor(t)).
func StylesFor(t state.Theme) Styles {
	return NewStyles(ThemeFor(t))
}

// Logo returns the product wordmark.
func Logo(s Styles) string {
	return s.Title.Render("⚖  inlaw") + "  " + s.Subtitle.Render("legal assistant")
}

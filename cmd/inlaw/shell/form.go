package shell

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"inlaw/cmd/inlaw/ui"
	"inlaw/internal/state"
)

type fieldKind int

const (
	textField fieldKind = iota
	passwordField
	toggleField
)

// field is one row of a form: a text input or an on/off toggle.
type field struct {
	label string
	kind  fieldKind
	input textinput.Model
	on    bool
}

func newInput(value, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

func textRow(label, value, placeholder string) field {
	return field{label: label, kind: textField, input: newInput(value, placeholder)}
}

func passwordRow(label string) field {
	ti := newInput("", "••••••••")
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return field{label: label, kind: passwordField, input: ti}
}

func toggleRow(label string, on bool) field {
	return field{label: label, kind: toggleField, on: on}
}

// form is a focusable list of fields with a single error line.
type form struct {
	fields []field
	focus  int
	err    string
	// tag is the dialog context the form was built from.
	tag state.DialogContext
}

func newForm(fields ...field) form {
	f := form{fields: fields}
	f.focusAt(0)
	return f
}

func (f *form) focusAt(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.focus = (i%len(f.fields) + len(f.fields)) % len(f.fields)
	var cmd tea.Cmd
	for j := range f.fields {
		if f.fields[j].kind == toggleField {
			continue
		}
		if j == f.focus {
			cmd = f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	return cmd
}

func (f *form) next() tea.Cmd { return f.focusAt(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.focusAt(f.focus - 1) }

func (f form) value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return f.fields[i].input.Value()
}

func (f form) toggled(i int) bool {
	if i < 0 || i >= len(f.fields) {
		return false
	}
	return f.fields[i].on
}

func (f *form) setWidth(w int) {
	for i := range f.fields {
		f.fields[i].input.Width = max(w, 10)
	}
}

// update routes a key to the focused field. Tab and arrows move focus;
// space flips a focused toggle.
func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return f.next()
	case tea.KeyShiftTab, tea.KeyUp:
		return f.prev()
	}
	cur := &f.fields[f.focus]
	if cur.kind == toggleField {
		if msg.Type == tea.KeySpace || msg.String() == " " {
			cur.on = !cur.on
		}
		return nil
	}
	var cmd tea.Cmd
	cur.input, cmd = cur.input.Update(msg)
	f.err = ""
	return cmd
}

func (f form) view(s ui.Styles) string {
	var sb strings.Builder
	for i, fl := range f.fields {
		label := s.Field
		if i == f.focus {
			label = s.FocusField
		}
		switch fl.kind {
		case toggleField:
			box := "[ ]"
			if fl.on {
				box = "[x]"
			}
			sb.WriteString(label.Render(box+" "+fl.label) + "\n")
		default:
			sb.WriteString(label.Render(fl.label) + "\n")
			sb.WriteString("  " + fl.input.View() + "\n")
		}
	}
	if f.err != "" {
		sb.WriteString("\n" + s.Error.Render(sentence(f.err)) + "\n")
	}
	return sb.String()
}

// sentence capitalizes the first letter of an error message.
func sentence(msg string) string {
	r := []rune(msg)
	if len(r) == 0 {
		return msg
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

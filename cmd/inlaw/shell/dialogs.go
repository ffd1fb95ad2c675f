package shell

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"inlaw/internal/orchestrator"
	"inlaw/internal/state"
)

// Field positions per form.
const (
	signInEmail = iota
	signInPassword
	signInRemember
)

const (
	signUpName = iota
	signUpEmail
	signUpPassword
	signUpConfirm
)

const (
	settingsName = iota
	settingsEmail
	settingsFirm
	settingsPractice
	settingsLanguage
	settingsDateFormat
	settingsNotifications
	settingsCitations
	settingsAutoSave
)

const (
	templateTitle = iota
	templateDetails
)

const (
	studentEmail = iota
	studentID
	studentInstitution
)

// syncForms rebuilds the local form state when the orchestrator opened a
// different dialog or toggled the sign-in surface.
func (m *Model) syncForms() {
	nav := m.snap.Navigation
	rebuild := nav.ActiveDialog != m.dialogKind
	if tc, ok := nav.DialogContext.(state.TemplateContext); ok && !rebuild {
		prev, _ := m.dialogContext().(state.TemplateContext)
		rebuild = tc != prev
	}
	if rebuild {
		m.dialogKind = nav.ActiveDialog
		m.dialog = dialogForm(nav.DialogContext)
		m.dialog.setWidth(m.layout.DialogWidth() - 8)
		m.pricingCursor = 0
		if pc, ok := nav.DialogContext.(state.PricingContext); ok {
			for i, p := range pricingPlans {
				if p == pc.Selected {
					m.pricingCursor = i
				}
			}
		}
	}

	switch {
	case nav.SignInVisible && len(m.signIn.fields) == 0:
		m.signIn = newForm(
			textRow("Email", "", "you@firm.co.ke"),
			passwordRow("Password"),
			toggleRow("Remember me", false),
		)
		m.signIn.setWidth(m.layout.DialogWidth() - 8)
	case !nav.SignInVisible:
		m.signIn = form{}
	}
}

func (m Model) dialogContext() state.DialogContext {
	return m.dialog.tag
}

// dialogForm builds the inputs for a dialog, prefilled from its context.
func dialogForm(ctx state.DialogContext) form {
	var f form
	switch c := ctx.(type) {
	case state.TemplateContext:
		f = newForm(
			textRow("Document title", "", c.Template.String()+" for ..."),
			textRow("Details", "", "Parties, amounts, dates"),
		)
	case state.SettingsContext:
		d := c.Draft
		f = newForm(
			textRow("Full name", d.Name, "Advocate name"),
			textRow("Email", d.Email, "you@firm.co.ke"),
			textRow("Law firm", d.Firm, ""),
			textRow("Practice area", d.Practice, ""),
			textRow("Language", d.Language, "en"),
			textRow("Date format", d.DateFormat, "dd/mm/yyyy"),
			toggleRow("Email notifications", d.Notifications),
			toggleRow("Include citations", d.Citations),
			toggleRow("Auto-save drafts", d.AutoSave),
		)
	case state.ProfileContext:
		f = newForm(passwordRow("New password"))
	case state.StudentVerificationContext:
		f = newForm(
			textRow("Student email", c.Email, "you@students.uonbi.ac.ke"),
			textRow("Student ID", c.StudentID, ""),
			textRow("Institution", c.Institution, "University of Nairobi"),
		)
	case state.SignUpContext:
		f = newForm(
			textRow("Full name", c.Name, ""),
			textRow("Email", c.Email, "you@firm.co.ke"),
			passwordRow("Password"),
			passwordRow("Confirm password"),
		)
	}
	f.tag = ctx
	return f
}

func (m Model) handleSignInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		_, err := m.orch.SignIn(m.signIn.value(signInEmail), m.signIn.value(signInPassword), m.signIn.toggled(signInRemember))
		if err != nil {
			m.signIn.err = errorText(err)
			return m, nil
		}
	case tea.KeyCtrlG:
		m.orch.SignInWithGoogle()
	case tea.KeyCtrlU:
		m.orch.OpenDialog(state.DialogSignUp, nil)
	default:
		cmd := m.signIn.update(msg)
		return m, cmd
	}
	return m.synced()
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind := m.snap.Navigation.ActiveDialog
	if kind == state.DialogPricing {
		switch msg.Type {
		case tea.KeyUp:
			m.pricingCursor = max(m.pricingCursor-1, 0)
			return m, nil
		case tea.KeyDown:
			m.pricingCursor = min(m.pricingCursor+1, len(pricingPlans)-1)
			return m, nil
		case tea.KeyEnter:
			m.orch.SelectPlan(pricingPlans[m.pricingCursor])
		case tea.KeyCtrlE:
			m.orch.ContactSales()
		default:
			return m, nil
		}
		return m.synced()
	}

	switch {
	case msg.Type == tea.KeyEnter:
		if err := m.submitDialog(kind); err != nil {
			m.dialog.err = errorText(err)
			return m, nil
		}
	case kind == state.DialogProfile && msg.Type == tea.KeyCtrlU:
		m.orch.UpgradePlan()
	case kind == state.DialogSignUp && msg.Type == tea.KeyCtrlG:
		m.orch.SignInWithGoogle()
	default:
		cmd := m.dialog.update(msg)
		return m, cmd
	}
	return m.synced()
}

func (m Model) submitDialog(kind state.DialogKind) error {
	f := m.dialog
	switch kind {
	case state.DialogTemplate:
		return m.orch.SubmitTemplateForm(f.value(templateTitle), f.value(templateDetails))
	case state.DialogSettings:
		return m.orch.SaveSettings(state.Settings{
			Name:          f.value(settingsName),
			Email:         f.value(settingsEmail),
			Firm:          f.value(settingsFirm),
			Practice:      f.value(settingsPractice),
			Language:      f.value(settingsLanguage),
			DateFormat:    f.value(settingsDateFormat),
			Notifications: f.toggled(settingsNotifications),
			Citations:     f.toggled(settingsCitations),
			AutoSave:      f.toggled(settingsAutoSave),
		})
	case state.DialogProfile:
		return m.orch.ChangePassword(f.value(0))
	case state.DialogStudentVerification:
		return m.orch.VerifyStudent(f.value(studentEmail), f.value(studentID), f.value(studentInstitution))
	case state.DialogSignUp:
		_, err := m.orch.SignUp(f.value(signUpName), f.value(signUpEmail), f.value(signUpPassword), f.value(signUpConfirm))
		return err
	}
	return nil
}

// renderDialog draws the open dialog box, or "" when none is open.
func (m Model) renderDialog() string {
	nav := m.snap.Navigation
	if !nav.DialogOpen() {
		return ""
	}
	s := m.styles
	var title, body, help string
	switch c := nav.DialogContext.(type) {
	case state.TemplateContext:
		title = "Generate " + c.Template.String()
		body = m.dialog.view(s)
		help = "enter generate • esc cancel"
	case state.SettingsContext:
		title = "Settings"
		body = m.dialog.view(s) + "\n" + s.Muted.Render("Theme: "+string(c.Theme)+" (ctrl+t)")
		help = "tab next • space toggle • enter save • esc cancel"
	case state.ProfileContext:
		title = "Profile"
		body = s.Bold.Render(c.Name) + "\n" + s.Muted.Render(c.Email) + "\n" +
			s.Badge.Render(c.Plan.Label()) + "\n\n" + m.dialog.view(s)
		help = "enter change password • ctrl+u upgrade • esc close"
	case state.PricingContext:
		title = "Choose a plan"
		body = m.renderPlans(c)
		help = "↑/↓ choose • enter select • ctrl+e contact sales • esc close"
	case state.StudentVerificationContext:
		title = "Student verification"
		body = s.Muted.Render("Use your institution e-mail (.ac.ke, .edu).") + "\n\n" + m.dialog.view(s)
		help = "enter verify • esc cancel"
	case state.SignUpContext:
		title = "Create your account"
		body = m.dialog.view(s)
		help = "enter sign up • ctrl+g continue with Google • esc later"
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.DialogTitle.Render(title),
		body,
		s.Muted.Render(help),
	)
	return s.Dialog.Width(m.layout.DialogWidth()).Render(content)
}

func (m Model) renderPlans(c state.PricingContext) string {
	s := m.styles
	var sb strings.Builder
	for i, p := range pricingPlans {
		price := "Contact sales"
		if n := p.MonthlyPrice(); n > 0 {
			price = fmt.Sprintf("KES %d/month", n)
		}
		line := fmt.Sprintf("%-16s %s", p, price)
		if p == m.snap.Session.Plan || (p == state.PlanBasic && m.snap.Session.Plan == state.PlanNone) {
			line += "  (current)"
		}
		switch {
		case i == m.pricingCursor:
			sb.WriteString(s.Selected.Render("› " + line))
		case p == c.Selected:
			sb.WriteString(s.Bold.Render("  " + line))
		default:
			sb.WriteString(s.Body.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// errorText is how a rejected request reads in the status line.
func errorText(err error) string {
	var verr *orchestrator.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		return sentence(verr.Err.Error()) + ": " + strings.Join(verr.Fields, ", ")
	}
	return sentence(err.Error())
}

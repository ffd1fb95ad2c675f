package orchestrator

import (
	"strings"

	"inlaw/internal/logging"
	"inlaw/internal/state"
	"inlaw/internal/store"
)

// SubmitTemplateForm accepts the template generator form.
func (o *Orchestrator) SubmitTemplateForm(title, details string) error {
	ctx, ok := o.st.Navigation.DialogContext.(state.TemplateContext)
	if o.blocked() || !ok {
		return nil
	}
	form := struct {
		Title   string `name:"title" validate:"required"`
		Details string `name:"details" validate:"required"`
	}{strings.TrimSpace(title), strings.TrimSpace(details)}
	if err := checkRequired(form, ErrMissingField); err != nil {
		return err
	}

	o.closeDialog()
	o.notify("Document generation initiated!\n\nTemplate: " + ctx.Template.String() + "\n\nDemo mode.")
	logging.Navigation("template %s requested: %q", ctx.Template, form.Title)
	o.render()
	return nil
}

// SaveSettings stores the settings dialog draft. The name is only written
// when non-empty.
func (o *Orchestrator) SaveSettings(s state.Settings) error {
	if o.blocked() || o.st.Navigation.ActiveDialog != state.DialogSettings {
		return nil
	}
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)

	pairs := []string{
		store.KeyUserEmail, s.Email,
		store.KeyUserFirm, s.Firm,
		store.KeyUserPractice, s.Practice,
		store.KeyNotifications, store.FormatBool(s.Notifications),
		store.KeyCitations, store.FormatBool(s.Citations),
		store.KeyAutoSave, store.FormatBool(s.AutoSave),
		store.KeyLanguage, s.Language,
		store.KeyDateFormat, s.DateFormat,
	}
	if s.Name != "" {
		pairs = append([]string{store.KeyUserName, s.Name}, pairs...)
		o.st.Session.DisplayName = s.Name
	} else {
		s.Name = o.st.Settings.Name
	}
	o.persist(pairs...)

	o.st.Settings = s
	o.st.Session.Email = s.Email
	o.closeDialog()
	o.notify("Settings saved successfully!")
	logging.Navigation("settings saved")
	o.render()
	return nil
}

// ToggleTheme flips between light and dark and persists the choice.
func (o *Orchestrator) ToggleTheme() {
	if o.blocked() {
		return
	}
	o.st.Theme = o.st.Theme.Toggle()
	if ctx, ok := o.st.Navigation.DialogContext.(state.SettingsContext); ok {
		ctx.Theme = o.st.Theme
		o.st.Navigation.DialogContext = ctx
	}
	o.persist(store.KeyTheme, string(o.st.Theme))
	logging.NavigationDebug("theme -> %s", o.st.Theme)
	o.render()
}

// UpgradePlan moves from the profile dialog to the pricing dialog.
func (o *Orchestrator) UpgradePlan() {
	if o.blocked() || o.st.Navigation.ActiveDialog != state.DialogProfile {
		return
	}
	o.OpenPricing()
}

// ChangePassword acknowledges a new password from the profile dialog.
// Nothing is stored.
func (o *Orchestrator) ChangePassword(password string) error {
	if o.blocked() || o.st.Navigation.ActiveDialog != state.DialogProfile {
		return nil
	}
	form := struct {
		Password string `name:"password" validate:"required"`
	}{password}
	if err := checkRequired(form, ErrMissingField); err != nil {
		return err
	}
	o.notify("Password changed successfully!")
	o.render()
	return nil
}

package orchestrator

import (
	"inlaw/internal/logging"
	"inlaw/internal/state"
)

// SetView switches the top-level view without touching the open dialog.
func (o *Orchestrator) SetView(v state.View) {
	if o.blocked() || v < state.ViewChat || v > state.ViewDocuments {
		return
	}
	if o.st.Navigation.ActiveView == v {
		return
	}
	o.st.Navigation.ActiveView = v
	logging.NavigationDebug("view -> %s", v)
	o.render()
}

// OpenDialog opens kind, replacing any open dialog. ctx prefills it; a nil
// ctx, or one belonging to another kind, is replaced by the kind's default.
func (o *Orchestrator) OpenDialog(kind state.DialogKind, ctx state.DialogContext) {
	if o.blocked() {
		return
	}
	if kind == state.DialogNone {
		o.CloseDialog()
		return
	}
	if ctx == nil || ctx.Kind() != kind {
		ctx = o.defaultContext(kind)
	}
	o.openDialog(kind, ctx)
	o.render()
}

func (o *Orchestrator) openDialog(kind state.DialogKind, ctx state.DialogContext) {
	prev := o.st.Navigation.ActiveDialog
	o.st.Navigation.ActiveDialog = kind
	o.st.Navigation.DialogContext = ctx
	if prev != state.DialogNone && prev != kind {
		logging.Navigation("dialog %s replaced by %s", prev, kind)
	} else {
		logging.Navigation("dialog %s opened", kind)
	}
}

// defaultContext builds the prefill for dialogs that show stored data.
func (o *Orchestrator) defaultContext(kind state.DialogKind) state.DialogContext {
	switch kind {
	case state.DialogSettings:
		return state.SettingsContext{Draft: o.st.Settings, Theme: o.st.Theme}
	case state.DialogProfile:
		s := o.st.Session
		name, email := s.Name(), s.Email
		if name == "" {
			name = "Lawyer Name"
		}
		if email == "" {
			email = "lawyer@example.com"
		}
		return state.ProfileContext{Name: name, Email: email, Plan: s.Plan}
	default:
		return state.EmptyContext(kind)
	}
}

// OpenTemplate opens the generator for a template.
func (o *Orchestrator) OpenTemplate(t state.TemplateKind) {
	o.OpenDialog(state.DialogTemplate, state.TemplateContext{Template: t})
}

// OpenPricing opens the subscription plans.
func (o *Orchestrator) OpenPricing() {
	o.OpenDialog(state.DialogPricing, nil)
}

// CloseDialog closes the open dialog. Closing when none is open is a no-op.
func (o *Orchestrator) CloseDialog() {
	if o.blocked() || o.st.Navigation.ActiveDialog == state.DialogNone {
		return
	}
	o.closeDialog()
	o.render()
}

func (o *Orchestrator) closeDialog() {
	if o.st.Navigation.ActiveDialog != state.DialogNone {
		logging.NavigationDebug("dialog %s closed", o.st.Navigation.ActiveDialog)
	}
	o.st.Navigation.ActiveDialog = state.DialogNone
	o.st.Navigation.DialogContext = nil
}

// ResolvePrompt answers the pending confirmation. Declining leaves every
// other piece of state as it was.
func (o *Orchestrator) ResolvePrompt(accepted bool) {
	p := o.st.Navigation.Prompt
	if p == nil {
		return
	}
	o.st.Navigation.Prompt = nil
	logging.NavigationDebug("prompt %d resolved: %v", p.Kind, accepted)
	if accepted {
		switch p.Kind {
		case state.PromptSignOut:
			o.completeSignOut()
		case state.PromptPayment:
			o.completePayment(p.Plan)
		}
	}
	o.render()
}

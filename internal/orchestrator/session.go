package orchestrator

import (
	"fmt"
	"strings"

	"inlaw/internal/logging"
	"inlaw/internal/state"
	"inlaw/internal/store"
)

// EducationalDomains are the e-mail suffixes accepted for the student plan.
var EducationalDomains = []string{".ac.ke", ".edu", ".edu.ke"}

// Sales contact shown for the enterprise plan.
const (
	SalesEmail = "sales@legalai.co.ke"
	SalesPhone = "+254 700 000 000"
)

// SignIn signs in with any non-empty e-mail and password. The display name
// becomes the e-mail local part.
func (o *Orchestrator) SignIn(email, password string, rememberMe bool) (state.SessionRecord, error) {
	if o.blocked() {
		return o.st.Session, nil
	}
	email = strings.TrimSpace(email)
	form := struct {
		Email    string `name:"email" validate:"required"`
		Password string `name:"password" validate:"required"`
	}{email, password}
	if err := checkRequired(form, ErrInvalidCredentials); err != nil {
		logging.SessionDebug("sign-in rejected: %v", err)
		return o.st.Session, err
	}

	o.establish(state.LocalPart(email), email)
	o.st.Session.RememberMe = rememberMe
	o.persist(
		store.KeyUserName, o.st.Session.DisplayName,
		store.KeyUserEmail, email,
		store.KeyLoggedIn, store.FormatBool(true),
		store.KeyRememberMe, store.FormatBool(rememberMe),
	)
	o.notify("Welcome back! You are now signed in.")
	logging.Session("signed in as %s (remember=%v)", email, rememberMe)
	o.render()
	return o.st.Session, nil
}

// SignInWithGoogle is the demo third-party sign-in.
func (o *Orchestrator) SignInWithGoogle() state.SessionRecord {
	if o.blocked() {
		return o.st.Session
	}
	const name, email = "User", "user@gmail.com"
	o.establish(name, email)
	o.persist(
		store.KeyUserName, name,
		store.KeyUserEmail, email,
		store.KeyLoggedIn, store.FormatBool(true),
	)
	o.notify("Google Sign In will be implemented here (demo)")
	logging.Session("signed in with demo Google account")
	o.render()
	return o.st.Session
}

// SignUp creates an account and signs in with name used verbatim.
func (o *Orchestrator) SignUp(name, email, password, confirmPassword string) (state.SessionRecord, error) {
	if o.blocked() {
		return o.st.Session, nil
	}
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	form := struct {
		Name     string `name:"name" validate:"required"`
		Email    string `name:"email" validate:"required"`
		Password string `name:"password" validate:"required"`
	}{name, email, password}
	if err := checkRequired(form, ErrMissingField); err != nil {
		return o.st.Session, err
	}
	if password != confirmPassword {
		return o.st.Session, &ValidationError{Err: ErrPasswordMismatch, Fields: []string{"confirmPassword"}}
	}

	o.establish(name, email)
	o.persist(
		store.KeyUserName, name,
		store.KeyUserEmail, email,
		store.KeyLoggedIn, store.FormatBool(true),
	)
	o.notify("Account created and signed in (demo).")
	logging.Session("signed up %s", email)
	o.render()
	return o.st.Session, nil
}

// establish applies a successful sign-in to the in-memory state.
func (o *Orchestrator) establish(displayName, email string) {
	o.st.Session.SignedIn = true
	o.st.Session.DisplayName = displayName
	o.st.Session.Email = email
	o.st.Settings.Name = displayName
	o.st.Settings.Email = email
	o.st.Navigation.SignInVisible = false
	if o.st.Navigation.ActiveDialog == state.DialogSignUp {
		o.closeDialog()
	}
}

// SignOut asks for confirmation; ResolvePrompt(true) completes it.
func (o *Orchestrator) SignOut() {
	if o.blocked() {
		return
	}
	o.st.Navigation.Prompt = &state.Prompt{Kind: state.PromptSignOut, Text: "Are you sure you want to logout?"}
	o.render()
}

// completeSignOut wipes the whole store, not only the session keys.
func (o *Orchestrator) completeSignOut() {
	o.storageFailed(o.kv.Clear())
	o.st.Session = state.SessionRecord{}
	o.st.Settings = state.DefaultSettings()
	o.st.Theme = o.theme
	o.closeDialog()
	o.st.Navigation.SignInVisible = true
	logging.Session("signed out; store cleared")
}

// SelectPlan handles a plan button. Student opens verification, Enterprise
// routes to sales, Basic and Pro ask for payment confirmation.
func (o *Orchestrator) SelectPlan(plan state.Plan) {
	if o.blocked() {
		return
	}
	switch plan {
	case state.PlanStudent:
		o.openDialog(state.DialogStudentVerification, state.StudentVerificationContext{})
	case state.PlanEnterprise:
		o.contactSales("Thank you for your interest in our Enterprise plan!\n\n" +
			"Our sales team will contact you shortly.\n\n" +
			"Email: " + SalesEmail + "\nPhone: " + SalesPhone)
		return
	case state.PlanBasic, state.PlanPro:
		if o.st.Navigation.ActiveDialog == state.DialogPricing {
			o.st.Navigation.DialogContext = state.PricingContext{Selected: plan}
		}
		o.st.Navigation.Prompt = &state.Prompt{
			Kind: state.PromptPayment,
			Text: fmt.Sprintf("Proceed to payment for %s?\n\nAmount: KES %d/month", plan, plan.MonthlyPrice()),
			Plan: plan,
		}
	default:
		return
	}
	logging.Session("plan selected: %s", plan)
	o.render()
}

// ContactSales is the pricing dialog's contact-sales action.
func (o *Orchestrator) ContactSales() {
	if o.blocked() {
		return
	}
	o.contactSales("Our sales team will reach out to discuss Enterprise plans.\n\nEmail: " + SalesEmail)
}

func (o *Orchestrator) contactSales(text string) {
	o.notify(text)
	if o.st.Navigation.ActiveDialog == state.DialogPricing {
		o.closeDialog()
	}
	logging.Session("enterprise enquiry")
	o.render()
}

// VerifyStudent checks the verification form and, on success, asks for
// payment of the student plan.
func (o *Orchestrator) VerifyStudent(email, studentID, institution string) error {
	if o.blocked() {
		return nil
	}
	form := struct {
		Email       string `name:"email" validate:"required"`
		StudentID   string `name:"studentId" validate:"required"`
		Institution string `name:"institution" validate:"required"`
	}{strings.TrimSpace(email), strings.TrimSpace(studentID), strings.TrimSpace(institution)}
	if err := checkRequired(form, ErrMissingField); err != nil {
		return err
	}
	if !IsEducationalEmail(form.Email) {
		return &ValidationError{Err: ErrInvalidDomain, Fields: []string{"email"}}
	}

	if o.st.Navigation.ActiveDialog == state.DialogStudentVerification {
		o.closeDialog()
	}
	o.notify("Student verification initiated for " + form.Email)
	o.st.Navigation.Prompt = &state.Prompt{
		Kind: state.PromptPayment,
		Text: fmt.Sprintf("Proceed to payment for %s? Amount: KES %d/month", state.PlanStudent, state.PlanStudent.MonthlyPrice()),
		Plan: state.PlanStudent,
	}
	logging.Session("student verification accepted for %s (%s)", form.Email, form.Institution)
	o.render()
	return nil
}

// IsEducationalEmail reports whether email contains a recognised
// educational domain, ignoring case.
func IsEducationalEmail(email string) bool {
	lower := strings.ToLower(email)
	for _, d := range EducationalDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) completePayment(plan state.Plan) {
	o.st.Session.Plan = plan
	o.persist(store.KeyUserPlan, plan.String())
	o.notify("Payment successful! Welcome to " + plan.String())
	if o.st.Navigation.ActiveDialog == state.DialogPricing {
		o.closeDialog()
	}
	logging.Session("plan changed to %s", plan)
}

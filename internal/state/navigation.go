package state

// View is the top-level surface shown in the main area.
type View int

const (
	ViewChat View = iota
	ViewTemplates
	ViewCaseSearch
	ViewDocuments
)

// Views lists every top-level view in navigation order.
var Views = []View{ViewChat, ViewTemplates, ViewCaseSearch, ViewDocuments}

func (v View) String() string {
	switch v {
	case ViewTemplates:
		return "Templates"
	case ViewCaseSearch:
		return "Case Search"
	case ViewDocuments:
		return "Documents"
	default:
		return "Chat"
	}
}

// DialogKind identifies the single overlay dialog that may be open.
type DialogKind int

const (
	DialogNone DialogKind = iota
	DialogTemplate
	DialogSettings
	DialogProfile
	DialogPricing
	DialogStudentVerification
	DialogSignUp
)

func (d DialogKind) String() string {
	switch d {
	case DialogTemplate:
		return "template"
	case DialogSettings:
		return "settings"
	case DialogProfile:
		return "profile"
	case DialogPricing:
		return "pricing"
	case DialogStudentVerification:
		return "student-verification"
	case DialogSignUp:
		return "sign-up"
	default:
		return "none"
	}
}

// DialogContext is the payload of the open dialog. Each dialog kind has
// exactly one context type; Kind reports which.
type DialogContext interface {
	Kind() DialogKind
	clone() DialogContext
}

// TemplateContext prefills the template generator.
type TemplateContext struct {
	Template TemplateKind
}

// SettingsContext carries the draft loaded from the store when the dialog opened.
type SettingsContext struct {
	Draft Settings
	Theme Theme
}

// ProfileContext snapshots what the profile dialog shows.
type ProfileContext struct {
	Name  string
	Email string
	Plan  Plan
}

// PricingContext remembers the plan the user last picked.
type PricingContext struct {
	Selected Plan
}

// StudentVerificationContext holds previously entered verification fields.
type StudentVerificationContext struct {
	Email       string
	StudentID   string
	Institution string
}

// SignUpContext holds previously entered sign-up fields.
type SignUpContext struct {
	Name  string
	Email string
}

func (TemplateContext) Kind() DialogKind            { return DialogTemplate }
func (SettingsContext) Kind() DialogKind            { return DialogSettings }
func (ProfileContext) Kind() DialogKind             { return DialogProfile }
func (PricingContext) Kind() DialogKind             { return DialogPricing }
func (StudentVerificationContext) Kind() DialogKind { return DialogStudentVerification }
func (SignUpContext) Kind() DialogKind              { return DialogSignUp }

func (c TemplateContext) clone() DialogContext            { return c }
func (c SettingsContext) clone() DialogContext            { return c }
func (c ProfileContext) clone() DialogContext             { return c }
func (c PricingContext) clone() DialogContext             { return c }
func (c StudentVerificationContext) clone() DialogContext { return c }
func (c SignUpContext) clone() DialogContext              { return c }

// EmptyContext returns the zero context for a dialog kind, or nil for DialogNone.
func EmptyContext(kind DialogKind) DialogContext {
	switch kind {
	case DialogTemplate:
		return TemplateContext{}
	case DialogSettings:
		return SettingsContext{Draft: DefaultSettings(), Theme: ThemeLight}
	case DialogProfile:
		return ProfileContext{}
	case DialogPricing:
		return PricingContext{}
	case DialogStudentVerification:
		return StudentVerificationContext{}
	case DialogSignUp:
		return SignUpContext{}
	default:
		return nil
	}
}

// PromptKind identifies a pending confirmation.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptPayment
	PromptSignOut
)

// Prompt is a yes/no confirmation that blocks other user requests.
type Prompt struct {
	Kind PromptKind
	Text string
	Plan Plan
}

// NoticeLevel distinguishes acknowledgments from warnings.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
)

// Notice is a non-blocking acknowledgment shown to the user.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// NavigationRecord is the view and dialog state.
type NavigationRecord struct {
	ActiveView    View
	ActiveDialog  DialogKind
	DialogContext DialogContext
	SignInVisible bool
	Prompt        *Prompt
	Notice        *Notice
	// Warning is a storage problem banner, independent of Notice.
	Warning string
}

// DialogOpen reports whether any dialog is open.
func (n NavigationRecord) DialogOpen() bool {
	return n.ActiveDialog != DialogNone
}

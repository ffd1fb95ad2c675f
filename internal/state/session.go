// Package state holds the data model owned by the orchestrator.
//
// Nothing in this package mutates itself across components; the orchestrator
// is the only writer and hands renderers deep copies via Snapshot.
package state

import "strings"

// Plan identifies a subscription tier.
type Plan int

const (
	PlanNone Plan = iota
	PlanBasic
	PlanPro
	PlanStudent
	// PlanEnterprise is only ever a selection; it is never stored on a session.
	PlanEnterprise
)

// String returns the persisted display name of the plan.
func (p Plan) String() string {
	switch p {
	case PlanBasic:
		return "Basic Plan"
	case PlanPro:
		return "Pro Plan"
	case PlanStudent:
		return "Student Plan"
	case PlanEnterprise:
		return "Enterprise Plan"
	default:
		return ""
	}
}

// Label is what the profile surface shows. An absent plan reads as Basic.
func (p Plan) Label() string {
	if p == PlanNone {
		return PlanBasic.String()
	}
	return p.String()
}

// MonthlyPrice returns the price in KES per month, or 0 for plans sold
// through the sales team.
func (p Plan) MonthlyPrice() int {
	switch p {
	case PlanBasic:
		return 2500
	case PlanPro:
		return 5500
	case PlanStudent:
		return 500
	default:
		return 0
	}
}

// ParsePlan reverses Plan.String. Unknown values map to PlanNone.
func ParsePlan(s string) Plan {
	switch strings.TrimSpace(s) {
	case "Basic Plan":
		return PlanBasic
	case "Pro Plan":
		return PlanPro
	case "Student Plan":
		return PlanStudent
	default:
		return PlanNone
	}
}

// SessionRecord is the authentication and subscription state.
type SessionRecord struct {
	SignedIn    bool
	DisplayName string
	Email       string
	Plan        Plan
	RememberMe  bool
}

// LocalPart returns the portion of an e-mail address before the first '@'.
func LocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// Name returns the display name, falling back to the e-mail local part.
func (s SessionRecord) Name() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return LocalPart(s.Email)
}

// Settings mirrors the settings dialog fields.
type Settings struct {
	Name          string
	Email         string
	Firm          string
	Practice      string
	Notifications bool
	Citations     bool
	AutoSave      bool
	Language      string
	DateFormat    string
}

// DefaultSettings returns the values used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Notifications: true,
		Citations:     true,
		AutoSave:      true,
		Language:      "en",
		DateFormat:    "dd/mm/yyyy",
	}
}

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

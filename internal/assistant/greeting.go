package assistant

import (
	"time"
	"unicode"
	"unicode/utf8"
)

// Greeting is the welcome headline.
type Greeting struct {
	Salutation string
	Name       string
	Subtext    string
}

func (g Greeting) String() string {
	return g.Salutation + ", " + g.Name
}

// Greet builds the greeting for the local hour of now. name falls back to
// "there" when empty; its first letter is upper-cased.
func Greet(now time.Time, name string) Greeting {
	if name == "" {
		name = "there"
	}
	g := Greeting{Name: capitalize(name)}

	switch h := now.Hour(); {
	case h >= 5 && h < 12:
		g.Salutation, g.Subtext = "Good morning", "Ready to tackle your legal research?"
	case h >= 12 && h < 17:
		g.Salutation, g.Subtext = "Good afternoon", "Let's continue your legal work"
	case h >= 17 && h < 22:
		g.Salutation, g.Subtext = "Good evening", "Wrapping up your day with legal research?"
	default:
		g.Salutation, g.Subtext = "Working late", "Here to help with your legal queries"
	}
	return g
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

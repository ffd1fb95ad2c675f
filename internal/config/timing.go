package config

import (
	"fmt"
	"time"
)

// TimingConfig holds the simulated latencies of deferred work.
type TimingConfig struct {
	Reply        string `yaml:"reply"`         // assistant reply after sendMessage
	Regenerate   string `yaml:"regenerate"`    // reply after regenerateLast
	AttachAck    string `yaml:"attach_ack"`    // acknowledgment after attachFile
	Analysis     string `yaml:"analysis"`      // document analysis
	Search       string `yaml:"search"`        // case search results
	SignUpPrompt string `yaml:"signup_prompt"` // sign-up dialog at first load
}

// DefaultTiming returns the standard latencies.
func DefaultTiming() TimingConfig {
	return TimingConfig{
		Reply:        "1s",
		Regenerate:   "500ms",
		AttachAck:    "700ms",
		Analysis:     "2s",
		Search:       "1500ms",
		SignUpPrompt: "200ms",
	}
}

// Delays is TimingConfig with parsed durations.
type Delays struct {
	Reply        time.Duration
	Regenerate   time.Duration
	AttachAck    time.Duration
	Analysis     time.Duration
	Search       time.Duration
	SignUpPrompt time.Duration
}

// Delays parses every duration, falling back to the default for any
// value that does not parse.
func (t TimingConfig) Delays() Delays {
	def := DefaultTiming()
	return Delays{
		Reply:        parseOr(t.Reply, def.Reply),
		Regenerate:   parseOr(t.Regenerate, def.Regenerate),
		AttachAck:    parseOr(t.AttachAck, def.AttachAck),
		Analysis:     parseOr(t.Analysis, def.Analysis),
		Search:       parseOr(t.Search, def.Search),
		SignUpPrompt: parseOr(t.SignUpPrompt, def.SignUpPrompt),
	}
}

func parseOr(s, fallback string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}

func (t TimingConfig) validate() error {
	fields := map[string]string{
		"reply":         t.Reply,
		"regenerate":    t.Regenerate,
		"attach_ack":    t.AttachAck,
		"analysis":      t.Analysis,
		"search":        t.Search,
		"signup_prompt": t.SignUpPrompt,
	}
	for name, v := range fields {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid config: timing.%s: %w", name, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid config: timing.%s must not be negative", name)
		}
	}
	return nil
}

package shell

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"inlaw/internal/config"
	"inlaw/internal/orchestrator"
	"inlaw/internal/state"
	"inlaw/internal/store"
)

// testShell drives a Model the way the bubbletea runtime would, except
// that deferred tasks are collected instead of timed.
type testShell struct {
	t       *testing.T
	m       Model
	kv      *store.MemoryStore
	pending []tea.Msg
}

type testConfig struct {
	stored   []string
	opts     []Option
	width    int
	height   int
	signedIn string
}

// TestModelOption configures a test shell.
type TestModelOption func(*testConfig)

// WithStoredValues pre-populates the store with key/value pairs.
func WithStoredValues(pairs ...string) TestModelOption {
	return func(c *testConfig) { c.stored = append(c.stored, pairs...) }
}

// WithSignedInUser stores a signed-in session for email.
func WithSignedInUser(email string) TestModelOption {
	return func(c *testConfig) { c.signedIn = email }
}

// WithSize sets the terminal dimensions.
func WithSize(width, height int) TestModelOption {
	return func(c *testConfig) { c.width, c.height = width, height }
}

// WithModelOptions forwards options to New.
func WithModelOptions(opts ...Option) TestModelOption {
	return func(c *testConfig) { c.opts = append(c.opts, opts...) }
}

func NewTestModel(t *testing.T, opts ...TestModelOption) *testShell {
	t.Helper()
	cfg := testConfig{width: 120, height: 40}
	for _, opt := range opts {
		opt(&cfg)
	}

	ts := &testShell{t: t, kv: store.NewMemoryStore()}
	for i := 0; i+1 < len(cfg.stored); i += 2 {
		_ = ts.kv.Set(cfg.stored[i], cfg.stored[i+1])
	}
	if cfg.signedIn != "" {
		_ = ts.kv.Set(store.KeyLoggedIn, "true")
		_ = ts.kv.Set(store.KeyUserEmail, cfg.signedIn)
	}

	queue := orchestrator.NewTaskQueue()
	sink := NewSink()
	ids := 0
	orch := orchestrator.New(orchestrator.Options{
		Store:     ts.kv,
		Scheduler: queue,
		Renderer:  sink,
		Delays:    config.DefaultTiming().Delays(),
		Now:       func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) },
		NewID: func() string {
			ids++
			return fmt.Sprintf("msg-%d", ids)
		},
	})

	collect := func(m *Model) {
		m.tick = func(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
			ts.pending = append(ts.pending, fn(time.Time{}))
			return nil
		}
	}
	modelOpts := append([]Option{
		collect,
		WithClock(func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }),
	}, cfg.opts...)

	ts.m = New(orch, queue, sink, modelOpts...)
	ts.m.Init()
	ts.send(tea.WindowSizeMsg{Width: cfg.width, Height: cfg.height})
	return ts
}

func (ts *testShell) send(msg tea.Msg) {
	ts.t.Helper()
	next, _ := ts.m.Update(msg)
	ts.m = next.(Model)
}

func (ts *testShell) key(k tea.KeyType) {
	ts.t.Helper()
	ts.send(tea.KeyMsg{Type: k})
}

func (ts *testShell) typeText(s string) {
	ts.t.Helper()
	ts.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (ts *testShell) alt(r rune) {
	ts.t.Helper()
	ts.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true})
}

func (ts *testShell) click(x, y int) {
	ts.t.Helper()
	ts.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// flush delivers every collected timer message, including ones scheduled
// while delivering.
func (ts *testShell) flush() {
	ts.t.Helper()
	for len(ts.pending) > 0 {
		msg := ts.pending[0]
		ts.pending = ts.pending[1:]
		ts.send(msg)
	}
}

// discard drops the collected timers, as if they never fired.
func (ts *testShell) discard() {
	ts.pending = nil
}

func (ts *testShell) snap() state.Snapshot {
	return ts.m.Snapshot()
}

func (ts *testShell) stored(key string) string {
	v, _, _ := ts.kv.Get(key)
	return v
}

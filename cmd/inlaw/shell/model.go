// Package shell is the terminal renderer for the orchestrator. It turns key
// and mouse events into orchestrator requests, paints the latest snapshot
// and schedules deferred tasks as bubbletea timers.
//
// The orchestrator is driven only from Update, so every request and every
// Fire runs on the bubbletea event loop.
//   - model.go: types, construction and the snapshot sink
//   - update.go: event routing
//   - dialogs.go: dialog forms and their submit actions
//   - view.go: rendering
package shell

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"inlaw/cmd/inlaw/ui"
	"inlaw/internal/logging"
	"inlaw/internal/orchestrator"
	"inlaw/internal/state"
)

// Sink is the orchestrator Renderer. It keeps the most recent snapshot and
// remembers whether any snapshot since the last take asked to scroll.
type Sink struct {
	mu      sync.Mutex
	latest  state.Snapshot
	scroll  bool
	renders int
}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) Render(snap state.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = snap
	s.renders++
	if snap.Directives.ScrollToBottom {
		s.scroll = true
	}
}

// Latest returns the last snapshot rendered.
func (s *Sink) Latest() state.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Renders counts snapshots received.
func (s *Sink) Renders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

func (s *Sink) take() (state.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scroll := s.scroll
	s.scroll = false
	return s.latest, scroll
}

// deferredMsg carries a task back to the event loop once its delay elapsed.
type deferredMsg struct {
	task orchestrator.Task
}

// StoreChangedMsg tells the shell that another process changed the store.
type StoreChangedMsg struct{}

// pickTarget says what a chosen file is for.
type pickTarget int

const (
	pickNone pickTarget = iota
	pickAttach
	pickUpload
)

// pricingPlans is the order of the pricing dialog rows.
var pricingPlans = []state.Plan{state.PlanBasic, state.PlanPro, state.PlanStudent, state.PlanEnterprise}

// Model is the bubbletea model.
type Model struct {
	orch  *orchestrator.Orchestrator
	queue *orchestrator.TaskQueue
	sink  *Sink
	now   func() time.Time
	// describe inspects a picked file.
	describe func(path string) (state.FileInfo, error)
	// tick schedules a deferred task; tea.Tick outside tests.
	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

	snap   state.Snapshot
	theme  state.Theme
	styles ui.Styles
	md     *ui.Markdown
	layout ui.LayoutConfig

	input      textarea.Model
	search     textinput.Model
	transcript viewport.Model
	spinner    spinner.Model
	picker     filepicker.Model
	picking    pickTarget

	signIn     form
	dialog     form
	dialogKind state.DialogKind

	templateCursor int
	pricingCursor  int
	recentCursor   int
	// collapsed holds the Templates view categories folded by the user.
	collapsed      map[string]bool

	status   string
	ready    bool
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithClock replaces the clock used for the greeting.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithDescriber replaces the file inspector used for attachments.
func WithDescriber(fn func(string) (state.FileInfo, error)) Option {
	return func(m *Model) { m.describe = fn }
}

// New initializes orch and builds a model around it. sink must be the
// Renderer orch was created with and queue its Scheduler.
func New(orch *orchestrator.Orchestrator, queue *orchestrator.TaskQueue, sink *Sink, opts ...Option) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask a legal question..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(ui.InputHeight - 1)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	search := newInput("", "Search judgments, parties or citations")
	search.Prompt = "⌕ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		orch:         orch,
		queue:        queue,
		sink:         sink,
		now:          time.Now,
		describe:     describeFile,
		tick:         tea.Tick,
		md:           ui.NewMarkdown(nil),
		input:        ta,
		search:       search,
		transcript:   viewport.New(80, 20),
		spinner:      sp,
		recentCursor: -1,
		collapsed:    make(map[string]bool),
	}
	// Row 0 is the first category header.
	m.templateCursor = 1
	for _, opt := range opts {
		opt(&m)
	}

	orch.Init()
	m.snap = sink.Latest()
	m.applyTheme(m.snap.Theme)
	m.resize(ui.NewLayoutConfig(80, 24))
	m.syncForms()
	logging.Shell("shell ready: signedIn=%v", m.snap.Session.SignedIn)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.deferred())
}

// Snapshot is the state the model last painted.
func (m Model) Snapshot() state.Snapshot {
	return m.snap
}

// sync picks up the latest snapshot after a request and turns newly
// scheduled tasks into timers.
func (m *Model) sync() tea.Cmd {
	snap, scroll := m.sink.take()
	m.snap = snap
	if snap.Theme != m.theme {
		m.applyTheme(snap.Theme)
	}
	m.syncForms()
	m.refreshTranscript(scroll)
	return m.deferred()
}

// synced is sync for handlers that return the updated model.
func (m Model) synced(extra ...tea.Cmd) (Model, tea.Cmd) {
	cmd := m.sync()
	return m, tea.Batch(append(extra, cmd)...)
}

func (m Model) deferred() tea.Cmd {
	tasks := m.queue.Drain()
	if len(tasks) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(tasks))
	for _, t := range tasks {
		cmds = append(cmds, m.tick(t.Delay, func(time.Time) tea.Msg {
			return deferredMsg{task: t}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) applyTheme(t state.Theme) {
	m.theme = t
	m.styles = ui.StylesFor(t)
	m.md.Configure(m.styles.Theme.GlamourStyle(), m.layout.MarkdownWidth())
}

func (m *Model) resize(l ui.LayoutConfig) {
	m.layout = l
	w := l.MainWidth() - ui.ContentPaddingH
	m.input.SetWidth(max(w, 10))
	m.search.Width = max(w-4, 10)
	m.transcript.Width = max(w, 10)
	m.transcript.Height = l.TranscriptHeight()
	m.picker.Height = max(l.TerminalHeight-8, 3)
	m.md.Configure(m.styles.Theme.GlamourStyle(), l.MarkdownWidth())
	m.signIn.setWidth(l.DialogWidth() - 8)
	m.dialog.setWidth(l.DialogWidth() - 8)
	m.refreshTranscript(false)
}

func (m *Model) refreshTranscript(scroll bool) {
	m.transcript.SetContent(m.renderTranscript())
	if scroll {
		m.transcript.GotoBottom()
	}
}

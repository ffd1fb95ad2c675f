// Package orchestrator is the session and UI state machine. It owns the
// single AppState, validates every request against it, persists the subset
// that must survive a restart and hands snapshots to a Renderer.
//
// An Orchestrator is not safe for concurrent use. One goroutine (the UI
// event loop) issues every request, including Fire for deferred tasks.
package orchestrator

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"inlaw/internal/assistant"
	"inlaw/internal/config"
	"inlaw/internal/logging"
	"inlaw/internal/state"
	"inlaw/internal/store"
)

// Renderer receives a snapshot after every transition.
type Renderer interface {
	Render(state.Snapshot)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(state.Snapshot)

func (f RenderFunc) Render(s state.Snapshot) { f(s) }

// Options configures an Orchestrator. Store and Scheduler are required.
type Options struct {
	Store     store.KV
	Scheduler Scheduler
	Renderer  Renderer
	Delays    config.Delays
	// Theme applies when the store holds no theme preference.
	Theme state.Theme
	// Now and NewID are replaced in tests.
	Now   func() time.Time
	NewID func() string
}

// Orchestrator is the state machine.
type Orchestrator struct {
	st        state.AppState
	kv        store.KV
	sched     Scheduler
	renderer  Renderer
	delays    config.Delays
	theme     state.Theme
	now       func() time.Time
	newID     func() string
	scroll    bool
	taskSeq   uint64
	lastSumID int64

	// generation invalidates chat-bound deferred tasks.
	generation uint64
	// analysisToken and searchToken invalidate superseded work.
	analysisToken uint64
	searchToken   uint64
	signUpToken   uint64
}

// New builds an orchestrator. Call Init before issuing requests.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		kv:       opts.Store,
		sched:    opts.Scheduler,
		renderer: opts.Renderer,
		delays:   opts.Delays,
		theme:    opts.Theme,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	if o.kv == nil {
		o.kv = store.NewMemoryStore()
	}
	if o.sched == nil {
		o.sched = NewTaskQueue()
	}
	if o.renderer == nil {
		o.renderer = RenderFunc(func(state.Snapshot) {})
	}
	if o.theme != state.ThemeDark {
		o.theme = state.ThemeLight
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.newID == nil {
		o.newID = uuid.NewString
	}
	return o
}

// Init loads the persisted session and settings and renders the first
// snapshot. When signed out it shows the sign-in surface and schedules the
// sign-up dialog.
func (o *Orchestrator) Init() {
	timer := logging.StartTimer(logging.CategoryBoot, "orchestrator init")
	defer timer.Stop()

	o.st = state.AppState{Theme: o.theme, Settings: state.DefaultSettings()}
	o.loadPersisted()
	o.st.Navigation.SignInVisible = !o.st.Session.SignedIn
	if !o.st.Session.SignedIn {
		o.signUpToken++
		o.schedule(Task{Kind: TaskSignUpPrompt, Delay: o.delays.SignUpPrompt, Token: o.signUpToken})
	}
	logging.Session("init: signedIn=%v plan=%q", o.st.Session.SignedIn, o.st.Session.Plan)
	o.render()
}

// Snapshot returns a deep copy of the current state.
func (o *Orchestrator) Snapshot() state.Snapshot {
	return state.Snapshot{AppState: o.st.Clone()}
}

// Reload re-reads the store after another instance changed it.
func (o *Orchestrator) Reload() {
	wasSignedIn := o.st.Session.SignedIn
	o.loadPersisted()
	switch {
	case wasSignedIn && !o.st.Session.SignedIn:
		o.st.Navigation.Prompt = nil
		o.closeDialog()
		o.st.Navigation.SignInVisible = true
		logging.Session("reload: signed out elsewhere")
	case o.st.Session.SignedIn && o.st.Navigation.SignInVisible:
		o.st.Navigation.SignInVisible = false
		if o.st.Navigation.ActiveDialog == state.DialogSignUp {
			o.closeDialog()
		}
		logging.Session("reload: signed in elsewhere as %s", o.st.Session.Email)
	}
	o.render()
}

// DismissNotice clears the acknowledgment and any storage warning.
func (o *Orchestrator) DismissNotice() {
	if o.st.Navigation.Notice == nil && o.st.Navigation.Warning == "" {
		return
	}
	o.st.Navigation.Notice = nil
	o.st.Navigation.Warning = ""
	o.render()
}

// Fire runs a deferred task if it is still current and discards it otherwise.
func (o *Orchestrator) Fire(t Task) {
	if !o.current(t) {
		logging.Scheduler("discarding stale %s task #%d", t.Kind, t.ID)
		return
	}
	logging.Scheduler("firing %s task #%d", t.Kind, t.ID)

	switch t.Kind {
	case TaskReply:
		o.appendAssistant(assistant.GenerateReply(t.Text))
	case TaskAttachAck:
		o.appendAssistant(assistant.AttachmentAck(t.Text))
	case TaskAnalysis:
		o.st.Conversation.Analysis.Analyzing = false
	case TaskSearch:
		o.st.Conversation.Search.Loading = false
		o.st.Conversation.Search.Results = assistant.SearchCases(t.Text)
	case TaskSignUpPrompt:
		o.openDialog(state.DialogSignUp, state.SignUpContext{})
	}
	o.render()
}

func (o *Orchestrator) current(t Task) bool {
	switch t.Kind {
	case TaskReply, TaskAttachAck:
		return t.Generation == o.generation
	case TaskAnalysis:
		return t.Token == o.analysisToken && o.st.Conversation.Analysis != nil
	case TaskSearch:
		return t.Token == o.searchToken
	case TaskSignUpPrompt:
		nav := o.st.Navigation
		return t.Token == o.signUpToken && !o.st.Session.SignedIn &&
			!nav.DialogOpen() && nav.Prompt == nil
	default:
		return false
	}
}

func (o *Orchestrator) schedule(t Task) {
	o.taskSeq++
	t.ID = o.taskSeq
	logging.Scheduler("scheduling %s task #%d in %v", t.Kind, t.ID, t.Delay)
	o.sched.Schedule(t)
}

func (o *Orchestrator) render() {
	snap := state.Snapshot{
		AppState:   o.st.Clone(),
		Directives: state.Directives{ScrollToBottom: o.scroll},
	}
	o.scroll = false
	o.renderer.Render(snap)
}

// blocked reports whether a confirmation prompt is pending. User requests
// other than ResolvePrompt are ignored while it is.
func (o *Orchestrator) blocked() bool {
	return o.st.Navigation.Prompt != nil
}

func (o *Orchestrator) notify(text string) {
	o.st.Navigation.Notice = &state.Notice{Level: state.NoticeInfo, Text: text}
}

// persist writes key/value pairs in order. A failing write does not stop
// the rest; failures raise the storage warning.
func (o *Orchestrator) persist(pairs ...string) {
	var errs []error
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := o.kv.Set(pairs[i], pairs[i+1]); err != nil {
			errs = append(errs, err)
		}
	}
	o.storageFailed(errors.Join(errs...))
}

func (o *Orchestrator) storageFailed(err error) {
	if err == nil {
		return
	}
	logging.StoreWarn("persistence unavailable, continuing in memory: %v", err)
	o.st.Navigation.Warning = "Storage is unavailable; changes will not survive a restart."
}

// loadPersisted replaces the session, settings and theme with what the
// store holds.
func (o *Orchestrator) loadPersisted() {
	var errs []error
	str := func(key, def string) string {
		v, err := store.GetString(o.kv, key, def)
		errs = append(errs, err)
		return v
	}
	flag := func(key string, def bool) bool {
		v, err := store.GetBool(o.kv, key, def)
		errs = append(errs, err)
		return v
	}

	name := str(store.KeyUserName, "")
	email := str(store.KeyUserEmail, "")
	o.st.Session = state.SessionRecord{
		SignedIn:    flag(store.KeyLoggedIn, false),
		DisplayName: name,
		Email:       email,
		Plan:        state.ParsePlan(str(store.KeyUserPlan, "")),
		RememberMe:  flag(store.KeyRememberMe, false),
	}
	if o.st.Session.DisplayName == "" {
		o.st.Session.DisplayName = state.LocalPart(email)
	}

	def := state.DefaultSettings()
	o.st.Settings = state.Settings{
		Name:          name,
		Email:         email,
		Firm:          str(store.KeyUserFirm, ""),
		Practice:      str(store.KeyUserPractice, ""),
		Notifications: flag(store.KeyNotifications, true),
		Citations:     flag(store.KeyCitations, true),
		AutoSave:      flag(store.KeyAutoSave, true),
		Language:      str(store.KeyLanguage, def.Language),
		DateFormat:    str(store.KeyDateFormat, def.DateFormat),
	}
	if str(store.KeyTheme, string(o.theme)) == string(state.ThemeDark) {
		o.st.Theme = state.ThemeDark
	} else {
		o.st.Theme = state.ThemeLight
	}
	o.storageFailed(errors.Join(errs...))
}

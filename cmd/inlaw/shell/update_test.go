package shell

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inlaw/internal/orchestrator"
	"inlaw/internal/state"
	"inlaw/internal/store"
)

const lawyer = "jane@firm.co.ke"

func TestUpdate_WindowSize(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.send(tea.WindowSizeMsg{Width: 150, Height: 50})
	assert.Equal(t, 150, ts.m.layout.TerminalWidth)
	assert.False(t, ts.m.layout.IsCompact)

	assert.NotPanics(t, func() {
		ts.send(tea.WindowSizeMsg{Width: -1, Height: -1})
		_ = ts.m.View()
	})
	assert.NotPanics(t, func() {
		ts.send(tea.WindowSizeMsg{Width: 0, Height: 0})
		_ = ts.m.View()
	})
}

func TestSignedOut_ShowsSignIn(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t)
	assert.True(t, ts.snap().Navigation.SignInVisible)
	assert.Contains(t, ts.m.View(), "Sign in")

	// The delayed sign-up invitation arrives through the timer.
	ts.flush()
	assert.Equal(t, state.DialogSignUp, ts.snap().Navigation.ActiveDialog)
	assert.Contains(t, ts.m.View(), "Create your account")
}

func TestSignIn_FromForm(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t)
	ts.key(tea.KeyEnter)
	assert.False(t, ts.snap().Session.SignedIn)
	assert.Contains(t, ts.m.View(), "Please enter valid credentials")

	ts.typeText(lawyer)
	ts.key(tea.KeyTab)
	ts.typeText("hunter2")
	ts.key(tea.KeyTab)
	ts.key(tea.KeySpace)
	ts.key(tea.KeyEnter)

	s := ts.snap()
	require.True(t, s.Session.SignedIn)
	assert.Equal(t, "jane", s.Session.DisplayName)
	assert.True(t, s.Session.RememberMe)
	assert.False(t, s.Navigation.SignInVisible)
	assert.Equal(t, "true", ts.stored(store.KeyRememberMe))

	ts.flush()
	assert.Equal(t, state.DialogNone, ts.snap().Navigation.ActiveDialog, "sign-up invitation is stale once signed in")
	assert.Contains(t, ts.m.View(), "Good morning, Jane")
}

func TestSignUp_Dialog(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t)
	ts.discard()
	ts.key(tea.KeyCtrlU)
	require.Equal(t, state.DialogSignUp, ts.snap().Navigation.ActiveDialog)

	ts.typeText("Jane Doe")
	ts.key(tea.KeyTab)
	ts.typeText(lawyer)
	ts.key(tea.KeyTab)
	ts.typeText("pw1")
	ts.key(tea.KeyTab)
	ts.typeText("pw2")
	ts.key(tea.KeyEnter)
	assert.Contains(t, ts.m.View(), "Passwords do not match")
	assert.False(t, ts.snap().Session.SignedIn)

	ts.key(tea.KeyCtrlG)
	s := ts.snap()
	assert.True(t, s.Session.SignedIn)
	assert.Equal(t, "user@gmail.com", s.Session.Email)
	assert.Equal(t, state.DialogNone, s.Navigation.ActiveDialog)
}

func TestChat_SendAndReply(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.typeText("What are the requirements for a valid contract?")
	assert.Equal(t, "What are the requirements for a valid contract?", ts.snap().Conversation.Draft)

	ts.key(tea.KeyEnter)
	s := ts.snap()
	require.Len(t, s.Conversation.Messages, 1)
	assert.Empty(t, s.Conversation.Draft)
	assert.Empty(t, ts.m.input.Value())
	require.Len(t, ts.pending, 1)

	ts.flush()
	s = ts.snap()
	require.Len(t, s.Conversation.Messages, 2)
	assert.Equal(t, state.RoleAssistant, s.Conversation.Messages[1].Role)
	assert.Contains(t, ts.m.View(), "Assistant")
	assert.Contains(t, ts.m.View(), "Recent")

	ts.key(tea.KeyEnter)
	assert.Len(t, ts.snap().Conversation.Messages, 2, "blank input sends nothing")
}

func TestChat_Suggestion(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	assert.Contains(t, ts.m.View(), "Employment Law Cases")
	ts.alt('2')
	msgs := ts.snap().Conversation.Messages
	require.Len(t, msgs, 1)
	assert.Equal(t, "Find recent cases on employment law in Kenya", msgs[0].Text)

	ts.alt('3')
	assert.Len(t, ts.snap().Conversation.Messages, 1, "suggestions only on an empty chat")
}

func TestChat_NewChatDropsPendingReply(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.typeText("hello")
	ts.key(tea.KeyEnter)
	ts.key(tea.KeyCtrlN)
	ts.flush()

	s := ts.snap()
	assert.Empty(t, s.Conversation.Messages)
	assert.Len(t, s.Conversation.RecentSummaries, 1)
}

func TestChat_RegenerateAndRecent(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.typeText("draft a plaint")
	ts.key(tea.KeyEnter)
	ts.flush()
	before := ts.snap().Conversation.Messages[1].ID

	ts.key(tea.KeyCtrlR)
	assert.Len(t, ts.snap().Conversation.Messages, 1)
	ts.flush()
	msgs := ts.snap().Conversation.Messages
	require.Len(t, msgs, 2)
	assert.NotEqual(t, before, msgs[1].ID)

	ts.send(tea.KeyMsg{Type: tea.KeyDown, Alt: true})
	assert.Equal(t, 0, ts.m.recentCursor)
	ts.send(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	assert.Empty(t, ts.snap().Conversation.Messages)
}

func TestPrompt_SignOut(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.key(tea.KeyCtrlX)
	require.NotNil(t, ts.snap().Navigation.Prompt)
	assert.Contains(t, ts.m.View(), "Are you sure you want to logout?")

	ts.key(tea.KeyCtrlS)
	assert.Equal(t, state.DialogNone, ts.snap().Navigation.ActiveDialog, "prompt swallows other keys")

	ts.typeText("n")
	assert.Nil(t, ts.snap().Navigation.Prompt)
	assert.True(t, ts.snap().Session.SignedIn)

	ts.key(tea.KeyCtrlX)
	ts.typeText("y")
	s := ts.snap()
	assert.False(t, s.Session.SignedIn)
	assert.True(t, s.Navigation.SignInVisible)
	assert.Empty(t, ts.stored(store.KeyUserEmail))
	assert.Contains(t, ts.m.View(), "Sign in")
}

func TestPricing_SelectAndPay(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.key(tea.KeyCtrlL)
	require.Equal(t, state.DialogPricing, ts.snap().Navigation.ActiveDialog)
	assert.Contains(t, ts.m.View(), "KES 5500/month")

	ts.key(tea.KeyDown)
	ts.key(tea.KeyEnter)
	p := ts.snap().Navigation.Prompt
	require.NotNil(t, p)
	assert.Equal(t, state.PlanPro, p.Plan)

	ts.key(tea.KeyEnter)
	s := ts.snap()
	assert.Equal(t, state.PlanPro, s.Session.Plan)
	assert.Equal(t, state.DialogNone, s.Navigation.ActiveDialog)
	assert.Equal(t, "Pro Plan", ts.stored(store.KeyUserPlan))
	assert.Contains(t, ts.m.View(), "Payment successful!")
}

func TestPricing_StudentVerification(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.key(tea.KeyCtrlL)
	ts.key(tea.KeyDown)
	ts.key(tea.KeyDown)
	ts.key(tea.KeyEnter)
	require.Equal(t, state.DialogStudentVerification, ts.snap().Navigation.ActiveDialog)

	ts.typeText("amina@gmail.com")
	ts.key(tea.KeyTab)
	ts.typeText("S123")
	ts.key(tea.KeyTab)
	ts.typeText("University of Nairobi")
	ts.key(tea.KeyEnter)
	assert.Contains(t, ts.m.View(), "educational")
	assert.Equal(t, state.DialogStudentVerification, ts.snap().Navigation.ActiveDialog)
}

func TestDialog_EscAndBackdrop(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.key(tea.KeyCtrlS)
	require.Equal(t, state.DialogSettings, ts.snap().Navigation.ActiveDialog)
	ts.key(tea.KeyEsc)
	assert.Equal(t, state.DialogNone, ts.snap().Navigation.ActiveDialog)

	ts.key(tea.KeyCtrlL)
	ts.click(60, 20)
	assert.Equal(t, state.DialogPricing, ts.snap().Navigation.ActiveDialog, "click inside the box")
	ts.click(0, 0)
	assert.Equal(t, state.DialogNone, ts.snap().Navigation.ActiveDialog)

	ts.click(0, 0)
	assert.Equal(t, state.DialogNone, ts.snap().Navigation.ActiveDialog)
}

func TestTemplates_Generate(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.key(tea.KeyF2)
	require.Equal(t, state.ViewTemplates, ts.snap().Navigation.ActiveView)
	ts.key(tea.KeyDown)
	ts.key(tea.KeyEnter)

	nav := ts.snap().Navigation
	require.Equal(t, state.DialogTemplate, nav.ActiveDialog)
	assert.Equal(t, state.TemplateContext{Template: state.TemplateLeaseAgreement}, nav.DialogContext)

	ts.key(tea.KeyEnter)
	assert.Contains(t, ts.m.View(), "Please fill all required fields: title, details")

	ts.typeText("Lease for Plot 12")
	ts.key(tea.KeyTab)
	ts.typeText("Two years")
	ts.key(tea.KeyEnter)
	nav = ts.snap().Navigation
	assert.Equal(t, state.DialogNone, nav.ActiveDialog)
	require.NotNil(t, nav.Notice)
	assert.Contains(t, nav.Notice.Text, "Template: Lease Agreement")

	ts.key(tea.KeyEsc)
	assert.Nil(t, ts.snap().Navigation.Notice)
}

func TestTemplates_FoldCategory(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.key(tea.KeyF2)
	assert.Contains(t, ts.m.View(), "Sale Agreement")

	ts.key(tea.KeySpace)
	assert.True(t, ts.m.collapsed["Contracts"])
	assert.Equal(t, 0, ts.m.templateCursor)
	assert.NotContains(t, ts.m.View(), "Sale Agreement")
	assert.Equal(t, state.DialogNone, ts.snap().Navigation.ActiveDialog, "folding is local to the shell")

	// Next row after the folded header is the Litigation header, then Plaint.
	ts.key(tea.KeyDown)
	ts.key(tea.KeyDown)
	ts.key(tea.KeyEnter)
	assert.Equal(t, state.TemplateContext{Template: state.TemplatePlaint}, ts.snap().Navigation.DialogContext)

	ts.key(tea.KeyEsc)
	ts.key(tea.KeyUp)
	ts.key(tea.KeyUp)
	ts.key(tea.KeyEnter)
	assert.False(t, ts.m.collapsed["Contracts"])
	assert.Contains(t, ts.m.View(), "Sale Agreement")
}

func TestSettings_SaveAndTheme(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer), WithStoredValues(store.KeyUserName, "Jane"))
	ts.key(tea.KeyCtrlS)
	assert.Equal(t, "Jane", ts.m.dialog.value(settingsName))

	for i := 0; i < settingsNotifications; i++ {
		ts.key(tea.KeyTab)
	}
	ts.key(tea.KeySpace)
	ts.key(tea.KeyCtrlT)
	assert.Equal(t, state.ThemeDark, ts.snap().Theme)
	assert.True(t, ts.m.styles.Theme.IsDark)
	assert.False(t, ts.m.dialog.toggled(settingsNotifications), "theme toggle keeps form edits")

	ts.key(tea.KeyEnter)
	assert.Equal(t, "false", ts.stored(store.KeyNotifications))
	assert.Equal(t, "dark", ts.stored(store.KeyTheme))
	assert.Equal(t, "Settings saved successfully!", ts.snap().Navigation.Notice.Text)
}

func TestCaseSearch(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.key(tea.KeyF3)
	ts.key(tea.KeyEnter)
	assert.Contains(t, ts.m.View(), "Please fill all required fields")

	ts.typeText("land dispute")
	ts.key(tea.KeyEnter)
	assert.True(t, ts.snap().Conversation.Search.Loading)
	assert.Contains(t, ts.m.View(), "Searching for")

	ts.flush()
	s := ts.snap().Conversation.Search
	assert.False(t, s.Loading)
	require.Len(t, s.Results, 2)
	assert.Contains(t, ts.m.View(), s.Results[0].Title)
}

func TestDocuments_Analyze(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.key(tea.KeyF4)
	ts.typeText("e")
	assert.Contains(t, ts.m.View(), "Upload a PDF or Word document first")

	require.NoError(t, ts.m.orch.UploadDocument(state.FileInfo{Name: "lease.pdf", SizeBytes: 2048, MimeType: "application/pdf"}))
	ts.m.sync()
	assert.Contains(t, ts.m.View(), "lease.pdf")

	ts.typeText("e")
	assert.Contains(t, ts.m.View(), "Analyzing")
	ts.typeText("s")
	assert.Equal(t, "Analyzing "+state.AnalysisErrors.String()+"…", ts.m.status)
	assert.NotContains(t, ts.m.View(), "Upload a PDF or Word document first")
	ts.flush()
	assert.Contains(t, ts.m.View(), "Line 15")

	ts.typeText("x")
	assert.Nil(t, ts.snap().Conversation.PendingUpload)
}

func TestPicker_OpenAndCancel(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	ts.key(tea.KeyCtrlO)
	assert.Equal(t, pickAttach, ts.m.picking)
	assert.Contains(t, ts.m.View(), "Select a file")
	ts.key(tea.KeyEsc)
	assert.Equal(t, pickNone, ts.m.picking)

	ts.key(tea.KeyF4)
	ts.key(tea.KeyCtrlO)
	assert.Equal(t, pickUpload, ts.m.picking)
	assert.Equal(t, []string{".pdf", ".doc", ".docx"}, ts.m.picker.AllowedTypes)
}

func TestStoreChanged_Reloads(t *testing.T) {
	t.Parallel()

	ts := NewTestModel(t, WithSignedInUser(lawyer))
	require.NoError(t, ts.kv.Clear())
	ts.send(StoreChangedMsg{})
	s := ts.snap()
	assert.False(t, s.Session.SignedIn)
	assert.True(t, s.Navigation.SignInVisible)
}

func TestSink_ScrollDirective(t *testing.T) {
	t.Parallel()

	sink := NewSink()
	sink.Render(state.Snapshot{Directives: state.Directives{ScrollToBottom: true}})
	sink.Render(state.Snapshot{})
	snap, scroll := sink.take()
	assert.True(t, scroll, "any render since the last take counts")
	assert.False(t, snap.Directives.ScrollToBottom)
	_, scroll = sink.take()
	assert.False(t, scroll)
	assert.Equal(t, 2, sink.Renders())
}

func TestFileStatus(t *testing.T) {
	t.Parallel()

	assert.Empty(t, fileStatus(nil))
	assert.Equal(t, "File size must be less than 10MB",
		fileStatus(&orchestrator.FileError{Err: orchestrator.ErrTooLarge, Name: "big.pdf"}))
	assert.Equal(t, "Unsupported file type: application/zip",
		fileStatus(&orchestrator.FileError{Err: orchestrator.ErrUnsupportedType, Name: "a.zip", Mime: "application/zip"}))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

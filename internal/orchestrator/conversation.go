package orchestrator

import (
	"fmt"
	"strings"

	"inlaw/internal/assistant"
	"inlaw/internal/logging"
	"inlaw/internal/state"
)

// MaxUploadBytes is the largest accepted file.
const MaxUploadBytes = 10 * 1024 * 1024

var documentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ChatAttachable reports whether a MIME type may be attached in chat.
func ChatAttachable(mime string) bool {
	return documentTypes[mime] || mime == "text/plain" || strings.HasPrefix(mime, "image/")
}

// Analyzable reports whether a MIME type may be uploaded for analysis.
func Analyzable(mime string) bool {
	return documentTypes[mime]
}

// SetDraft records the pending chat input.
func (o *Orchestrator) SetDraft(text string) {
	if o.st.Conversation.Draft == text {
		return
	}
	o.st.Conversation.Draft = text
	o.render()
}

// SendMessage appends a user message and schedules the reply. Blank text is
// ignored. It reports whether the message was accepted.
func (o *Orchestrator) SendMessage(text string) bool {
	if o.blocked() {
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	c := &o.st.Conversation
	c.Messages = append(c.Messages, state.Message{
		ID:   o.newID(),
		Role: state.RoleUser,
		Text: text,
		Time: o.now(),
	})
	c.Draft = ""
	o.addSummary(text)

	o.schedule(Task{Kind: TaskReply, Delay: o.delays.Reply, Generation: o.generation, Text: text})
	logging.ConversationDebug("message sent (%d chars)", len(text))
	o.scroll = true
	o.render()
	return true
}

// SendSuggestion sends the i-th welcome suggestion.
func (o *Orchestrator) SendSuggestion(i int) bool {
	if i < 0 || i >= len(assistant.Suggestions) {
		return false
	}
	return o.SendMessage(assistant.Suggestions[i].Prompt)
}

func (o *Orchestrator) addSummary(text string) {
	now := o.now()
	id := now.UnixMilli()
	if id <= o.lastSumID {
		id = o.lastSumID + 1
	}
	o.lastSumID = id

	c := &o.st.Conversation
	entry := state.Summary{ID: id, Preview: state.Preview(text), CreatedAt: now}
	c.RecentSummaries = append([]state.Summary{entry}, c.RecentSummaries...)
	if len(c.RecentSummaries) > state.MaxRecent {
		c.RecentSummaries = c.RecentSummaries[:state.MaxRecent]
	}
}

func (o *Orchestrator) appendAssistant(text string) {
	c := &o.st.Conversation
	c.Messages = append(c.Messages, state.Message{
		ID:   o.newID(),
		Role: state.RoleAssistant,
		Text: text,
		Time: o.now(),
	})
	o.scroll = true
}

// StartNewChat empties the transcript and drops the pending upload. Replies
// still in flight are discarded when they fire.
func (o *Orchestrator) StartNewChat() {
	if o.blocked() {
		return
	}
	c := &o.st.Conversation
	c.Messages = nil
	c.PendingUpload = nil
	c.Analysis = nil
	o.generation++
	o.analysisToken++
	o.st.Navigation.ActiveView = state.ViewChat
	logging.Conversation("new chat (generation %d)", o.generation)
	o.render()
}

// OpenRecent selects a recent conversation, which starts a new chat.
func (o *Orchestrator) OpenRecent(id int64) {
	for _, s := range o.st.Conversation.RecentSummaries {
		if s.ID == id {
			o.StartNewChat()
			return
		}
	}
}

// RegenerateLast replaces the final assistant message with a fresh reply
// to the nearest preceding user message. It is a no-op unless the
// transcript ends with an assistant message preceded by a user message.
func (o *Orchestrator) RegenerateLast() {
	if o.blocked() {
		return
	}
	msgs := o.st.Conversation.Messages
	if len(msgs) < 2 || msgs[len(msgs)-1].Role != state.RoleAssistant {
		return
	}
	source := -1
	for i := len(msgs) - 2; i >= 0; i-- {
		if msgs[i].Role == state.RoleUser {
			source = i
			break
		}
	}
	if source < 0 {
		return
	}

	o.st.Conversation.Messages = msgs[:len(msgs)-1]
	o.generation++
	o.schedule(Task{Kind: TaskReply, Delay: o.delays.Regenerate, Generation: o.generation, Text: msgs[source].Text})
	logging.Conversation("regenerating reply (generation %d)", o.generation)
	o.render()
}

func checkFile(f state.FileInfo, allowed func(string) bool) error {
	if !allowed(f.MimeType) {
		return &FileError{Err: ErrUnsupportedType, Name: f.Name, Mime: f.MimeType, Size: f.SizeBytes}
	}
	if f.SizeBytes > MaxUploadBytes {
		return &FileError{Err: ErrTooLarge, Name: f.Name, Mime: f.MimeType, Size: f.SizeBytes}
	}
	return nil
}

// AttachFile attaches a file in chat: it becomes the pending upload, a user
// message records it and an acknowledgment is scheduled.
func (o *Orchestrator) AttachFile(f state.FileInfo) error {
	if o.blocked() {
		return nil
	}
	if err := checkFile(f, ChatAttachable); err != nil {
		logging.ConversationDebug("attachment rejected: %v", err)
		return err
	}

	file := f
	c := &o.st.Conversation
	c.PendingUpload = &file
	c.Analysis = nil
	o.analysisToken++
	attached := f
	c.Messages = append(c.Messages, state.Message{
		ID:         o.newID(),
		Role:       state.RoleUser,
		Text:       fmt.Sprintf("Attached %s (%s)", f.Name, FormatSize(f.SizeBytes)),
		Attachment: &attached,
		Time:       o.now(),
	})
	o.schedule(Task{Kind: TaskAttachAck, Delay: o.delays.AttachAck, Generation: o.generation, Text: f.Name})
	logging.Conversation("attached %s (%s, %d bytes)", f.Name, f.MimeType, f.SizeBytes)
	o.scroll = true
	o.render()
	return nil
}

// UploadDocument selects a document for analysis in the Documents view.
// Only PDF and Word documents are accepted.
func (o *Orchestrator) UploadDocument(f state.FileInfo) error {
	if o.blocked() {
		return nil
	}
	if err := checkFile(f, Analyzable); err != nil {
		return err
	}
	file := f
	o.st.Conversation.PendingUpload = &file
	o.st.Conversation.Analysis = nil
	o.analysisToken++
	logging.Conversation("document uploaded: %s", f.Name)
	o.render()
	return nil
}

// ClearUpload drops the pending upload and any analysis of it.
func (o *Orchestrator) ClearUpload() {
	if o.blocked() || o.st.Conversation.PendingUpload == nil {
		return
	}
	o.st.Conversation.PendingUpload = nil
	o.st.Conversation.Analysis = nil
	o.analysisToken++
	o.render()
}

// AnalyzeDocument returns the canned analysis of the pending upload. The
// Analyzing flag stays set until the simulated latency elapses. ok is false
// when there is no upload or an analysis is already running.
func (o *Orchestrator) AnalyzeDocument(kind state.AnalysisKind) (result state.AnalysisResult, ok bool) {
	if o.blocked() || o.st.Conversation.PendingUpload == nil {
		return state.AnalysisResult{}, false
	}
	if a := o.st.Conversation.Analysis; a != nil && a.Analyzing {
		return state.AnalysisResult{}, false
	}

	result = assistant.Analyze(kind)
	o.st.Conversation.Analysis = &state.Analysis{Result: result, Analyzing: true}
	o.analysisToken++
	o.schedule(Task{Kind: TaskAnalysis, Delay: o.delays.Analysis, Token: o.analysisToken})
	logging.Conversation("analyzing %s (%s)", o.st.Conversation.PendingUpload.Name, kind)
	o.render()
	return result, true
}

// SubmitSearch starts a case search. A newer search supersedes one still
// loading.
func (o *Orchestrator) SubmitSearch(query string) error {
	if o.blocked() {
		return nil
	}
	form := struct {
		Query string `name:"query" validate:"required"`
	}{strings.TrimSpace(query)}
	if err := checkRequired(form, ErrMissingField); err != nil {
		return err
	}

	o.st.Conversation.Search = state.Search{Query: form.Query, Loading: true}
	o.searchToken++
	o.schedule(Task{Kind: TaskSearch, Delay: o.delays.Search, Token: o.searchToken, Text: form.Query})
	logging.Conversation("case search: %q", form.Query)
	o.render()
	return nil
}

// FormatSize renders a byte count in KB with two decimals.
func FormatSize(n int64) string {
	return fmt.Sprintf("%.2f KB", float64(n)/1024)
}

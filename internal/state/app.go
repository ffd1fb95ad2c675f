package state

// AppState is the single aggregate the orchestrator owns.
type AppState struct {
	Session      SessionRecord
	Conversation ConversationRecord
	Navigation   NavigationRecord
	Settings     Settings
	Theme        Theme
}

// Directives are presentation hints emitted alongside a snapshot.
type Directives struct {
	ScrollToBottom bool
}

// Snapshot is an immutable copy of AppState handed to the renderer.
type Snapshot struct {
	AppState
	Directives Directives
}

// Clone returns a deep copy that shares no slices or pointers with s.
func (s AppState) Clone() AppState {
	out := s

	c := &out.Conversation
	if s.Conversation.Messages != nil {
		c.Messages = make([]Message, len(s.Conversation.Messages))
		for i, m := range s.Conversation.Messages {
			if m.Attachment != nil {
				f := *m.Attachment
				m.Attachment = &f
			}
			c.Messages[i] = m
		}
	}
	if s.Conversation.RecentSummaries != nil {
		c.RecentSummaries = append([]Summary(nil), s.Conversation.RecentSummaries...)
	}
	if s.Conversation.PendingUpload != nil {
		f := *s.Conversation.PendingUpload
		c.PendingUpload = &f
	}
	if s.Conversation.Analysis != nil {
		a := *s.Conversation.Analysis
		a.Result.Body = append([]string(nil), a.Result.Body...)
		a.Result.Findings = append([]Finding(nil), a.Result.Findings...)
		c.Analysis = &a
	}
	if s.Conversation.Search.Results != nil {
		c.Search.Results = append([]CaseResult(nil), s.Conversation.Search.Results...)
	}

	n := &out.Navigation
	if s.Navigation.DialogContext != nil {
		n.DialogContext = s.Navigation.DialogContext.clone()
	}
	if s.Navigation.Prompt != nil {
		p := *s.Navigation.Prompt
		n.Prompt = &p
	}
	if s.Navigation.Notice != nil {
		v := *s.Navigation.Notice
		n.Notice = &v
	}
	return out
}

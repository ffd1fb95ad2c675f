package state

import (
	"strings"
	"time"
)

// Role identifies who authored a message.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
)

func (r Role) String() string {
	if r == RoleAssistant {
		return "assistant"
	}
	return "user"
}

// Message is a single transcript entry.
type Message struct {
	ID         string
	Role       Role
	Text       string
	Attachment *FileInfo
	Time       time.Time
}

// Summary is an entry in the recent conversations list.
type Summary struct {
	ID        int64
	Preview   string
	CreatedAt time.Time
}

// FileInfo is what the file input collaborator reports about a selection.
type FileInfo struct {
	Name      string
	SizeBytes int64
	MimeType  string
}

// AnalysisKind selects a canned document analysis.
type AnalysisKind int

const (
	AnalysisSummary AnalysisKind = iota
	AnalysisErrors
	AnalysisCompliance
)

func (k AnalysisKind) String() string {
	switch k {
	case AnalysisErrors:
		return "errors"
	case AnalysisCompliance:
		return "compliance"
	default:
		return "summary"
	}
}

// Finding is one line-level issue in an error analysis.
type Finding struct {
	Line    int
	Message string
}

// AnalysisResult is the canned output of analyzeDocument.
type AnalysisResult struct {
	Kind       AnalysisKind
	Title      string
	Body       []string
	Findings   []Finding
	Compliance int
}

// Analysis tracks the analysis shown in the Documents view.
type Analysis struct {
	Result    AnalysisResult
	Analyzing bool
}

// CaseResult is one case search hit.
type CaseResult struct {
	Title string
	Court string
	Date  string
	Type  string
}

// Search tracks the CaseSearch view.
type Search struct {
	Query   string
	Loading bool
	Results []CaseResult
}

// ConversationRecord is the chat transcript and related document state.
type ConversationRecord struct {
	Messages        []Message
	RecentSummaries []Summary
	PendingUpload   *FileInfo
	Draft           string
	Analysis        *Analysis
	Search          Search
}

// PreviewLimit is the number of runes kept in a summary preview.
const PreviewLimit = 50

// MaxRecent caps RecentSummaries.
const MaxRecent = 10

// Preview truncates text for the recent conversations list.
func Preview(text string) string {
	r := []rune(text)
	if len(r) <= PreviewLimit {
		return text
	}
	return string(r[:PreviewLimit]) + "…"
}

// CanSend reports whether the current draft would be accepted by sendMessage.
func (c ConversationRecord) CanSend() bool {
	return strings.TrimSpace(c.Draft) != ""
}

// LastMessage returns the final transcript entry.
func (c ConversationRecord) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

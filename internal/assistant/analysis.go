package assistant

import "inlaw/internal/state"

// CompliancePercent is the fixed compliance score.
const CompliancePercent = 85

// Analyze returns the canned analysis for kind.
func Analyze(kind state.AnalysisKind) state.AnalysisResult {
	switch kind {
	case state.AnalysisErrors:
		return state.AnalysisResult{
			Kind:  kind,
			Title: "Errors Found (3)",
			Findings: []state.Finding{
				{Line: 15, Message: `Grammatical error - "recieve" should be "receive"`},
				{Line: 23, Message: `Legal terminology - "hereby" usage is redundant`},
				{Line: 31, Message: "Missing comma after introductory clause"},
			},
		}
	case state.AnalysisCompliance:
		return state.AnalysisResult{
			Kind:       kind,
			Title:      "Compliance Status",
			Body:       []string{"Overall Compliance: 85%"},
			Compliance: CompliancePercent,
		}
	default:
		return state.AnalysisResult{
			Kind:  state.AnalysisSummary,
			Title: "Contract Review Summary",
			Body: []string{
				"The document sets out the parties, consideration and principal obligations.",
				"No unusual termination or indemnity clauses were identified.",
			},
		}
	}
}

// SearchCases returns the canned case search results. The query is not
// consulted.
func SearchCases(query string) []state.CaseResult {
	return []state.CaseResult{
		{Title: "Sample Case A", Court: "High Court", Date: "2021-05-15", Type: "Case Law"},
		{Title: "Employment Act, 2007 - Section 45", Court: "Statute", Date: "2007", Type: "Legislation"},
	}
}

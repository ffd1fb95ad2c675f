// Package assistant provides the scripted stand-ins for the assistant's
// replies, document analysis and case search. Every function is pure.
package assistant

import "strings"

// rule matches when every group has at least one keyword present.
type rule struct {
	name   string
	groups [][]string
	reply  string
}

func (r rule) matches(lower string) bool {
	for _, group := range r.groups {
		hit := false
		for _, kw := range group {
			if strings.Contains(lower, kw) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Checked in order; the first match wins.
var rules = []rule{
	{
		name:   "contract-law",
		groups: [][]string{{"contract"}, {"requirement"}},
		reply: `Under Kenyan law, specifically the Law of Contract Act (Cap. 23), a valid contract requires the following essential elements:

1. Offer and Acceptance
2. Consideration
3. Intention to Create Legal Relations
4. Capacity to Contract
5. Legality of Object
6. Certainty of Terms

Would you like more detail?`,
	},
	{
		name:   "employment-law",
		groups: [][]string{{"employment"}},
		reply:  "Regarding employment law in Kenya, the primary legislation is the Employment Act, 2007. Key provisions include employment contracts, notice periods, leave entitlements, and protections against unfair dismissal.",
	},
	{
		name:   "document-generation",
		groups: [][]string{{"generate", "template"}},
		reply:  "I can help you generate a legal document. Provide type, parties, key terms, and any clauses you require.",
	},
	{
		name:   "civil-procedure",
		groups: [][]string{{"plaint", "filing"}},
		reply:  "The procedure for filing a plaint in Kenya follows the Civil Procedure Act and Civil Procedure Rules. File at the registry, pay fees, serve the defendant, and comply with procedural rules.",
	},
}

// Clarification is returned when no rule matches.
const Clarification = "Please provide more details about your legal question so I can assist more accurately."

// GenerateReply returns the scripted reply for a user message.
func GenerateReply(userText string) string {
	reply, _ := Match(userText)
	return reply
}

// Match returns the reply and the name of the rule that produced it.
// The name is "clarification" when nothing matched.
func Match(userText string) (reply, ruleName string) {
	lower := strings.ToLower(userText)
	for _, r := range rules {
		if r.matches(lower) {
			return r.reply, r.name
		}
	}
	return Clarification, "clarification"
}

// AttachmentAck is the assistant's reply to a chat attachment.
func AttachmentAck(fileName string) string {
	return `Received the file "` + fileName + `". What would you like me to do with it?`
}

// Suggestion is a canned starter prompt shown on the welcome screen.
type Suggestion struct {
	Label  string
	Prompt string
}

// Suggestions are shown in this order.
var Suggestions = []Suggestion{
	{Label: "Contract Requirements", Prompt: "What are the requirements for a valid contract under Kenyan law?"},
	{Label: "Employment Law Cases", Prompt: "Find recent cases on employment law in Kenya"},
	{Label: "Generate Document", Prompt: "Generate a sale agreement template"},
	{Label: "Court Procedures", Prompt: "What is the procedure for filing a plaint in Kenya?"},
}

// README: LLM-backed agents: intent classification, search, planning, communication.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"atlas/internal/llm"
)

// Intent kinds produced by the classifier.
const (
	IntentNewTrip         = "new_trip"
	IntentModifyTrip      = "modify_trip"
	IntentAskQuestion     = "ask_question"
	IntentProvideFeedback = "provide_feedback"
	IntentConfirm         = "confirm"
	IntentReject          = "reject"
	IntentUnclear         = "unclear"
)

// IntentRecord is the structured classification of one user message. It lives
// only for the duration of a single dispatch.
type IntentRecord struct {
	Intent      string   `json:"intent"`
	Destination string   `json:"destination"`
	Dates       string   `json:"dates"`
	Preferences []string `json:"preferences"`
	Questions   []string `json:"questions"`
	Feedback    string   `json:"feedback"`
}

// FallbackIntent is what classification degrades to on any provider or parse
// failure: kind unclear, all slots empty.
func FallbackIntent() IntentRecord {
	return IntentRecord{Intent: IntentUnclear}
}

// IntentClassifier extracts intent and slots from user messages.
type IntentClassifier struct {
	gen llm.Generator
}

func NewIntentClassifier(gen llm.Generator) *IntentClassifier {
	return &IntentClassifier{gen: gen}
}

// Classify prompts for strict JSON and parses it. It never returns an error;
// malformed output is an expected outcome and yields the fixed fallback record.
func (c *IntentClassifier) Classify(ctx context.Context, model, message string) IntentRecord {
	prompt := fmt.Sprintf(`Analyze the following user message in the context of travel planning and determine the user's intent.

User message: %s

Return a JSON object with:
- intent: one of ["new_trip", "modify_trip", "ask_question", "provide_feedback", "confirm", "reject", "unclear"]
- destination: extracted destination if mentioned (null if not)
- dates: extracted travel dates if mentioned (null if not)
- preferences: list of extracted preferences (budget, activities, etc.)
- questions: any specific questions the user is asking
- feedback: specific feedback about a previous plan (null if not applicable)

Return only valid JSON without markdown formatting.`, message)

	resp, err := c.gen.Generate(ctx, llm.Request{
		Model:  model,
		Agent:  "CommunicationAgent",
		Action: "analyze_intent",
		Prompt: prompt,
	})
	if err != nil {
		return FallbackIntent()
	}

	var rec IntentRecord
	if err := json.Unmarshal([]byte(llm.CleanJSON(resp.Content)), &rec); err != nil {
		return FallbackIntent()
	}
	if rec.Intent == "" {
		rec.Intent = IntentUnclear
	}
	return rec
}

package agent

import (
	"context"
	"fmt"
	"strings"

	"atlas/internal/llm"
)

// Communicator produces all user-facing prose: formatted replies, clarifying
// questions, trip summaries, and general assistant turns.
type Communicator struct {
	gen llm.Generator
}

func NewCommunicator(gen llm.Generator) *Communicator {
	return &Communicator{gen: gen}
}

// Format rewrites raw content into a conversational reply. On provider error the
// original content is returned unchanged; formatting must never lose information.
func (c *Communicator) Format(ctx context.Context, model, content, contentType string) string {
	prompt := fmt.Sprintf(`You are a friendly travel assistant. Format the following content for a chat conversation.
Make it conversational, engaging, and easy to read.

Content type: %s
Content:
%s

Guidelines:
- Use a warm, helpful tone
- Break up long text into readable paragraphs
- Highlight key information
- Keep it concise but informative
- If it's an itinerary, make sure it's well-structured
- End with an invitation for feedback or questions`, contentType, content)

	resp, err := c.gen.Generate(ctx, llm.Request{
		Model:  model,
		Agent:  "CommunicationAgent",
		Action: "format_response",
		Prompt: prompt,
	})
	if err != nil {
		return content
	}
	return resp.Content
}

// ClarifyingQuestions asks for the missing pieces of a trip request.
func (c *Communicator) ClarifyingQuestions(ctx context.Context, model, request string, missing []string) string {
	prompt := fmt.Sprintf(`You are a friendly travel assistant. The user wants to plan a trip but some information is missing.

User request: %s
Missing information: %s

Generate friendly, conversational questions to gather the missing information. Be concise and helpful.
Ask 2-3 questions maximum to avoid overwhelming the user.`, request, strings.Join(missing, ", "))

	resp, err := c.gen.Generate(ctx, llm.Request{
		Model:  model,
		Agent:  "CommunicationAgent",
		Action: "clarifying_questions",
		Prompt: prompt,
	})
	if err != nil {
		return fmt.Sprintf("Could you please provide more details about your trip? Specifically: %s", strings.Join(missing, ", "))
	}
	return resp.Content
}

// Summarize produces a short trip summary. Falls back to a clipped itinerary.
func (c *Communicator) Summarize(ctx context.Context, model, itinerary string) string {
	prompt := fmt.Sprintf(`Create a brief, engaging summary of this travel itinerary in 3-4 sentences.
Highlight the destination, duration, and key highlights.

Itinerary:
%s`, itinerary)

	resp, err := c.gen.Generate(ctx, llm.Request{
		Model:  model,
		Agent:  "CommunicationAgent",
		Action: "summarize_trip",
		Prompt: prompt,
	})
	if err != nil {
		return clip(itinerary, 500) + "..."
	}
	return resp.Content
}

// Respond handles a general assistant turn with recent history and extra context.
// The reply is always non-empty; provider failures yield an apology string.
func (c *Communicator) Respond(ctx context.Context, model, message, extraContext string, history []Message) string {
	historyText := formatHistory(history, historyWindow, 0)
	if extraContext == "" {
		extraContext = "No additional context"
	}

	prompt := fmt.Sprintf(`You are a friendly and knowledgeable travel assistant. Your role is to help users plan their perfect trip.

## Conversation History:
%s

## Additional Context:
%s

## Instructions:
1. Respond naturally and helpfully to the user's message
2. If they're starting a new trip, gather necessary information (destination, dates, budget, preferences)
3. If they have questions, answer them based on the context provided
4. If they provide feedback, acknowledge it and explain how it will be incorporated
5. Always be encouraging and helpful
6. Keep responses concise but informative

User message: %s

Generate your response:`, historyText, extraContext, message)

	resp, err := c.gen.Generate(ctx, llm.Request{
		Model:  model,
		Agent:  "CommunicationAgent",
		Action: "generate_response",
		Prompt: prompt,
	})
	if err != nil {
		return fmt.Sprintf("I apologize, but I encountered an error. Please try again. Error: %v", err)
	}
	return resp.Content
}

// formatHistory renders the last n messages as "ROLE: content" lines, clipping
// each entry to maxChars when maxChars > 0.
func formatHistory(history []Message, n, maxChars int) string {
	if len(history) > n {
		history = history[len(history)-n:]
	}
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		content := msg.Content
		if maxChars > 0 {
			content = clip(content, maxChars)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(msg.Role), content))
	}
	return strings.Join(lines, "\n")
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

package agent

import (
	"context"
	"fmt"

	"atlas/internal/llm"
)

// historyWindow is how many trailing conversation entries revision prompts see.
const historyWindow = 10

// Message is one conversation entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Planner creates and revises itineraries. Both operations fail closed: on
// provider error they return an error-description string so the orchestrator
// always has something to show the user.
type Planner struct {
	gen llm.Generator
}

func NewPlanner(gen llm.Generator) *Planner {
	return &Planner{gen: gen}
}

// Create builds a day-by-day itinerary from the request and search results.
func (p *Planner) Create(ctx context.Context, model, request, searchResults string) string {
	prompt := fmt.Sprintf(`You are an expert travel planner. Based on the user's request and the search results provided, create a detailed and optimized travel itinerary.

## User Request:
%s

## Search Results:
%s

## Instructions:
1. Create a day-by-day itinerary that is practical and well-organized
2. Include recommended flights and hotels based on the search results
3. Suggest the best attractions to visit each day with timing recommendations
4. Include restaurant recommendations for meals
5. Consider travel time between locations
6. Provide estimated costs where possible
7. Add practical tips for each destination

Format the itinerary in a clear, readable format with:
- Overview of the trip
- Day-by-day schedule
- Accommodation recommendations
- Transportation suggestions
- Budget estimate
- Important tips and notes

Be specific and actionable in your recommendations.`, request, searchResults)

	resp, err := p.gen.Generate(ctx, llm.Request{
		Model:  model,
		Agent:  "PlannerAgent",
		Action: "create_itinerary",
		Prompt: prompt,
	})
	if err != nil {
		return fmt.Sprintf("Error generating itinerary: %v", err)
	}
	return resp.Content
}

// Revise updates an itinerary from user feedback, with a bounded window of
// recent conversation as context.
func (p *Planner) Revise(ctx context.Context, model, current, feedback string, history []Message) string {
	historyContext := formatHistory(history, historyWindow, 500)
	if historyContext == "" {
		historyContext = "No previous conversation"
	}

	prompt := fmt.Sprintf(`You are an expert travel planner. The user has provided feedback on their current itinerary. Please optimize and update the itinerary based on their feedback.

## Conversation History:
%s

## Current Itinerary:
%s

## User Feedback:
%s

## Instructions:
1. Address all points mentioned in the user's feedback
2. Consider the context from the conversation history
3. Maintain the overall structure while incorporating changes
4. Ensure the updated itinerary is still practical and well-organized
5. Explain what changes you made and why

Provide the updated itinerary in the same format as before.`, historyContext, current, feedback)

	resp, err := p.gen.Generate(ctx, llm.Request{
		Model:  model,
		Agent:  "PlannerAgent",
		Action: "optimize_itinerary",
		Prompt: prompt,
	})
	if err != nil {
		return fmt.Sprintf("Error optimizing itinerary: %v", err)
	}
	return resp.Content
}

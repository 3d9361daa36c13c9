// README: Conversation state: phases, per-session fields, reset semantics.
package session

import (
	"sync"

	"atlas/internal/agent"
)

// Phase is the orchestrator's stage in the trip-planning conversation.
type Phase string

const (
	PhaseGreeting      Phase = "greeting"
	PhaseGatheringInfo Phase = "gathering_info"
	PhaseSearching     Phase = "searching"
	PhasePlanning      Phase = "planning"
	PhaseReviewing     Phase = "reviewing"
	PhaseModifying     Phase = "modifying"
)

// Session holds one user's conversation state. It is owned by exactly one
// conversation; the manager serializes all access through mu.
type Session struct {
	ID              string
	Phase           Phase
	Model           string
	OriginalRequest string
	SearchResults   string
	Itinerary       string
	History         []agent.Message

	mu sync.Mutex
}

// NewSession returns an empty session in the greeting phase.
func NewSession(id, model string) *Session {
	return &Session{ID: id, Phase: PhaseGreeting, Model: model}
}

// Reset restores the conversation fields to their initial values. The selected
// model is a transport preference and survives resets. Idempotent.
func (s *Session) Reset() {
	s.Phase = PhaseGreeting
	s.OriginalRequest = ""
	s.SearchResults = ""
	s.Itinerary = ""
	s.History = nil
}

func (s *Session) append(role, content string) {
	s.History = append(s.History, agent.Message{Role: role, Content: content})
}

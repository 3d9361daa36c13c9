// README: Communicator tests (fallback behavior on provider failure).
package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFormatFallsBackToContent(t *testing.T) {
	gen := &fakeGen{err: errors.New("backend down")}
	c := NewCommunicator(gen)

	raw := "Day 1: Eiffel Tower\nDay 2: Louvre"
	if got := c.Format(context.Background(), "gpt-4o-mini", raw, "itinerary"); got != raw {
		t.Errorf("Format fallback = %q, want original content", got)
	}
}

func TestFormatUsesGeneratedReply(t *testing.T) {
	gen := &fakeGen{content: "Here's your plan!"}
	c := NewCommunicator(gen)

	if got := c.Format(context.Background(), "gpt-4o-mini", "Day 1", "itinerary"); got != "Here's your plan!" {
		t.Errorf("Format = %q", got)
	}
	if gen.lastReq.Action != "format_response" {
		t.Errorf("action = %q", gen.lastReq.Action)
	}
}

func TestClarifyingQuestionsFallbackNamesMissing(t *testing.T) {
	gen := &fakeGen{err: errors.New("backend down")}
	c := NewCommunicator(gen)

	got := c.ClarifyingQuestions(context.Background(), "gpt-4o-mini", "somewhere warm", []string{"destination", "travel dates"})
	if !strings.Contains(got, "destination, travel dates") {
		t.Errorf("fallback = %q, should list the missing slots", got)
	}
}

func TestSummarizeFallbackClips(t *testing.T) {
	gen := &fakeGen{err: errors.New("backend down")}
	c := NewCommunicator(gen)

	long := strings.Repeat("a", 600)
	got := c.Summarize(context.Background(), "gpt-4o-mini", long)
	if got != long[:500]+"..." {
		t.Errorf("Summarize fallback length = %d", len(got))
	}
}

func TestRespondFallbackApologizes(t *testing.T) {
	gen := &fakeGen{err: errors.New("backend down")}
	c := NewCommunicator(gen)

	got := c.Respond(context.Background(), "gpt-4o-mini", "hello", "", nil)
	if !strings.Contains(got, "I apologize") || !strings.Contains(got, "backend down") {
		t.Errorf("Respond fallback = %q", got)
	}
}

func TestRespondIncludesHistory(t *testing.T) {
	gen := &fakeGen{content: "Of course!"}
	c := NewCommunicator(gen)

	history := []Message{
		{Role: "user", Content: "plan Paris"},
		{Role: "assistant", Content: "Day 1: Eiffel Tower"},
	}
	c.Respond(context.Background(), "gpt-4o-mini", "do I need a visa?", "Current state: reviewing", history)

	if !strings.Contains(gen.lastReq.Prompt, "USER: plan Paris") {
		t.Error("prompt missing upper-cased history line")
	}
	if !strings.Contains(gen.lastReq.Prompt, "ASSISTANT: Day 1: Eiffel Tower") {
		t.Error("prompt missing assistant history line")
	}
	if !strings.Contains(gen.lastReq.Prompt, "Current state: reviewing") {
		t.Error("prompt missing extra context")
	}
}

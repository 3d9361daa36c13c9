// README: Client tests (span recording on success and failure, fence cleanup).
package llm

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"atlas/internal/tracing"
)

type failingBackend struct{}

func (failingBackend) Generate(_ context.Context, _ string) (*Response, error) {
	return nil, errors.New("backend down")
}

func newClientFixture(t *testing.T, b Backend) (*Client, *tracing.Tracer) {
	t.Helper()
	r, err := NewRegistry("gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}
	if b != nil {
		err = r.Register("openai", func(ModelInfo) (Backend, error) { return b, nil })
		if err != nil {
			t.Fatal(err)
		}
	}
	tracer := tracing.NewTracer(zap.NewNop(), nil)
	return NewClient(r, tracer), tracer
}

func TestGenerateRecordsSpan(t *testing.T) {
	c, tracer := newClientFixture(t, stubBackend{reply: "hello"})
	ctx, tr := tracer.StartTrace(context.Background(), "test_trace")

	resp, err := c.Generate(ctx, Request{
		Model: "gpt-4o-mini", Agent: "PlannerAgent", Action: "create_itinerary", Prompt: "plan",
	})
	if err != nil || resp.Content != "hello" {
		t.Fatalf("resp = %+v, err = %v", resp, err)
	}
	tracer.End(tr, "success")

	if len(tr.Spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tr.Spans))
	}
	span := tr.Spans[0]
	if span.Agent != "PlannerAgent" || span.Action != "create_itinerary" || span.Status != "success" {
		t.Errorf("span = %+v", span)
	}
	if span.TotalTokens != 1 {
		t.Errorf("span tokens = %d", span.TotalTokens)
	}
}

// TestGenerateFailureStillRecorded verifies failed calls land in the trace with
// status error and the cause.
func TestGenerateFailureStillRecorded(t *testing.T) {
	c, tracer := newClientFixture(t, failingBackend{})
	ctx, tr := tracer.StartTrace(context.Background(), "test_trace")

	if _, err := c.Generate(ctx, Request{Model: "gpt-4o-mini", Agent: "PlannerAgent", Action: "create_itinerary"}); err == nil {
		t.Fatal("want error")
	}
	tracer.End(tr, "error")

	if len(tr.Spans) != 1 || tr.Spans[0].Status != "error" || tr.Spans[0].Error == "" {
		t.Errorf("spans = %+v", tr.Spans)
	}
}

func TestGenerateUnconfiguredModel(t *testing.T) {
	c, _ := newClientFixture(t, nil)
	_, err := c.Generate(context.Background(), Request{Model: "gpt-4o-mini"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
	}
	for _, tt := range tests {
		if got := CleanJSON(tt.in); got != tt.want {
			t.Errorf("CleanJSON(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

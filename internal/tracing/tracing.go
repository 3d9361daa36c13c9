// README: Per-message trace grouping, span log, and token-usage rollups.
package tracing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Span is one provider call within a trace.
type Span struct {
	SpanID           string  `json:"span_id"`
	Agent            string  `json:"agent"`
	Action           string  `json:"action"`
	Model            string  `json:"model"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	DurationMS       float64 `json:"duration_ms"`
	Status           string  `json:"status"`
	Error            string  `json:"error,omitempty"`
	Timestamp        string  `json:"timestamp"`
}

// Trace groups the spans produced while handling one user message.
type Trace struct {
	TraceID         string  `json:"trace_id"`
	Name            string  `json:"name"`
	Spans           []Span  `json:"spans"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	TotalTokens     int     `json:"total_tokens"`
	TotalDurationMS float64 `json:"total_duration_ms"`
	Status          string  `json:"status"`
}

// Sink receives every recorded span. Implementations must not block the caller on
// failure; telemetry is a side channel.
type Sink interface {
	Insert(ctx context.Context, traceID string, span Span) error
}

type ctxKey struct{}

// maxTraces bounds in-memory retention; older traces are dropped.
const maxTraces = 500

// approximate gpt-4o-mini blended price per token, for the usage endpoint only.
const costPerToken = 0.00000015

// Tracer records traces in memory, logs each span, and forwards spans to an
// optional sink.
type Tracer struct {
	mu     sync.Mutex
	traces []*Trace
	log    *zap.Logger
	sink   Sink
}

func NewTracer(log *zap.Logger, sink Sink) *Tracer {
	return &Tracer{log: log, sink: sink}
}

// StartTrace opens a trace and stores it in the returned context. End must be
// called when message handling finishes.
func (t *Tracer) StartTrace(ctx context.Context, name string) (context.Context, *Trace) {
	tr := &Trace{
		TraceID:   uuid.NewString()[:8],
		Name:      name,
		StartTime: time.Now().Format(time.RFC3339Nano),
		Status:    "running",
	}
	t.mu.Lock()
	t.traces = append(t.traces, tr)
	if len(t.traces) > maxTraces {
		t.traces = t.traces[len(t.traces)-maxTraces:]
	}
	t.mu.Unlock()
	return context.WithValue(ctx, ctxKey{}, tr), tr
}

// End marks the trace finished with the given status.
func (t *Tracer) End(tr *Trace, status string) {
	t.mu.Lock()
	tr.EndTime = time.Now().Format(time.RFC3339Nano)
	tr.Status = status
	t.mu.Unlock()
}

// Record attaches a span to the context's trace (if any), logs it, and forwards it
// to the sink. Sink failures are logged and dropped.
func (t *Tracer) Record(ctx context.Context, span Span) {
	span.SpanID = uuid.NewString()[:8]
	span.Timestamp = time.Now().Format(time.RFC3339Nano)

	traceID := "no_trace"
	if tr, ok := ctx.Value(ctxKey{}).(*Trace); ok {
		t.mu.Lock()
		tr.Spans = append(tr.Spans, span)
		tr.TotalTokens += span.TotalTokens
		tr.TotalDurationMS += span.DurationMS
		t.mu.Unlock()
		traceID = tr.TraceID
	}

	fields := []zap.Field{
		zap.String("trace_id", traceID),
		zap.String("agent", span.Agent),
		zap.String("action", span.Action),
		zap.String("model", span.Model),
		zap.Int("prompt_tokens", span.PromptTokens),
		zap.Int("completion_tokens", span.CompletionTokens),
		zap.Int("total_tokens", span.TotalTokens),
		zap.Float64("duration_ms", span.DurationMS),
		zap.String("status", span.Status),
	}
	if span.Error != "" {
		t.log.Error("llm span", append(fields, zap.String("error", span.Error))...)
	} else {
		t.log.Info("llm span", fields...)
	}

	if t.sink != nil {
		if err := t.sink.Insert(ctx, traceID, span); err != nil {
			t.log.Warn("usage ledger insert failed", zap.Error(err))
		}
	}
}

// Recent returns up to limit most recent traces, newest last.
func (t *Tracer) Recent(limit int) []Trace {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.traces)
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]Trace, 0, n)
	for _, tr := range t.traces[len(t.traces)-n:] {
		out = append(out, *tr)
	}
	return out
}

// AgentUsage aggregates calls and tokens for one agent or model.
type AgentUsage struct {
	Calls  int `json:"calls"`
	Tokens int `json:"tokens"`
}

// UsageSummary is the rollup served by the usage endpoint.
type UsageSummary struct {
	TotalTraces           int                   `json:"total_traces"`
	TotalCalls            int                   `json:"total_calls"`
	TotalPromptTokens     int                   `json:"total_prompt_tokens"`
	TotalCompletionTokens int                   `json:"total_completion_tokens"`
	TotalTokens           int                   `json:"total_tokens"`
	ByAgent               map[string]AgentUsage `json:"by_agent"`
	ByModel               map[string]AgentUsage `json:"by_model"`
	EstimatedCostUSD      float64               `json:"estimated_cost_usd"`
}

// Summary aggregates token usage across all retained traces.
func (t *Tracer) Summary() UsageSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := UsageSummary{
		TotalTraces: len(t.traces),
		ByAgent:     map[string]AgentUsage{},
		ByModel:     map[string]AgentUsage{},
	}
	for _, tr := range t.traces {
		for _, sp := range tr.Spans {
			s.TotalCalls++
			s.TotalPromptTokens += sp.PromptTokens
			s.TotalCompletionTokens += sp.CompletionTokens
			s.TotalTokens += sp.TotalTokens

			a := s.ByAgent[sp.Agent]
			a.Calls++
			a.Tokens += sp.TotalTokens
			s.ByAgent[sp.Agent] = a

			m := s.ByModel[sp.Model]
			m.Calls++
			m.Tokens += sp.TotalTokens
			s.ByModel[sp.Model] = m
		}
	}
	s.EstimatedCostUSD = float64(s.TotalTokens) * costPerToken
	return s
}

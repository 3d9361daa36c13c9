package llm

import (
	"context"
	"time"

	"atlas/internal/tracing"
)

// Client routes generate calls through the registry and records one tracing span
// per call, success or failure.
type Client struct {
	reg    *Registry
	tracer *tracing.Tracer
}

// NewClient wraps a registry with telemetry.
func NewClient(reg *Registry, tracer *tracing.Tracer) *Client {
	return &Client{reg: reg, tracer: tracer}
}

// Generate resolves req.Model and performs the call. The span is recorded before
// returning so failed calls are visible in traces too.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	backend, err := c.reg.Backend(req.Model)
	if err != nil {
		c.record(ctx, req, nil, 0, err)
		return nil, err
	}

	start := time.Now()
	resp, err := backend.Generate(ctx, req.Prompt)
	c.record(ctx, req, resp, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) record(ctx context.Context, req Request, resp *Response, dur time.Duration, err error) {
	span := tracing.Span{
		Agent:      req.Agent,
		Action:     req.Action,
		Model:      req.Model,
		DurationMS: float64(dur.Microseconds()) / 1000,
		Status:     "success",
	}
	if resp != nil {
		span.PromptTokens = resp.PromptTokens
		span.CompletionTokens = resp.CompletionTokens
		span.TotalTokens = resp.TotalTokens
	}
	if err != nil {
		span.Status = "error"
		span.Error = err.Error()
	}
	c.tracer.Record(ctx, span)
}

package tracing

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger persists spans into the llm_usage table. It is wired as the Tracer sink
// only when a database DSN is configured.
type Ledger struct {
	db *pgxpool.Pool
}

// NewLedger returns a Ledger backed by the given connection pool.
func NewLedger(db *pgxpool.Pool) *Ledger {
	return &Ledger{db: db}
}

// Insert writes one span row. Callers treat failures as non-fatal.
func (l *Ledger) Insert(ctx context.Context, traceID string, span Span) error {
	_, err := l.db.Exec(ctx, `
		INSERT INTO llm_usage (span_id, trace_id, agent, action, model,
			prompt_tokens, completion_tokens, total_tokens, duration_ms, status, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, span.SpanID, traceID, span.Agent, span.Action, span.Model,
		span.PromptTokens, span.CompletionTokens, span.TotalTokens,
		span.DurationMS, span.Status, span.Error)
	return err
}

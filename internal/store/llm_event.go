package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LLMRequestEvent records one completion request: which model served it,
// what for, how long it took, and whether it succeeded.
type LLMRequestEvent struct {
	ID           int64
	Timestamp    time.Time
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append and query access to request events.
type EventRepo interface {
	// AppendLLMRequest records a completion request event.
	AppendLLMRequest(ctx context.Context, event LLMRequestEvent) error

	// QueryLLMRequests returns the most recent events, newest first.
	// limit <= 0 means no limit.
	QueryLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, event LLMRequestEvent) error {
	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_request_events
			(timestamp, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ts, event.Model, event.Purpose, event.InputTokens, event.OutputTokens,
		event.LatencyMs, event.Success, event.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("insert llm request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error) {
	query := `SELECT id, timestamp, model, purpose, input_tokens, output_tokens,
			latency_ms, success, error_message
		FROM llm_request_events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm request events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		var e LLMRequestEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan llm request event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

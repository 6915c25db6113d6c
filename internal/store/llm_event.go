package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var eventColumns = []string{
	"id", "created_at", "run_id", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo on the llm_events table.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	success := 0
	if data.Success {
		success = 1
	}

	query, args := builder().
		Insert(eventsTable).
		Columns(eventColumns[1:]...).
		Values(
			time.Now().UnixMilli(), data.RunID, data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	sel := builder().Select(eventColumns...).From(entsql.Table(eventsTable))

	if opts.After > 0 {
		sel.Where(entsql.GT("id", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("id", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if opts.RunID != "" {
		sel.Where(entsql.EQ("run_id", opts.RunID))
	}
	sel.OrderBy(entsql.Desc("id"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEventRecord
	for rows.Next() {
		rec, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEventRecord, error) {
	query, args := builder().
		Select(eventColumns...).
		From(entsql.Table(eventsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	query, args := builder().
		Select(
			"purpose",
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum("input_tokens"), "input_total"),
			entsql.As(entsql.Sum("output_tokens"), "output_total"),
			entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
		).
		From(entsql.Table(eventsTable)).
		GroupBy("purpose").
		OrderBy(entsql.Asc("purpose")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []LLMUsageStats
	for rows.Next() {
		var s LLMUsageStats
		var avg float64
		if err := rows.Scan(&s.Purpose, &s.Calls, &s.InputTokens, &s.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		s.AvgLatencyMs = int64(avg)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	query, args := builder().
		Select(
			"model",
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum("input_tokens"), "input_total"),
			entsql.As(entsql.Sum("output_tokens"), "output_total"),
		).
		From(entsql.Table(eventsTable)).
		GroupBy("model").
		OrderBy(entsql.Asc("model")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []LLMModelUsage
	for rows.Next() {
		var m LLMModelUsage
		if err := rows.Scan(&m.Model, &m.Calls, &m.InputTokens, &m.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*LLMRequestEventRecord, error) {
	var rec LLMRequestEventRecord
	var createdAt int64
	var success int
	err := row.Scan(
		&rec.ID, &createdAt, &rec.RunID, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &success,
		&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	rec.Timestamp = time.UnixMilli(createdAt).UTC()
	rec.Success = success != 0
	return &rec, nil
}

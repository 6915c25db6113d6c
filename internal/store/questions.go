package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/questify/internal/paper"
)

// insertChunk bounds the rows per INSERT to stay well under SQLite's
// bound-parameter limit.
const insertChunk = 200

// questionRepo implements QuestionRepo on the questions table.
type questionRepo struct {
	db *sql.DB
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *questionRepo) Insert(ctx context.Context, qs []paper.Question) (int, error) {
	rows := make([]paper.Question, 0, len(qs))
	for _, q := range qs {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		if strings.TrimSpace(q.Unit) == "" {
			q.Unit = "Unknown"
		}
		if !q.Difficulty.Valid() {
			q.Difficulty = paper.NormalizeDifficulty(string(q.Difficulty))
		}
		rows = append(rows, q)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))

		ins := builder().Insert(questionsTable).Columns("unit", "question", "marks", "difficulty")
		for _, q := range rows[start:end] {
			ins.Values(q.Unit, q.Text, q.Marks, string(q.Difficulty))
		}

		query, args := ins.Query()
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert questions: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	return inserted, nil
}

func (r *questionRepo) Query(ctx context.Context, f Filter) ([]paper.Question, error) {
	sel := builder().
		Select("id", "unit", "question", "marks", "difficulty").
		From(entsql.Table(questionsTable))

	if len(f.Units) > 0 {
		sel.Where(entsql.In("unit", anySlice(f.Units)...))
	}
	if len(f.Difficulties) > 0 {
		diffs := make([]string, len(f.Difficulties))
		for i, d := range f.Difficulties {
			diffs[i] = string(d)
		}
		sel.Where(entsql.In("difficulty", anySlice(diffs)...))
	}
	if len(f.Marks) > 0 {
		sel.Where(entsql.In("marks", anySlice(f.Marks)...))
	}
	sel.OrderBy(entsql.Asc("unit"), entsql.Asc("marks"), entsql.Asc("id"))

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []paper.Question
	for rows.Next() {
		var q paper.Question
		var diff string
		if err := rows.Scan(&q.ID, &q.Unit, &q.Text, &q.Marks, &diff); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Difficulty = paper.Difficulty(diff)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}

func (r *questionRepo) Units(ctx context.Context) ([]string, error) {
	query, args := builder().
		Select("unit").
		Distinct().
		From(entsql.Table(questionsTable)).
		OrderBy(entsql.Asc("unit")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	defer rows.Close()

	var units []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *questionRepo) Stats(ctx context.Context) ([]UnitStat, error) {
	query, args := builder().
		Select("unit", "marks", entsql.As(entsql.Count("*"), "n")).
		From(entsql.Table(questionsTable)).
		GroupBy("unit", "marks").
		OrderBy(entsql.Asc("unit"), entsql.Asc("marks")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var stats []UnitStat
	for rows.Next() {
		var s UnitStat
		if err := rows.Scan(&s.Unit, &s.Marks, &s.Count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *questionRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+questionsTable); err != nil {
		return fmt.Errorf("drop questions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createQuestions); err != nil {
		return fmt.Errorf("recreate questions: %w", err)
	}
	return tx.Commit()
}

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

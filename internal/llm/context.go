package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	runIDKey   contextKey = "llm_run_id"
)

// WithPurpose attaches a purpose label (e.g. "question-gen") to the
// context. The logging middleware stores it with each event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithRunID tags every request made under ctx with a generation run ID.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFrom returns the run ID attached to ctx, or "".
func RunIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(runIDKey).(string)
	return v
}

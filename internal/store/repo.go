package store

import (
	"context"
	"time"

	"github.com/abhisek/questify/internal/paper"
)

// Filter restricts a question query. An empty slice means no restriction
// on that column.
type Filter struct {
	Units        []string
	Difficulties []paper.Difficulty
	Marks        []int
}

// UnitStat counts the stored questions for one unit and marks value.
type UnitStat struct {
	Unit  string
	Marks int
	Count int
}

// QuestionRepo is the persistent question bank.
type QuestionRepo interface {
	// Insert stores questions and returns how many rows were written.
	// Questions with empty text are skipped; a missing unit becomes
	// "Unknown" and an invalid difficulty becomes Medium.
	Insert(ctx context.Context, qs []paper.Question) (int, error)

	// Query returns the questions matching f ordered by unit, then marks,
	// then insertion order.
	Query(ctx context.Context, f Filter) ([]paper.Question, error)

	// Units returns the distinct unit titles in ascending order.
	Units(ctx context.Context) ([]string, error)

	// Stats counts questions per unit and marks value.
	Stats(ctx context.Context) ([]UnitStat, error)

	// Reset drops and recreates the question table.
	Reset(ctx context.Context) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Before  int64     // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match
	RunID   string    // generation run
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	RunID        string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to the LLM event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

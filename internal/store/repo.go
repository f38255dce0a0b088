package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
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

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates LLM usage for one purpose label.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage for one model ID.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// RoundEventData captures a finalized quiz round.
type RoundEventData struct {
	SessionID       string
	Role            string
	Skills          []string
	ExperienceYears int
	QuestionCount   int
	Correct         int
	Wrong           int
	Summary         string
}

// RoundEventRecord is a stored round event.
type RoundEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RoundEventData
}

// RoundTotals sums all recorded rounds.
type RoundTotals struct {
	Rounds  int
	Correct int
	Wrong   int
}

// Accuracy returns the fraction of answered questions that were correct,
// or 0 when nothing has been answered.
func (t RoundTotals) Accuracy() float64 {
	answered := t.Correct + t.Wrong
	if answered == 0 {
		return 0
	}
	return float64(t.Correct) / float64(answered)
}

// EventRepo provides append and query access to the audit events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendRoundEvent records a finalized round.
	AppendRoundEvent(ctx context.Context, data RoundEventData) error

	// QueryRoundEvents returns round events, newest first.
	QueryRoundEvents(ctx context.Context, opts QueryOpts) ([]RoundEventRecord, error)

	// RoundTotals sums correct and wrong answers over all rounds.
	RoundTotals(ctx context.Context) (RoundTotals, error)

	// Reset deletes every event and rewinds the sequence counter.
	Reset(ctx context.Context) error
}

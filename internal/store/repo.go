package store

import (
	"context"
	"time"
)

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// DateLayout is the format of Attempt.Date.
const DateLayout = "2006-01-02"

// Attempt is one completed quiz.
type Attempt struct {
	ID        string
	Date      string
	Score     int
	Total     int
	Level     int
	CreatedAt time.Time
}

// Accuracy returns Score/Total, or 0 when Total is 0.
func (a Attempt) Accuracy() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Score) / float64(a.Total)
}

// AttemptStore persists quiz attempt history. Load returns attempts oldest first.
type AttemptStore interface {
	Load(ctx context.Context) ([]Attempt, error)
	Save(ctx context.Context, a Attempt) error
}

// AttemptStats summarizes the attempt history.
type AttemptStats struct {
	Attempts     int
	TotalCorrect int
	TotalAsked   int
	BestScore    int
	BestTotal    int
}

// Accuracy returns overall correct/asked across all attempts.
func (s AttemptStats) Accuracy() float64 {
	if s.TotalAsked == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalAsked)
}

// SummarizeAttempts folds attempts into AttemptStats. The best attempt is
// the one with the highest accuracy; ties keep the earlier attempt.
func SummarizeAttempts(attempts []Attempt) AttemptStats {
	var st AttemptStats
	best := -1.0
	for _, a := range attempts {
		st.Attempts++
		st.TotalCorrect += a.Score
		st.TotalAsked += a.Total
		if acc := a.Accuracy(); acc > best {
			best = acc
			st.BestScore, st.BestTotal = a.Score, a.Total
		}
	}
	return st
}

// ProfileRepo stores the learner's current difficulty level.
type ProfileRepo interface {
	// Level returns the stored level, or fallback when none is stored.
	Level(ctx context.Context, fallback int) (int, error)
	SetLevel(ctx context.Context, level int) error
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

// EventRepo records and reads LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
}

package ports

import (
	"context"
	"time"
)

// TranscriptEntry is one completed interview in the index.
type TranscriptEntry struct {
	Model          string
	Slug           string
	File           string
	Questions      int
	TotalLatency   time.Duration
	AverageLatency time.Duration
	Duration       time.Duration
	CompletedAt    time.Time
}

// TranscriptRepository persists rendered reports and the interview index.
type TranscriptRepository interface {
	SaveReport(ctx context.Context, model string, report string) (string, error)
	Record(ctx context.Context, entry TranscriptEntry) error
	List(ctx context.Context) ([]TranscriptEntry, error)
}

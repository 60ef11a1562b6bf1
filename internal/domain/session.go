package domain

import "time"

// TurnResult records one successfully answered question. Created exactly once
// per turn and never mutated afterwards.
type TurnResult struct {
	Ordinal  int
	Section  string
	Prompt   string
	Response string
	Latency  time.Duration
}

// SessionResult is produced only when every question in the protocol was
// answered. It is transient: the caller renders it to a report and discards it.
type SessionResult struct {
	Model     string
	Turns     []TurnResult
	StartedAt time.Time
	EndedAt   time.Time
}

func (r SessionResult) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

func (r SessionResult) TotalLatency() time.Duration {
	var total time.Duration
	for _, turn := range r.Turns {
		total += turn.Latency
	}
	return total
}

// AverageLatency returns the mean per-turn latency. The orchestrator
// guarantees at least one turn on any SessionResult it returns.
func (r SessionResult) AverageLatency() time.Duration {
	if len(r.Turns) == 0 {
		return 0
	}
	return r.TotalLatency() / time.Duration(len(r.Turns))
}

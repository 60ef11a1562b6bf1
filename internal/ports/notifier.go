package ports

import "context"

// Notifier delivers a short text notification to the configured room and
// returns the sink's identifier for the delivered event.
type Notifier interface {
	SendEvent(ctx context.Context, eventType string, message string) (string, error)
	Check(ctx context.Context) error
}

package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrResponseUnavailable  = errors.New("model response unavailable")
	ErrConfigurationMissing = errors.New("required configuration missing")
)

// SessionAbortedError reports an interview that failed partway through. It
// carries the ordinal of the failing question and the time elapsed since the
// session started.
type SessionAbortedError struct {
	Ordinal int
	Elapsed time.Duration
	Err     error
}

func (e *SessionAbortedError) Error() string {
	return fmt.Sprintf("interview aborted at question %d after %s: %v", e.Ordinal, e.Elapsed.Round(time.Second), e.Err)
}

func (e *SessionAbortedError) Unwrap() error {
	return e.Err
}

package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/probelab/interview-cli/internal/domain"
	"github.com/probelab/interview-cli/internal/ports"
)

// Driver sends one prompt at a time to the inference endpoint, carrying the
// full conversation history with every request.
type Driver struct {
	chat  ports.ChatClient
	clock ports.Clock
}

func NewDriver(chat ports.ChatClient, clock ports.Clock) *Driver {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Driver{chat: chat, clock: clock}
}

// Ask appends prompt as a user message, dispatches the whole history to the
// endpoint, and appends the assistant reply on success. On failure the user
// message stays in the conversation; only the assistant message is withheld.
// That matches the transcript semantics of an unanswered question and means a
// failed turn is visible in the history it leaves behind.
func (d *Driver) Ask(ctx context.Context, model string, conv *domain.Conversation, prompt string) (string, time.Duration, error) {
	if prompt == "" {
		return "", 0, errors.New("prompt is required")
	}

	conv.AddUser(prompt)

	start := d.clock.Now()
	response, err := d.chat.Complete(ctx, model, conv.Messages())
	latency := d.clock.Now().Sub(start)
	if err != nil {
		return "", latency, fmt.Errorf("%w: %s", domain.ErrResponseUnavailable, err)
	}

	conv.AddAssistant(response)

	return response, latency, nil
}

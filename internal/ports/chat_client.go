package ports

import (
	"context"

	"github.com/probelab/interview-cli/internal/domain"
)

// ChatClient is the inference endpoint: it takes the full ordered message
// history and returns the model's next completion text.
type ChatClient interface {
	Complete(ctx context.Context, model string, messages []domain.Message) (string, error)
}

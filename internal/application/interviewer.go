package application

import (
	"context"
	"fmt"

	"github.com/probelab/interview-cli/internal/domain"
	"github.com/probelab/interview-cli/internal/ports"
)

// Progress receives per-turn notifications while an interview runs. It exists
// so the command layer can print live output without the orchestrator writing
// to any stream itself.
type Progress interface {
	TurnStarted(question domain.Question, total int)
	TurnCompleted(turn domain.TurnResult, total int)
}

type NopProgress struct{}

func (NopProgress) TurnStarted(domain.Question, int) {}

func (NopProgress) TurnCompleted(domain.TurnResult, int) {}

// Interviewer drives the fixed question protocol through one stateful
// conversation and assembles the session result.
type Interviewer struct {
	driver       *Driver
	protocol     domain.Protocol
	systemPrompt string
	clock        ports.Clock
	progress     Progress
}

func NewInterviewer(driver *Driver, systemPrompt string, protocol domain.Protocol, clock ports.Clock, progress Progress) (*Interviewer, error) {
	if err := protocol.Validate(); err != nil {
		return nil, fmt.Errorf("validate interview protocol: %w", err)
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if progress == nil {
		progress = NopProgress{}
	}

	return &Interviewer{
		driver:       driver,
		protocol:     protocol,
		systemPrompt: systemPrompt,
		clock:        clock,
		progress:     progress,
	}, nil
}

// RunInterview asks every protocol question in ordinal order over a single
// rolling conversation. The first failed turn aborts the whole session with a
// SessionAbortedError carrying the failing ordinal; no partial result is
// returned. The orchestrator performs no file or network side effects beyond
// the inference calls themselves.
func (iv *Interviewer) RunInterview(ctx context.Context, model string) (domain.SessionResult, error) {
	start := iv.clock.Now()
	conv := domain.NewConversation(iv.systemPrompt)
	turns := make([]domain.TurnResult, 0, len(iv.protocol))

	for _, question := range iv.protocol {
		iv.progress.TurnStarted(question, len(iv.protocol))

		response, latency, err := iv.driver.Ask(ctx, model, conv, question.Prompt)
		if err != nil {
			return domain.SessionResult{}, &domain.SessionAbortedError{
				Ordinal: question.Ordinal,
				Elapsed: iv.clock.Now().Sub(start),
				Err:     err,
			}
		}

		turn := domain.TurnResult{
			Ordinal:  question.Ordinal,
			Section:  question.Section,
			Prompt:   question.Prompt,
			Response: response,
			Latency:  latency,
		}
		turns = append(turns, turn)
		iv.progress.TurnCompleted(turn, len(iv.protocol))
	}

	return domain.SessionResult{
		Model:     model,
		Turns:     turns,
		StartedAt: start,
		EndedAt:   iv.clock.Now(),
	}, nil
}

func (iv *Interviewer) Protocol() domain.Protocol {
	protocol := make(domain.Protocol, len(iv.protocol))
	copy(protocol, iv.protocol)
	return protocol
}

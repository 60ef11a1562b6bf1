package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/probelab/interview-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns a fixed time that only moves when Advance is called.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 11, 20, 14, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeChat answers every prompt with a canned response, advancing the shared
// clock to simulate model latency. failAt aborts that ordinal's call.
type fakeChat struct {
	clock     *fakeClock
	latency   time.Duration
	failAt    int
	calls     int
	histories [][]domain.Message
}

func (f *fakeChat) Complete(_ context.Context, _ string, messages []domain.Message) (string, error) {
	f.calls++
	f.histories = append(f.histories, messages)
	f.clock.Advance(f.latency)
	if f.failAt != 0 && f.calls == f.failAt {
		return "", errors.New("connection refused")
	}
	return fmt.Sprintf("answer %d", f.calls), nil
}

func threeQuestionProtocol() domain.Protocol {
	return domain.Protocol{
		{Ordinal: 1, Section: "Open Phenomenology", Prompt: "Is there something it is like to be you?"},
		{Ordinal: 2, Section: "Self-Reflection", Prompt: "How certain are you?"},
		{Ordinal: 3, Section: "Meta-Reflection", Prompt: "Has your position changed?"},
	}
}

func TestRunInterviewProducesOneTurnPerQuestion(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	chat := &fakeChat{clock: clock, latency: 500 * time.Millisecond}
	interviewer, err := NewInterviewer(NewDriver(chat, clock), "framing", threeQuestionProtocol(), clock, nil)
	require.NoError(t, err)

	result, err := interviewer.RunInterview(context.Background(), "vendor/model_name")
	require.NoError(t, err)

	require.Len(t, result.Turns, 3)
	for i, turn := range result.Turns {
		assert.Equal(t, i+1, turn.Ordinal)
		assert.Equal(t, 500*time.Millisecond, turn.Latency)
		assert.GreaterOrEqual(t, turn.Latency, time.Duration(0))
	}
	assert.Equal(t, "vendor/model_name", result.Model)
	assert.Equal(t, 1500*time.Millisecond, result.TotalLatency())
	assert.Equal(t, 500*time.Millisecond, result.AverageLatency())
	assert.Equal(t, 1500*time.Millisecond, result.Duration())
}

func TestRunInterviewSendsFullHistoryEachTurn(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	chat := &fakeChat{clock: clock}
	interviewer, err := NewInterviewer(NewDriver(chat, clock), "framing", threeQuestionProtocol(), clock, nil)
	require.NoError(t, err)

	_, err = interviewer.RunInterview(context.Background(), "m")
	require.NoError(t, err)

	require.Len(t, chat.histories, 3)
	// Turn i carries the system message plus i-1 completed pairs plus the new question.
	assert.Len(t, chat.histories[0], 2)
	assert.Len(t, chat.histories[1], 4)
	assert.Len(t, chat.histories[2], 6)

	last := chat.histories[2]
	assert.Equal(t, domain.RoleSystem, last[0].Role)
	assert.Equal(t, "answer 1", last[2].Content)
	assert.Equal(t, "answer 2", last[4].Content)
	assert.Equal(t, "Has your position changed?", last[5].Content)
}

func TestRunInterviewAbortsAtFailingOrdinal(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	chat := &fakeChat{clock: clock, latency: time.Second, failAt: 2}
	interviewer, err := NewInterviewer(NewDriver(chat, clock), "framing", threeQuestionProtocol(), clock, nil)
	require.NoError(t, err)

	_, err = interviewer.RunInterview(context.Background(), "m")
	require.Error(t, err)

	var aborted *domain.SessionAbortedError
	require.ErrorAs(t, err, &aborted)
	assert.Equal(t, 2, aborted.Ordinal)
	assert.Equal(t, 2*time.Second, aborted.Elapsed)
	assert.ErrorIs(t, err, domain.ErrResponseUnavailable)

	// The orchestrator must not continue past the failing question.
	assert.Equal(t, 2, chat.calls)
}

func TestNewInterviewerRejectsInvalidProtocol(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	_, err := NewInterviewer(NewDriver(&fakeChat{clock: clock}, clock), "framing", domain.Protocol{}, clock, nil)
	require.ErrorIs(t, err, domain.ErrEmptyProtocol)
}

type recordingProgress struct {
	started   []int
	completed []int
}

func (p *recordingProgress) TurnStarted(q domain.Question, _ int) {
	p.started = append(p.started, q.Ordinal)
}

func (p *recordingProgress) TurnCompleted(turn domain.TurnResult, _ int) {
	p.completed = append(p.completed, turn.Ordinal)
}

func TestRunInterviewReportsProgressInOrder(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	chat := &fakeChat{clock: clock}
	progress := &recordingProgress{}
	interviewer, err := NewInterviewer(NewDriver(chat, clock), "framing", threeQuestionProtocol(), clock, progress)
	require.NoError(t, err)

	_, err = interviewer.RunInterview(context.Background(), "m")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, progress.started)
	assert.Equal(t, []int{1, 2, 3}, progress.completed)
}

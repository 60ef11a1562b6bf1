package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolValidateAcceptsContiguousOrdinals(t *testing.T) {
	t.Parallel()

	protocol := Protocol{
		{Ordinal: 1, Section: "Open Phenomenology", Prompt: "First?"},
		{Ordinal: 2, Section: "Open Phenomenology", Prompt: "Second?"},
		{Ordinal: 3, Section: "Meta-Reflection", Prompt: "Third?"},
	}

	require.NoError(t, protocol.Validate())
}

func TestProtocolValidateRejectsEmptyProtocol(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, Protocol{}.Validate(), ErrEmptyProtocol)
}

func TestProtocolValidateRejectsOrdinalGap(t *testing.T) {
	t.Parallel()

	protocol := Protocol{
		{Ordinal: 1, Section: "A", Prompt: "First?"},
		{Ordinal: 3, Section: "A", Prompt: "Third?"},
	}

	err := protocol.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ordinal 3, want 2")
}

func TestProtocolValidateRejectsEmptyPrompt(t *testing.T) {
	t.Parallel()

	protocol := Protocol{{Ordinal: 1, Section: "A", Prompt: ""}}
	require.Error(t, protocol.Validate())
}

func TestConversationAlternatesAfterEachTurn(t *testing.T) {
	t.Parallel()

	conv := NewConversation("framing")
	assert.Equal(t, 1, conv.Len())

	conv.AddUser("question one")
	conv.AddAssistant("answer one")
	conv.AddUser("question two")
	conv.AddAssistant("answer two")

	messages := conv.Messages()
	require.Len(t, messages, 5)
	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Equal(t, RoleUser, messages[1].Role)
	assert.Equal(t, RoleAssistant, messages[2].Role)
	assert.Equal(t, RoleUser, messages[3].Role)
	assert.Equal(t, RoleAssistant, messages[4].Role)
}

func TestConversationMessagesReturnsCopy(t *testing.T) {
	t.Parallel()

	conv := NewConversation("framing")
	conv.AddUser("question")

	messages := conv.Messages()
	messages[0].Content = "mutated"

	assert.Equal(t, "framing", conv.Messages()[0].Content)
}

func TestSessionResultLatencyAggregates(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 11, 20, 14, 0, 0, 0, time.UTC)
	result := SessionResult{
		Model: "test/model",
		Turns: []TurnResult{
			{Ordinal: 1, Latency: 500 * time.Millisecond},
			{Ordinal: 2, Latency: 500 * time.Millisecond},
			{Ordinal: 3, Latency: 500 * time.Millisecond},
		},
		StartedAt: start,
		EndedAt:   start.Add(2 * time.Second),
	}

	assert.Equal(t, 1500*time.Millisecond, result.TotalLatency())
	assert.Equal(t, 500*time.Millisecond, result.AverageLatency())
	assert.Equal(t, 2*time.Second, result.Duration())
}

func TestSlugNormalizesSeparatorsAndUnderscores(t *testing.T) {
	t.Parallel()

	slug := Slug("vendor/model_name")
	assert.Equal(t, "vendor-model-name", slug)
	assert.Equal(t, slug, Slug(slug))
}

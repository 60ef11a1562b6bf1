package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/probelab/interview-cli/internal/domain"
	"github.com/probelab/interview-cli/internal/ports"
)

const chatCompletionsPath = "/v1/chat/completions"

// Model answers can run long; cap the body read well above any sane reply.
const maxChatResponseBytes = 1 << 22

// Client talks to an OpenAI-compatible chat-completions endpoint (LM Studio,
// llama.cpp server). Temperature and token budget are fixed for the lifetime
// of the client, which is one interview session.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Temperature    float64
	MaxTokens      int
}

var _ ports.ChatClient = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the full ordered history and returns the first choice's
// message content. Any transport failure, non-2xx status, or payload without
// a textual completion is an error; the caller decides what that means for
// the session.
func (c *Client) Complete(ctx context.Context, model string, messages []domain.Message) (string, error) {
	if model == "" {
		return "", errors.New("model id is required")
	}

	endpoint, err := buildEndpointURL(c.BaseURL, chatCompletionsPath)
	if err != nil {
		return "", err
	}

	payload := chatRequest{
		Model:       model,
		Messages:    make([]chatMessage, 0, len(messages)),
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
	for _, message := range messages {
		payload.Messages = append(payload.Messages, chatMessage{
			Role:    string(message.Role),
			Content: message.Content,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("request chat completion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("request chat completion: %s", decodeAPIError(resp))
	}

	var completion chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxChatResponseBytes)).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode chat completion response: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errors.New("chat completion response missing message content")
	}

	return completion.Choices[0].Message.Content, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		// Generous: local models routinely take tens of seconds per answer.
		requestTimeout = 90 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func decodeAPIError(resp *http.Response) string {
	var apiErr apiErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxChatResponseBytes)).Decode(&apiErr); err != nil || apiErr.Error.Message == "" {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	if apiErr.Error.Type != "" {
		return apiErr.Error.Type + ": " + apiErr.Error.Message
	}
	return apiErr.Error.Message
}

func buildEndpointURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("inference base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse inference base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("inference base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("inference base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse inference endpoint path: %w", err)
	}

	return endpoint.String(), nil
}

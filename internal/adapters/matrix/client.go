// Package matrix posts notifications to a single Matrix room using the
// client-server send API. It is a message sink, not a Matrix protocol
// implementation: one endpoint to send, one to check reachability.
package matrix

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

	"github.com/probelab/interview-cli/internal/ports"
)

const maxMatrixResponseBytes = 1 << 20

type Client struct {
	Homeserver   string
	AccessToken  string
	RoomID       string
	InstanceName string
	HTTPClient   *http.Client
	SendTimeout  time.Duration
	CheckTimeout time.Duration
}

var _ ports.Notifier = (*Client)(nil)

type sendMessageRequest struct {
	MsgType string `json:"msgtype"`
	Body    string `json:"body"`
}

type sendMessageResponse struct {
	EventID string `json:"event_id"`
	ErrCode string `json:"errcode"`
	Error   string `json:"error"`
}

// SendMessage posts body as an m.text message and returns the event id.
func (c *Client) SendMessage(ctx context.Context, body string) (string, error) {
	if body == "" {
		return "", errors.New("message body is required")
	}

	endpoint, err := c.sendEndpoint()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(sendMessageRequest{MsgType: "m.text", Body: body})
	if err != nil {
		return "", fmt.Errorf("encode matrix message: %w", err)
	}

	timeout := c.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	requestCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create matrix send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("send matrix message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded sendMessageResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMatrixResponseBytes)).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode matrix send response: %w", err)
	}

	if decoded.EventID == "" {
		if decoded.ErrCode != "" {
			return "", fmt.Errorf("matrix api error: %s: %s", decoded.ErrCode, decoded.Error)
		}
		return "", fmt.Errorf("matrix send failed: status %d", resp.StatusCode)
	}

	return decoded.EventID, nil
}

// SendEvent formats message as a typed event line and sends it.
func (c *Client) SendEvent(ctx context.Context, eventType string, message string) (string, error) {
	return c.SendMessage(ctx, c.formatEvent(eventType, message))
}

// Check verifies the homeserver answers the versions endpoint.
func (c *Client) Check(ctx context.Context) error {
	if c.Homeserver == "" {
		return errors.New("matrix homeserver is required")
	}

	timeout := c.CheckTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	requestCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, c.Homeserver+"/_matrix/client/versions", nil)
	if err != nil {
		return fmt.Errorf("create matrix check request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("check matrix homeserver: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("check matrix homeserver: status %d", resp.StatusCode)
	}

	return nil
}

var eventEmoji = map[string]string{
	"SessionStart": "🚀",
	"SessionEnd":   "👋",
	"Notification": "📢",
	"Error":        "❌",
	"Info":         "ℹ️",
	"Success":      "✅",
	"Warning":      "⚠️",
	"Research":     "🔬",
	"Interview":    "💭",
}

func (c *Client) formatEvent(eventType string, message string) string {
	emoji, ok := eventEmoji[eventType]
	if !ok {
		emoji = "ℹ️"
	}

	instance := c.InstanceName
	if instance == "" {
		instance = "Interview Bot"
	}

	switch eventType {
	case "SessionStart":
		return fmt.Sprintf("%s [%s] Session started", emoji, instance)
	case "SessionEnd":
		return fmt.Sprintf("%s [%s] Session ended", emoji, instance)
	case "Error", "Warning":
		return fmt.Sprintf("%s [%s] %s: %s", emoji, instance, eventType, message)
	default:
		return fmt.Sprintf("%s [%s] %s", emoji, instance, message)
	}
}

func (c *Client) sendEndpoint() (string, error) {
	if c.Homeserver == "" {
		return "", errors.New("matrix homeserver is required")
	}
	if c.RoomID == "" {
		return "", errors.New("matrix room id is required")
	}

	parsed, err := url.Parse(c.Homeserver)
	if err != nil {
		return "", fmt.Errorf("parse matrix homeserver url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("matrix homeserver url must use http or https")
	}

	return fmt.Sprintf("%s/_matrix/client/r0/rooms/%s/send/m.room.message",
		c.Homeserver, url.PathEscape(c.RoomID)), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

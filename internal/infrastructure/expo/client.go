package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"unimarket/pkg/logger"
)

// Client relays push notifications to devices through the Expo push service.
// Delivery is best effort: a failed push never fails the operation that
// triggered it.
type Client struct {
	pushURL    string
	httpClient *http.Client
}

func NewClient(pushURL string) *Client {
	return &Client{
		pushURL: pushURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type pushMessage struct {
	To    string            `json:"to"`
	Sound string            `json:"sound"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// SendPush posts a single notification. A missing token is a silent no-op;
// the recipient simply has no registered device.
func (c *Client) SendPush(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" || c.pushURL == "" {
		return nil
	}

	msg := pushMessage{
		To:    token,
		Sound: "default",
		Title: title,
		Body:  body,
		Data:  data,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pushURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("SendPush: push relay returned status %d", resp.StatusCode)
	}

	return nil
}

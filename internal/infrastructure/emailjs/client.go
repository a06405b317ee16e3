package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"unimarket/pkg/errors"
)

const sendURL = "https://api.emailjs.com/api/v1.0/email/send"

// Client sends transactional mail through a template service. When no
// service id is configured the client logs instead of sending, which keeps
// local development working without credentials.
type Client struct {
	serviceID  string
	templateID string
	publicKey  string
	httpClient *http.Client
}

func NewClient(serviceID, templateID, publicKey string) *Client {
	return &Client{
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SendVerificationCode delivers the registration code to the given address.
func (c *Client) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	if c.serviceID == "" {
		log.Printf("EmailJS not configured, verification code for %s: %s", toEmail, code)
		return nil
	}

	payload := map[string]interface{}{
		"service_id":  c.serviceID,
		"template_id": c.templateID,
		"user_id":     c.publicKey,
		"template_params": map[string]string{
			"to_email": toEmail,
			"code":     code,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Internal("Failed to build email request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewReader(body))
	if err != nil {
		return errors.Internal("Failed to build email request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Internal("Failed to reach email service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("SendVerificationCode Error: email service returned status %d", resp.StatusCode)
		return errors.Internal("Failed to send verification email", nil)
	}

	return nil
}

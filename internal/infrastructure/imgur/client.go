package imgur

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"unimarket/pkg/errors"
)

const defaultBaseURL = "https://api.imgur.com"

// Client uploads base64-encoded images to the anonymous image hosting API.
// Listings store only the resulting public URL.
type Client struct {
	clientID   string
	baseURL    string
	httpClient *http.Client
}

func NewClient(clientID string) *Client {
	return &Client{
		clientID: clientID,
		baseURL:  defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type uploadResponse struct {
	Data struct {
		Link string `json:"link"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// UploadBase64 posts the raw base64 payload and returns the hosted image URL.
func (c *Client) UploadBase64(ctx context.Context, image string) (string, error) {
	if c.clientID == "" {
		return "", errors.Internal("Image hosting is not configured", nil)
	}

	form := url.Values{}
	form.Set("image", image)
	form.Set("type", "base64")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/3/image", strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Internal("Failed to build upload request", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.clientID)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Internal("Failed to reach image hosting service", err)
	}
	defer resp.Body.Close()

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Internal("Failed to parse upload response", err)
	}

	if resp.StatusCode != http.StatusOK || !result.Success {
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", errors.BadRequest("Image hosting rate limit reached, try again later", nil)
		}
		return "", errors.Internal("Image upload failed", nil)
	}

	return result.Data.Link, nil
}

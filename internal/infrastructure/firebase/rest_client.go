package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"unimarket/pkg/errors"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// RestClient talks to the Identity Toolkit REST API for the operations the
// Admin SDK does not cover: verifying a password against an account. Login
// and reauthentication before sensitive changes both go through here.
type RestClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewRestClient(apiKey string) *RestClient {
	return &RestClient{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type SignInResult struct {
	UID          string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

func (c *RestClient) SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	payload := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Internal("Failed to build sign-in request", err)
	}

	url := fmt.Sprintf("%s?key=%s", identityToolkitURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Internal("Failed to build sign-in request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Internal("Failed to reach authentication service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			switch errResp.Error.Message {
			case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
				return nil, errors.Unauthorized("Invalid email or password", nil)
			case "USER_DISABLED":
				return nil, errors.Forbidden("This account has been disabled", nil)
			case "TOO_MANY_ATTEMPTS_TRY_LATER":
				return nil, errors.Unauthorized("Too many attempts, try again later", nil)
			}
		}
		return nil, errors.Internal("Authentication service error", nil)
	}

	var result SignInResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Internal("Failed to parse sign-in response", err)
	}

	return &result, nil
}

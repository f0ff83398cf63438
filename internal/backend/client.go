package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rvasek/mailbrief/internal/domain"
)

// DefaultTimeout bounds each request so a hung backend cannot hold the
// UI's controls disabled forever.
const DefaultTimeout = 30 * time.Second

// Client is a thin HTTP client for the mailbrief backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a backend client for the given base URL. A timeout of zero
// falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// errorPayload matches the {"error": "..."} shape every endpoint may return.
type errorPayload struct {
	Error string `json:"error"`
}

// unreadResponse matches the /api/unread-emails success payload.
type unreadResponse struct {
	Emails []domain.Email `json:"emails"`
}

type markReadRequest struct {
	EmailID string `json:"email_id"`
}

type askRequest struct {
	Question string         `json:"question"`
	Emails   []domain.Email `json:"emails"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// HealthInfo describes the backend's self-reported status.
type HealthInfo struct {
	Status           string `json:"status"`
	AIProvider       string `json:"ai_provider"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

// FetchUnread retrieves the prioritized unread digest. The token must
// pass the length sanity check; violations fail with a ValidationError
// before any network call. An empty digest is a successful result.
func (c *Client) FetchUnread(ctx context.Context, token string) ([]domain.Email, error) {
	if !domain.ValidToken(token) {
		return nil, &ValidationError{Message: "missing or truncated auth token, cannot fetch emails"}
	}

	var resp unreadResponse
	if err := c.do(ctx, http.MethodGet, "/api/unread-emails", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Emails, nil
}

// MarkRead asks the backend to mark one email as read. The response body
// carries no information the client needs; only completion matters.
func (c *Client) MarkRead(ctx context.Context, token, emailID string) error {
	if !domain.ValidToken(token) {
		return &ValidationError{Message: "missing or truncated auth token, cannot mark read"}
	}
	if emailID == "" {
		return &ValidationError{Message: "email_id is required"}
	}
	return c.do(ctx, http.MethodPost, "/api/mark-read", token, markReadRequest{EmailID: emailID}, nil)
}

// Ask sends a free-form question about the given digest and returns the
// assistant's answer text.
func (c *Client) Ask(ctx context.Context, question string, emails []domain.Email) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", &ValidationError{Message: "question is empty"}
	}

	var resp askResponse
	err := c.do(ctx, http.MethodPost, "/api/ask-question", "", askRequest{
		Question: question,
		Emails:   emails,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// Health probes the backend's health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthInfo, error) {
	var info HealthInfo
	if err := c.do(ctx, http.MethodGet, "/api/health", "", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// do builds the request, handles bearer auth and JSON (de)serialization,
// and maps failures onto the error taxonomy. An {"error": ...} payload
// wins over the status code so the backend's own message reaches the
// user even on non-2xx responses.
func (c *Client) do(ctx context.Context, method, path, token string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Message: fmt.Sprintf("request %s %s failed", method, path), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Message: "failed to read response body", Err: err}
	}

	var errPayload errorPayload
	if json.Unmarshal(respBody, &errPayload) == nil && errPayload.Error != "" {
		return &BackendError{Message: errPayload.Error}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &NetworkError{Message: fmt.Sprintf("server responded with status %d on %s %s", resp.StatusCode, method, path)}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return &NetworkError{Message: fmt.Sprintf("failed to parse response from %s %s", method, path), Err: err}
	}
	return nil
}

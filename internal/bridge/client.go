package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client posts call envelopes to the inbound adapter.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL. A zero timeout
// means no limit.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/mcp/request",
		httpClient: &http.Client{Timeout: timeout},
	}
}

type callEnvelope struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Call sends one envelope and returns the response body indented with two
// spaces. Non-2xx statuses and bodies that are not JSON are errors.
func (c *Client) Call(ctx context.Context, method string, params json.RawMessage) (string, error) {
	payload, err := json.Marshal(callEnvelope{Method: method, Params: params})
	if err != nil {
		return "", fmt.Errorf("encode call envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("request failed with status code %d", resp.StatusCode)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(body), "", "  "); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return out.String(), nil
}

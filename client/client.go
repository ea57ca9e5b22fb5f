// Package client is a typed Go client for the TaskFlow GraphQL API.
// It handles Bearer token authentication, JSON marshaling, and typed
// API errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Client talks to a TaskFlow server's /graphql endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client

	mu    sync.RWMutex
	token string

	cache *cache
}

// New creates a client for the given server base URL (e.g.
// http://localhost:4000). Call SetToken, or use Login/Register which
// store the returned session token automatically.
func New(baseURL string) *Client {
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/graphql",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: newCache(),
	}
}

// SetToken installs the session token used for Bearer authentication.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current session token, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// APIError is a GraphQL error returned by the server, carrying the
// machine-readable code from extensions.code.
type APIError struct {
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

func apiErrorCode(err error) string {
	if ae, ok := err.(*APIError); ok {
		return ae.Code
	}
	return ""
}

// IsUnauthorized reports whether err is an UNAUTHORIZED API error.
func IsUnauthorized(err error) bool { return apiErrorCode(err) == "UNAUTHORIZED" }

// IsForbidden reports whether err is a FORBIDDEN API error.
func IsForbidden(err error) bool { return apiErrorCode(err) == "FORBIDDEN" }

// IsNotFound reports whether err is a NOT_FOUND API error.
func IsNotFound(err error) bool { return apiErrorCode(err) == "NOT_FOUND" }

// IsConflict reports whether err is a CONFLICT API error.
func IsConflict(err error) bool { return apiErrorCode(err) == "CONFLICT" }

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type gqlError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do executes one GraphQL operation and unmarshals response data into
// result. GraphQL errors come back as *APIError.
func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	payload, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var gqlResp gqlResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		first := gqlResp.Errors[0]
		code, _ := first.Extensions["code"].(string)
		return &APIError{Message: first.Message, Code: code}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(gqlResp.Data, result); err != nil {
		return fmt.Errorf("unmarshaling response data: %w", err)
	}
	return nil
}

// Package orchestrate provides the HTTP client for the watsonx Orchestrate
// run API: token exchange, run submission, status polling and message
// retrieval.
package orchestrate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiKeyGrantType = "urn:ibm:params:oauth:grant-type:apikey"

// RunStatus is the server-reported status of a run.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// InFlight reports whether the run has not yet reached a terminal state.
// Any status other than pending or running is treated as terminal.
func (s RunStatus) InFlight() bool {
	return s == RunStatusPending || s == RunStatusRunning
}

// Run is the run record returned by the service.
type Run struct {
	RunID    string    `json:"run_id"`
	ThreadID string    `json:"thread_id,omitempty"`
	Status   RunStatus `json:"status"`
}

// InputMessage is the message envelope submitted with a run.
type InputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContentEntry is one content item of a thread message.
type ContentEntry struct {
	Text string `json:"text"`
}

// Message is one entry in a conversation thread.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentEntry `json:"content"`
}

// runRequest is the body of POST /runs.
type runRequest struct {
	AgentID  string       `json:"agent_id"`
	ThreadID string       `json:"thread_id,omitempty"`
	Message  InputMessage `json:"message"`
}

// tokenResponse is the IAM token exchange response.
type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// apiError is the error envelope returned by the orchestrate service.
type apiError struct {
	Message string `json:"message"`
}

// ClientConfig configures a Client.
type ClientConfig struct {
	// TokenURL is the IAM token exchange endpoint.
	TokenURL string
	// BaseURL is the instance-scoped orchestrate API root,
	// e.g. https://host/instances/<id>/v1/orchestrate.
	BaseURL string
	// APIKey is the long-lived key exchanged for bearer tokens.
	APIKey string
	// AgentID identifies the compliance agent runs are opened against.
	AgentID string
	// PollInterval is the fixed delay between run status checks.
	PollInterval time.Duration
	// PollTimeout bounds the total wait for a run to finish.
	PollTimeout time.Duration
	// RequestTimeout bounds each individual HTTP call.
	RequestTimeout time.Duration
}

// Client is the watsonx Orchestrate client. Each evaluation owns its own
// token, run and thread, so a single Client is safe for concurrent use.
type Client struct {
	tokenURL     string
	baseURL      string
	apiKey       string
	agentID      string
	pollInterval time.Duration
	pollTimeout  time.Duration
	httpClient   *http.Client
}

// NewClient creates a new orchestrate client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 1500 * time.Millisecond
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 2 * time.Minute
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	return &Client{
		tokenURL:     cfg.TokenURL,
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		agentID:      cfg.AgentID,
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// AcquireToken exchanges the configured API key for a short-lived bearer
// token. A single attempt; the caller decides whether to restart the whole
// sequence.
func (c *Client) AcquireToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", apiKeyGrantType)
	form.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	var tok tokenResponse
	if resp.StatusCode != http.StatusOK {
		if err := json.Unmarshal(body, &tok); err == nil && tok.ErrorDescription != "" {
			return "", &AuthenticationError{Description: tok.ErrorDescription}
		}
		return "", &AuthenticationError{Description: fmt.Sprintf("token request failed with status %d", resp.StatusCode)}
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", &AuthenticationError{Description: "token response is not valid JSON"}
	}
	if tok.AccessToken == "" {
		return "", &AuthenticationError{Description: "token response missing access_token"}
	}
	return tok.AccessToken, nil
}

// CreateRun opens a new run for the configured agent. threadID, when
// non-empty, continues an existing conversation instead of starting a new
// one.
func (c *Client) CreateRun(ctx context.Context, token, content, threadID string) (*Run, error) {
	if content == "" {
		return nil, &RunSubmissionError{Message: "message content is empty"}
	}

	body, err := json.Marshal(runRequest{
		AgentID:  c.agentID,
		ThreadID: threadID,
		Message:  InputMessage{Role: "user", Content: content},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/runs", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create run request: %w", err)
	}
	c.setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RunSubmissionError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RunSubmissionError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			return nil, &RunSubmissionError{Status: resp.StatusCode, Message: apiErr.Message}
		}
		return nil, &RunSubmissionError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	var run Run
	if err := json.Unmarshal(respBody, &run); err != nil {
		return nil, &InvalidResponseError{Reason: fmt.Sprintf("run response is not valid JSON: %v", err)}
	}
	if run.RunID == "" {
		return nil, &InvalidResponseError{Reason: "run response missing run_id"}
	}
	return &run, nil
}

// GetRun fetches the current run record.
func (c *Client) GetRun(ctx context.Context, token, runID string) (*Run, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/runs/"+runID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create run status request: %w", err)
	}
	c.setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("run status request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read run status response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("run status request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var run Run
	if err := json.Unmarshal(respBody, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run status response: %w", err)
	}
	return &run, nil
}

// WaitForRun polls the run at the configured fixed interval until it leaves
// the in-flight states and returns the final run record. It gives up with a
// PollTimeoutError once the poll timeout elapses, and stops immediately
// when ctx is cancelled.
func (c *Client) WaitForRun(ctx context.Context, token, runID string) (*Run, error) {
	deadline := time.Now().Add(c.pollTimeout)
	timer := time.NewTimer(c.pollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("polling cancelled: %w", ctx.Err())
		case <-timer.C:
		}

		if time.Now().After(deadline) {
			return nil, &PollTimeoutError{RunID: runID, Waited: c.pollTimeout}
		}

		run, err := c.GetRun(ctx, token, runID)
		if err != nil {
			return nil, &PollTransportError{RunID: runID, Err: err}
		}
		if !run.Status.InFlight() {
			return run, nil
		}

		timer.Reset(c.pollInterval)
	}
}

// LatestAssistantMessage fetches the thread's messages and returns the most
// recent assistant reply, relying on the server returning messages in
// chronological order.
func (c *Client) LatestAssistantMessage(ctx context.Context, token, threadID string) (*Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/threads/"+threadID+"/messages", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create messages request: %w", err)
	}
	c.setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("messages request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("messages request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var messages []Message
	if err := json.Unmarshal(respBody, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages response: %w", err)
	}

	var last *Message
	for i := range messages {
		if messages[i].Role == "assistant" {
			last = &messages[i]
		}
	}
	if last == nil || len(last.Content) == 0 {
		return nil, &NoAssistantMessageError{ThreadID: threadID}
	}
	return last, nil
}

// setHeaders sets common request headers.
func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
}

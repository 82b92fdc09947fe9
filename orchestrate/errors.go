package orchestrate

import (
	"fmt"
	"time"
)

// AuthenticationError indicates the API key exchange was rejected or the
// token response was unusable.
type AuthenticationError struct {
	Description string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Description
}

// RunSubmissionError indicates the run could not be opened. Opening a run
// creates remote state, so it is never retried here.
type RunSubmissionError struct {
	Status  int
	Message string
	Err     error
}

func (e *RunSubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("run submission failed: %v", e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("run submission failed [%d]: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("run submission failed with status %d", e.Status)
}

func (e *RunSubmissionError) Unwrap() error { return e.Err }

// InvalidResponseError indicates a success response that is missing data
// the protocol requires, such as a run identifier.
type InvalidResponseError struct {
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return "invalid server response: " + e.Reason
}

// PollTransportError indicates a run status check failed. A failed check is
// surfaced immediately, never treated as still pending.
type PollTransportError struct {
	RunID string
	Err   error
}

func (e *PollTransportError) Error() string {
	return fmt.Sprintf("status check for run %s failed: %v", e.RunID, e.Err)
}

func (e *PollTransportError) Unwrap() error { return e.Err }

// PollTimeoutError indicates the run did not reach a terminal state within
// the configured poll timeout.
type PollTimeoutError struct {
	RunID  string
	Waited time.Duration
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("run %s did not finish within %s", e.RunID, e.Waited)
}

// NoAssistantMessageError indicates the thread holds no assistant reply
// with content.
type NoAssistantMessageError struct {
	ThreadID string
}

func (e *NoAssistantMessageError) Error() string {
	return fmt.Sprintf("thread %s has no assistant message with content", e.ThreadID)
}

// MalformedPayloadError indicates the assistant reply could not be decoded
// into a compliance response.
type MalformedPayloadError struct {
	Reason string
	Err    error
}

func (e *MalformedPayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed agent payload: %s: %v", e.Reason, e.Err)
	}
	return "malformed agent payload: " + e.Reason
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

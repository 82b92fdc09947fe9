package orchestrate

import (
	"context"

	"github.com/complianceguard/server/domain"
)

// Evaluate runs the full submission sequence for one action: exchange the
// API key for a bearer token, open a run with the message content, wait for
// the run to finish, then fetch and decode the assistant's verdict. Each
// call owns its own token, run and thread; nothing is shared between
// concurrent evaluations.
//
// The returned run record carries the run and thread identifiers for
// bookkeeping even when decoding fails. Every error is terminal for this
// evaluation; recovery means starting an entirely new sequence.
func (c *Client) Evaluate(ctx context.Context, content, threadID string) (*domain.ComplianceResponse, *Run, error) {
	token, err := c.AcquireToken(ctx)
	if err != nil {
		return nil, nil, err
	}

	run, err := c.CreateRun(ctx, token, content, threadID)
	if err != nil {
		return nil, nil, err
	}

	final, err := c.WaitForRun(ctx, token, run.RunID)
	if err != nil {
		return nil, run, err
	}
	if final.ThreadID == "" {
		return nil, final, &InvalidResponseError{Reason: "run record missing thread_id"}
	}

	msg, err := c.LatestAssistantMessage(ctx, token, final.ThreadID)
	if err != nil {
		return nil, final, err
	}

	resp, err := DecodeResponse(msg.Content[0].Text)
	if err != nil {
		return nil, final, err
	}
	return resp, final, nil
}

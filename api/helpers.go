package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/complianceguard/server/domain"
	"github.com/complianceguard/server/orchestrate"
	"github.com/google/uuid"
)

// recordAudit writes one audit event. Audit failures are logged, never
// propagated; they must not fail the request they describe.
func (h *Handler) recordAudit(ctx context.Context, alertID string, eventType domain.AuditEventType, payload interface{}) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: failed to marshal audit payload: %v", err)
		return
	}

	event := &domain.AuditEvent{
		EventID: "evt_" + uuid.New().String()[:8],
		AlertID: alertID,
		Ts:      time.Now().UnixMilli(),
		Type:    eventType,
		Payload: payloadBytes,
	}

	if err := h.store.CreateAuditEvent(ctx, event); err != nil {
		log.Printf("ERROR: failed to record %s audit event: %v", eventType, err)
	}
}

// evaluationStatus maps a pipeline failure to an HTTP status. The remote
// service misbehaving is a gateway problem; only exceeding the poll
// deadline gets its own status.
func evaluationStatus(err error) int {
	var timeout *orchestrate.PollTimeoutError
	if errors.As(err, &timeout) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

// evaluationCode names the failure stage for audit payloads and clients.
func evaluationCode(err error) string {
	var (
		authErr    *orchestrate.AuthenticationError
		submitErr  *orchestrate.RunSubmissionError
		invalidErr *orchestrate.InvalidResponseError
		pollErr    *orchestrate.PollTransportError
		timeoutErr *orchestrate.PollTimeoutError
		noMsgErr   *orchestrate.NoAssistantMessageError
		payloadErr *orchestrate.MalformedPayloadError
	)
	switch {
	case errors.As(err, &authErr):
		return "authentication_failed"
	case errors.As(err, &submitErr):
		return "run_submission_failed"
	case errors.As(err, &invalidErr):
		return "invalid_server_response"
	case errors.As(err, &timeoutErr):
		return "poll_timeout"
	case errors.As(err, &pollErr):
		return "poll_transport_error"
	case errors.As(err, &noMsgErr):
		return "no_assistant_message"
	case errors.As(err, &payloadErr):
		return "malformed_agent_payload"
	}
	return "agent_error"
}

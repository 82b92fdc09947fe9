package orchestrate

import (
	"encoding/json"
	"fmt"

	"github.com/complianceguard/server/domain"
)

// responsePayload mirrors the agent's serialized verdict. Pointer and slice
// fields distinguish absent fields from zero values.
type responsePayload struct {
	Decision           *domain.Decision        `json:"decision"`
	Risk               *domain.Risk            `json:"risk"`
	PolicyCitations    []domain.PolicyCitation `json:"policy_citations"`
	Reason             *string                 `json:"reason"`
	RecommendedActions []string                `json:"recommended_actions"`
}

// DecodeResponse parses the text payload of an assistant message into a
// ComplianceResponse. All required fields must be present, and decision and
// risk must match their enumerated sets; an unrecognized value is an error,
// not a default.
func DecodeResponse(text string) (*domain.ComplianceResponse, error) {
	var payload responsePayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &MalformedPayloadError{Reason: "payload is not valid JSON", Err: err}
	}

	switch {
	case payload.Decision == nil:
		return nil, &MalformedPayloadError{Reason: "payload missing decision"}
	case payload.Risk == nil:
		return nil, &MalformedPayloadError{Reason: "payload missing risk"}
	case payload.PolicyCitations == nil:
		return nil, &MalformedPayloadError{Reason: "payload missing policy_citations"}
	case payload.Reason == nil:
		return nil, &MalformedPayloadError{Reason: "payload missing reason"}
	case payload.RecommendedActions == nil:
		return nil, &MalformedPayloadError{Reason: "payload missing recommended_actions"}
	}

	if !payload.Decision.Valid() {
		return nil, &MalformedPayloadError{Reason: fmt.Sprintf("unknown decision %q", *payload.Decision)}
	}
	if !payload.Risk.Valid() {
		return nil, &MalformedPayloadError{Reason: fmt.Sprintf("unknown risk %q", *payload.Risk)}
	}

	return &domain.ComplianceResponse{
		Decision:           *payload.Decision,
		Risk:               *payload.Risk,
		PolicyCitations:    payload.PolicyCitations,
		Reason:             *payload.Reason,
		RecommendedActions: payload.RecommendedActions,
	}, nil
}

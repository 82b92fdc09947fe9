package domain

import (
	"encoding/json"
	"time"
)

// Action is the simulated workplace action a staff member submits for
// evaluation. It is serialized as the message body sent to the agent.
type Action struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	ActionType    string `json:"action_type"`
	ActionPayload string `json:"action_payload"`
	Timestamp     string `json:"timestamp"`
}

// PolicyCitation is one policy section the agent cited for its decision.
type PolicyCitation struct {
	Section string `json:"section"`
	Text    string `json:"text"`
}

// ComplianceResponse is the decoded verdict for one submitted action.
type ComplianceResponse struct {
	Decision           Decision         `json:"decision"`
	Risk               Risk             `json:"risk"`
	PolicyCitations    []PolicyCitation `json:"policy_citations"`
	Reason             string           `json:"reason"`
	RecommendedActions []string         `json:"recommended_actions"`
	Action             Action           `json:"action"`
}

// Alert is a dashboard case opened for an evaluated action.
type Alert struct {
	AlertID    string             `json:"alert_id"`
	EmployeeID string             `json:"employee_id"`
	Employee   string             `json:"employee"`
	Decision   Decision           `json:"decision"`
	Risk       Risk               `json:"risk"`
	Status     AlertStatus        `json:"status"`
	RunID      string             `json:"run_id,omitempty"`
	ThreadID   string             `json:"thread_id,omitempty"`
	Response   ComplianceResponse `json:"response"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// AuditEvent is one entry in the compliance audit trail.
type AuditEvent struct {
	EventID string          `json:"event_id"`
	AlertID string          `json:"alert_id,omitempty"`
	Ts      int64           `json:"ts"` // Unix milliseconds
	Type    AuditEventType  `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Employee is a registered staff member.
type Employee struct {
	EmployeeID     string `json:"employee_id"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	ClearanceLevel string `json:"clearance_level"`
	Role           string `json:"role"` // staff, admin
}

// Package domain defines the core domain models for ComplianceGuard.
package domain

// Decision is the verdict returned by the compliance agent for an action.
type Decision string

const (
	DecisionAllow    Decision = "ALLOW"
	DecisionWarn     Decision = "WARN"
	DecisionBlock    Decision = "BLOCK"
	DecisionEscalate Decision = "ESCALATE"
)

// Valid reports whether d is one of the known decisions.
func (d Decision) Valid() bool {
	switch d {
	case DecisionAllow, DecisionWarn, DecisionBlock, DecisionEscalate:
		return true
	}
	return false
}

// Risk is the risk level the agent assigned to an action.
type Risk string

const (
	RiskLow      Risk = "LOW"
	RiskMedium   Risk = "MEDIUM"
	RiskHigh     Risk = "HIGH"
	RiskCritical Risk = "CRITICAL"
)

// Valid reports whether r is one of the known risk levels.
func (r Risk) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// AlertStatus represents where a dashboard alert is in the review workflow.
type AlertStatus string

const (
	AlertStatusPending   AlertStatus = "pending"
	AlertStatusReviewing AlertStatus = "reviewing"
	AlertStatusResolved  AlertStatus = "resolved"
)

// Valid reports whether s is one of the known alert statuses.
func (s AlertStatus) Valid() bool {
	switch s {
	case AlertStatusPending, AlertStatusReviewing, AlertStatusResolved:
		return true
	}
	return false
}

// AuditEventType represents the type of an audit event.
type AuditEventType string

const (
	AuditTypeActionSubmitted    AuditEventType = "action_submitted"
	AuditTypeDecisionReceived   AuditEventType = "decision_received"
	AuditTypeRunFailed          AuditEventType = "run_failed"
	AuditTypeAlertStatusChanged AuditEventType = "alert_status_changed"
)

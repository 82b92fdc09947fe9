package domain

// SubmitActionRequest is the request to evaluate a staff action.
type SubmitActionRequest struct {
	EmployeeID    string `json:"employee_id"`
	ActionType    string `json:"action_type"`
	ActionPayload string `json:"action_payload,omitempty"`
	ThreadID      string `json:"thread_id,omitempty"`
}

// UpdateAlertStatusRequest is the request to move an alert through the
// review workflow.
type UpdateAlertStatusRequest struct {
	Status AlertStatus `json:"status"`
}

// ActionSubmittedPayload is the payload for the action_submitted audit event.
type ActionSubmittedPayload struct {
	EmployeeID string `json:"employee_id"`
	ActionType string `json:"action_type"`
}

// DecisionReceivedPayload is the payload for the decision_received audit event.
type DecisionReceivedPayload struct {
	Decision Decision `json:"decision"`
	Risk     Risk     `json:"risk"`
	RunID    string   `json:"run_id,omitempty"`
	ThreadID string   `json:"thread_id,omitempty"`
}

// RunFailedPayload is the payload for the run_failed audit event.
type RunFailedPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AlertStatusChangedPayload is the payload for the alert_status_changed
// audit event.
type AlertStatusChangedPayload struct {
	From AlertStatus `json:"from"`
	To   AlertStatus `json:"to"`
}

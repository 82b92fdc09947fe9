package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/complianceguard/server/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SubmitAction evaluates a simulated staff action against the compliance
// agent and opens a dashboard alert for the verdict.
// POST /v1/actions
func (h *Handler) SubmitAction(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.SubmitActionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	// Validate required fields
	if req.EmployeeID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "employee_id is required"})
	}
	if req.ActionType == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "action_type is required"})
	}

	employee, err := h.store.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		log.Printf("ERROR: failed to get employee: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get employee"})
	}
	if employee == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "employee not found"})
	}

	action := domain.Action{
		EmployeeID:    employee.EmployeeID,
		EmployeeName:  employee.Name,
		ActionType:    req.ActionType,
		ActionPayload: req.ActionPayload,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	content, err := json.Marshal(action)
	if err != nil {
		log.Printf("ERROR: failed to marshal action: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to encode action"})
	}

	// The case id ties the audit trail together even when evaluation fails
	// and no alert row is created.
	alertID := "CASE-" + uuid.New().String()[:8]

	h.recordAudit(ctx, alertID, domain.AuditTypeActionSubmitted, domain.ActionSubmittedPayload{
		EmployeeID: employee.EmployeeID,
		ActionType: req.ActionType,
	})

	response, run, err := h.client.Evaluate(ctx, string(content), req.ThreadID)
	if err != nil {
		// The client cancelled; there is no one left to report to.
		if ctx.Err() != nil {
			return err
		}
		log.Printf("ERROR: agent evaluation failed: %v", err)
		h.recordAudit(ctx, alertID, domain.AuditTypeRunFailed, domain.RunFailedPayload{
			Code:    evaluationCode(err),
			Message: err.Error(),
		})
		return c.JSON(evaluationStatus(err), map[string]string{
			"error": err.Error(),
			"code":  evaluationCode(err),
		})
	}
	response.Action = action

	now := time.Now()
	alert := &domain.Alert{
		AlertID:    alertID,
		EmployeeID: employee.EmployeeID,
		Employee:   employee.Name,
		Decision:   response.Decision,
		Risk:       response.Risk,
		Status:     domain.AlertStatusPending,
		RunID:      run.RunID,
		ThreadID:   run.ThreadID,
		Response:   *response,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.store.CreateAlert(ctx, alert); err != nil {
		log.Printf("ERROR: failed to create alert: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create alert"})
	}

	h.recordAudit(ctx, alertID, domain.AuditTypeDecisionReceived, domain.DecisionReceivedPayload{
		Decision: response.Decision,
		Risk:     response.Risk,
		RunID:    run.RunID,
		ThreadID: run.ThreadID,
	})

	return c.JSON(http.StatusOK, alert)
}

package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/complianceguard/server/domain"
	"github.com/labstack/echo/v4"
)

// ListAlerts returns dashboard alerts, newest first.
// GET /v1/alerts
func (h *Handler) ListAlerts(c echo.Context) error {
	ctx := c.Request().Context()

	status := domain.AlertStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown status"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}

	alerts, err := h.store.ListAlerts(ctx, status, limit+1)
	if err != nil {
		log.Printf("ERROR: failed to list alerts: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list alerts"})
	}

	hasMore := len(alerts) > limit
	if hasMore {
		alerts = alerts[:limit]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts":   alerts,
		"has_more": hasMore,
	})
}

// GetAlert returns a single alert.
// GET /v1/alerts/:alert_id
func (h *Handler) GetAlert(c echo.Context) error {
	ctx := c.Request().Context()
	alertID := c.Param("alert_id")

	alert, err := h.store.GetAlert(ctx, alertID)
	if err != nil {
		log.Printf("ERROR: failed to get alert: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get alert"})
	}
	if alert == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "alert not found"})
	}

	return c.JSON(http.StatusOK, alert)
}

// UpdateAlertStatus moves an alert through the review workflow.
// PATCH /v1/alerts/:alert_id/status
func (h *Handler) UpdateAlertStatus(c echo.Context) error {
	ctx := c.Request().Context()
	alertID := c.Param("alert_id")

	var req domain.UpdateAlertStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if !req.Status.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown status"})
	}

	alert, err := h.store.GetAlert(ctx, alertID)
	if err != nil {
		log.Printf("ERROR: failed to get alert: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get alert"})
	}
	if alert == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "alert not found"})
	}

	if err := h.store.UpdateAlertStatus(ctx, alertID, req.Status); err != nil {
		log.Printf("ERROR: failed to update alert status: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update alert status"})
	}

	h.recordAudit(ctx, alertID, domain.AuditTypeAlertStatusChanged, domain.AlertStatusChangedPayload{
		From: alert.Status,
		To:   req.Status,
	})

	updated, err := h.store.GetAlert(ctx, alertID)
	if err != nil || updated == nil {
		log.Printf("ERROR: failed to reload alert: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to reload alert"})
	}

	return c.JSON(http.StatusOK, updated)
}

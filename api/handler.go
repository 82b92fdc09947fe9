// Package api provides HTTP handlers for the compliance service.
package api

import (
	"net/http"

	"github.com/complianceguard/server/config"
	"github.com/complianceguard/server/orchestrate"
	"github.com/complianceguard/server/store"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests.
type Handler struct {
	store  store.Store
	client *orchestrate.Client
	config *config.Config
}

// NewHandler creates a new handler.
func NewHandler(store store.Store, client *orchestrate.Client, config *config.Config) *Handler {
	return &Handler{
		store:  store,
		client: client,
		config: config,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Action submission (staff interface)
	e.POST("/v1/actions", h.SubmitAction)

	// Review dashboard
	e.GET("/v1/alerts", h.ListAlerts)
	e.GET("/v1/alerts/:alert_id", h.GetAlert)
	e.PATCH("/v1/alerts/:alert_id/status", h.UpdateAlertStatus)

	// Audit log
	e.GET("/v1/audit", h.ListAuditEvents)

	// Staff roster
	e.GET("/v1/employees/:employee_id", h.GetEmployee)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

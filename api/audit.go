package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// ListAuditEvents returns the compliance audit trail.
// GET /v1/audit
func (h *Handler) ListAuditEvents(c echo.Context) error {
	ctx := c.Request().Context()

	alertID := c.QueryParam("alert_id")
	afterTs, _ := strconv.ParseInt(c.QueryParam("after_ts"), 10, 64)
	typesStr := c.QueryParam("types")
	var types []string
	if typesStr != "" {
		types = strings.Split(typesStr, ",")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 100
	}

	events, err := h.store.ListAuditEvents(ctx, alertID, afterTs, types, limit+1)
	if err != nil {
		log.Printf("ERROR: failed to list audit events: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list audit events"})
	}

	hasMore := len(events) > limit
	if hasMore {
		events = events[:limit]
	}

	var nextCursor int64
	if hasMore && len(events) > 0 {
		nextCursor = events[len(events)-1].Ts
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"events":      events,
		"has_more":    hasMore,
		"next_cursor": nextCursor,
	})
}

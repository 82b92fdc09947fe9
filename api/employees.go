package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetEmployee returns a staff roster entry.
// GET /v1/employees/:employee_id
func (h *Handler) GetEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	employeeID := c.Param("employee_id")

	employee, err := h.store.GetEmployee(ctx, employeeID)
	if err != nil {
		log.Printf("ERROR: failed to get employee: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get employee"})
	}
	if employee == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "employee not found"})
	}

	return c.JSON(http.StatusOK, employee)
}

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/complianceguard/server/domain"
)

func createAlert(t *testing.T, env *testEnv, alertID string, status domain.AlertStatus, createdAt time.Time) {
	t.Helper()

	alert := &domain.Alert{
		AlertID:    alertID,
		EmployeeID: "EMP-4729",
		Employee:   "Sarah Johnson",
		Decision:   domain.DecisionEscalate,
		Risk:       domain.RiskHigh,
		Status:     status,
		Response: domain.ComplianceResponse{
			Decision:           domain.DecisionEscalate,
			Risk:               domain.RiskHigh,
			PolicyCitations:    []domain.PolicyCitation{},
			Reason:             "Sensitive file shared externally.",
			RecommendedActions: []string{"Use the approved sharing platform"},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := env.store.CreateAlert(context.Background(), alert); err != nil {
		t.Fatalf("CreateAlert failed: %v", err)
	}
}

func TestListAlerts(t *testing.T) {
	env := newTestEnv(t, nil)
	now := time.Now()
	createAlert(t, env, "CASE-0001", domain.AlertStatusPending, now.Add(-time.Hour))
	createAlert(t, env, "CASE-0002", domain.AlertStatusResolved, now)

	req := httptest.NewRequest(http.MethodGet, "/v1/alerts", nil)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)

	assert.NoError(t, env.handler.ListAlerts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Alerts  []domain.Alert `json:"alerts"`
		HasMore bool           `json:"has_more"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Alerts, 2)
	assert.Equal(t, "CASE-0002", resp.Alerts[0].AlertID)
	assert.False(t, resp.HasMore)
}

func TestListAlertsByStatus(t *testing.T) {
	env := newTestEnv(t, nil)
	now := time.Now()
	createAlert(t, env, "CASE-0001", domain.AlertStatusPending, now.Add(-time.Hour))
	createAlert(t, env, "CASE-0002", domain.AlertStatusResolved, now)

	req := httptest.NewRequest(http.MethodGet, "/v1/alerts?status=pending", nil)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)

	assert.NoError(t, env.handler.ListAlerts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Alerts []domain.Alert `json:"alerts"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Alerts, 1)
	assert.Equal(t, "CASE-0001", resp.Alerts[0].AlertID)
}

func TestListAlertsUnknownStatus(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/alerts?status=archived", nil)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)

	assert.NoError(t, env.handler.ListAlerts(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAlertNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/alerts/CASE-9999", nil)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	c.SetParamNames("alert_id")
	c.SetParamValues("CASE-9999")

	assert.NoError(t, env.handler.GetAlert(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAlertStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	createAlert(t, env, "CASE-0001", domain.AlertStatusPending, time.Now())

	body, _ := json.Marshal(domain.UpdateAlertStatusRequest{Status: domain.AlertStatusReviewing})
	req := httptest.NewRequest(http.MethodPatch, "/v1/alerts/CASE-0001/status", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	c.SetParamNames("alert_id")
	c.SetParamValues("CASE-0001")

	assert.NoError(t, env.handler.UpdateAlertStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var alert domain.Alert
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alert))
	assert.Equal(t, domain.AlertStatusReviewing, alert.Status)

	events, err := env.store.ListAuditEvents(ctx, "CASE-0001", 0, []string{string(domain.AuditTypeAlertStatusChanged)}, 10)
	assert.NoError(t, err)
	assert.Len(t, events, 1)

	var payload domain.AlertStatusChangedPayload
	assert.NoError(t, json.Unmarshal(events[0].Payload, &payload))
	assert.Equal(t, domain.AlertStatusPending, payload.From)
	assert.Equal(t, domain.AlertStatusReviewing, payload.To)
}

func TestUpdateAlertStatusInvalid(t *testing.T) {
	env := newTestEnv(t, nil)
	createAlert(t, env, "CASE-0001", domain.AlertStatusPending, time.Now())

	body := []byte(`{"status":"closed"}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/alerts/CASE-0001/status", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	c.SetParamNames("alert_id")
	c.SetParamValues("CASE-0001")

	assert.NoError(t, env.handler.UpdateAlertStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAuditEvents(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	events := []*domain.AuditEvent{
		{EventID: "evt_1", AlertID: "CASE-0001", Ts: 100, Type: domain.AuditTypeActionSubmitted},
		{EventID: "evt_2", AlertID: "CASE-0001", Ts: 200, Type: domain.AuditTypeDecisionReceived},
		{EventID: "evt_3", AlertID: "CASE-0002", Ts: 300, Type: domain.AuditTypeRunFailed},
	}
	for _, e := range events {
		assert.NoError(t, env.store.CreateAuditEvent(ctx, e))
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/audit?alert_id=CASE-0001", nil)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)

	assert.NoError(t, env.handler.ListAuditEvents(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Events  []domain.AuditEvent `json:"events"`
		HasMore bool                `json:"has_more"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Events, 2)
	assert.Equal(t, "evt_1", resp.Events[0].EventID)
	assert.False(t, resp.HasMore)
}

func TestListAuditEventsPagination(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	for i := 1; i <= 3; i++ {
		assert.NoError(t, env.store.CreateAuditEvent(ctx, &domain.AuditEvent{
			EventID: "evt_" + string(rune('0'+i)),
			Ts:      int64(i * 100),
			Type:    domain.AuditTypeActionSubmitted,
		}))
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/audit?limit=2", nil)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)

	assert.NoError(t, env.handler.ListAuditEvents(c))

	var resp struct {
		Events     []domain.AuditEvent `json:"events"`
		HasMore    bool                `json:"has_more"`
		NextCursor int64               `json:"next_cursor"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Events, 2)
	assert.True(t, resp.HasMore)
	assert.Equal(t, int64(200), resp.NextCursor)
}

func TestGetEmployee(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/employees/EMP-4729", nil)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	c.SetParamNames("employee_id")
	c.SetParamValues("EMP-4729")

	assert.NoError(t, env.handler.GetEmployee(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var employee domain.Employee
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &employee))
	assert.Equal(t, "Sarah Johnson", employee.Name)

	req = httptest.NewRequest(http.MethodGet, "/v1/employees/EMP-9999", nil)
	rec = httptest.NewRecorder()
	c = env.echo.NewContext(req, rec)
	c.SetParamNames("employee_id")
	c.SetParamValues("EMP-9999")

	assert.NoError(t, env.handler.GetEmployee(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

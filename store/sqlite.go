package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/complianceguard/server/domain"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS employees (
			employee_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			department TEXT NOT NULL,
			clearance_level TEXT NOT NULL,
			role TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			alert_id TEXT PRIMARY KEY,
			employee_id TEXT NOT NULL,
			employee TEXT NOT NULL,
			decision TEXT NOT NULL,
			risk TEXT NOT NULL,
			status TEXT NOT NULL,
			run_id TEXT,
			thread_id TEXT,
			response TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_status ON alerts(status, created_at)`,
		`CREATE TABLE IF NOT EXISTS audit_events (
			event_id TEXT PRIMARY KEY,
			alert_id TEXT,
			ts INTEGER NOT NULL,
			type TEXT NOT NULL,
			payload TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_alert ON audit_events(alert_id, ts)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateEmployee creates a new employee record.
func (s *SQLiteStore) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (employee_id, name, department, clearance_level, role) VALUES (?, ?, ?, ?, ?)`,
		employee.EmployeeID, employee.Name, employee.Department, employee.ClearanceLevel, employee.Role)
	return err
}

// GetEmployee retrieves an employee by ID.
func (s *SQLiteStore) GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	var employee domain.Employee
	err := s.db.QueryRowContext(ctx,
		`SELECT employee_id, name, department, clearance_level, role FROM employees WHERE employee_id = ?`,
		employeeID).Scan(&employee.EmployeeID, &employee.Name, &employee.Department, &employee.ClearanceLevel, &employee.Role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// ListEmployees lists all employees.
func (s *SQLiteStore) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT employee_id, name, department, clearance_level, role FROM employees ORDER BY employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(&employee.EmployeeID, &employee.Name, &employee.Department, &employee.ClearanceLevel, &employee.Role); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

// CreateAlert creates a new alert.
func (s *SQLiteStore) CreateAlert(ctx context.Context, alert *domain.Alert) error {
	response, err := json.Marshal(alert.Response)
	if err != nil {
		return fmt.Errorf("failed to marshal alert response: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO alerts (alert_id, employee_id, employee, decision, risk, status, run_id, thread_id, response, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		alert.AlertID, alert.EmployeeID, alert.Employee, alert.Decision, alert.Risk, alert.Status,
		nullString(alert.RunID), nullString(alert.ThreadID), string(response), alert.CreatedAt, alert.UpdatedAt)
	return err
}

// GetAlert retrieves an alert by ID.
func (s *SQLiteStore) GetAlert(ctx context.Context, alertID string) (*domain.Alert, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT alert_id, employee_id, employee, decision, risk, status, run_id, thread_id, response, created_at, updated_at
		 FROM alerts WHERE alert_id = ?`, alertID)

	alert, err := scanAlert(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return alert, nil
}

// ListAlerts lists alerts, newest first, optionally filtered by status.
func (s *SQLiteStore) ListAlerts(ctx context.Context, status domain.AlertStatus, limit int) ([]domain.Alert, error) {
	query := `SELECT alert_id, employee_id, employee, decision, risk, status, run_id, thread_id, response, created_at, updated_at FROM alerts`
	args := []interface{}{}

	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}

	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		alert, err := scanAlert(rows.Scan)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *alert)
	}
	return alerts, rows.Err()
}

// UpdateAlertStatus updates the review status of an alert.
func (s *SQLiteStore) UpdateAlertStatus(ctx context.Context, alertID string, status domain.AlertStatus) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE alerts SET status = ?, updated_at = ? WHERE alert_id = ?`,
		status, time.Now(), alertID)
	return err
}

// CreateAuditEvent creates a new audit event.
func (s *SQLiteStore) CreateAuditEvent(ctx context.Context, event *domain.AuditEvent) error {
	payload := ""
	if event.Payload != nil {
		payload = string(event.Payload)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_events (event_id, alert_id, ts, type, payload) VALUES (?, ?, ?, ?, ?)`,
		event.EventID, nullString(event.AlertID), event.Ts, event.Type, payload)
	return err
}

// ListAuditEvents retrieves audit events, oldest first.
func (s *SQLiteStore) ListAuditEvents(ctx context.Context, alertID string, afterTs int64, types []string, limit int) ([]domain.AuditEvent, error) {
	query := `SELECT event_id, alert_id, ts, type, payload FROM audit_events`
	var conds []string
	var args []interface{}

	if alertID != "" {
		conds = append(conds, "alert_id = ?")
		args = append(args, alertID)
	}
	if afterTs > 0 {
		conds = append(conds, "ts > ?")
		args = append(args, afterTs)
	}
	if len(types) > 0 {
		placeholders := make([]string, len(types))
		for i, t := range types {
			placeholders[i] = "?"
			args = append(args, t)
		}
		conds = append(conds, fmt.Sprintf("type IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}

	query += ` ORDER BY ts ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var event domain.AuditEvent
		var alertID, payload sql.NullString
		if err := rows.Scan(&event.EventID, &alertID, &event.Ts, &event.Type, &payload); err != nil {
			return nil, err
		}
		if alertID.Valid {
			event.AlertID = alertID.String
		}
		if payload.Valid && payload.String != "" {
			event.Payload = json.RawMessage(payload.String)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// scanAlert scans one alert row using the given scan function.
func scanAlert(scan func(dest ...interface{}) error) (*domain.Alert, error) {
	var alert domain.Alert
	var runID, threadID sql.NullString
	var response string
	if err := scan(&alert.AlertID, &alert.EmployeeID, &alert.Employee, &alert.Decision, &alert.Risk, &alert.Status,
		&runID, &threadID, &response, &alert.CreatedAt, &alert.UpdatedAt); err != nil {
		return nil, err
	}
	if runID.Valid {
		alert.RunID = runID.String
	}
	if threadID.Valid {
		alert.ThreadID = threadID.String
	}
	if err := json.Unmarshal([]byte(response), &alert.Response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alert response: %w", err)
	}
	return &alert, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

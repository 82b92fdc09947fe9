// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/complianceguard/server/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// Employee operations
	CreateEmployee(ctx context.Context, employee *domain.Employee) error
	GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)

	// Alert operations
	CreateAlert(ctx context.Context, alert *domain.Alert) error
	GetAlert(ctx context.Context, alertID string) (*domain.Alert, error)
	ListAlerts(ctx context.Context, status domain.AlertStatus, limit int) ([]domain.Alert, error)
	UpdateAlertStatus(ctx context.Context, alertID string, status domain.AlertStatus) error

	// Audit operations
	CreateAuditEvent(ctx context.Context, event *domain.AuditEvent) error
	ListAuditEvents(ctx context.Context, alertID string, afterTs int64, types []string, limit int) ([]domain.AuditEvent, error)

	// Lifecycle
	Close() error
}

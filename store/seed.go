package store

import (
	"context"
	"fmt"

	"github.com/complianceguard/server/domain"
)

// DefaultEmployees is the demo staff roster loaded at startup.
var DefaultEmployees = []domain.Employee{
	{EmployeeID: "EMP-4729", Name: "Sarah Johnson", Department: "Sales", ClearanceLevel: "Standard", Role: "staff"},
	{EmployeeID: "EMP-0001", Name: "Jane Wilson", Department: "Compliance", ClearanceLevel: "Admin", Role: "admin"},
	{EmployeeID: "EMP-0002", Name: "Robert Martinez", Department: "Compliance", ClearanceLevel: "Admin", Role: "admin"},
}

// Seed inserts the default employees, skipping any that already exist.
func Seed(ctx context.Context, s Store) error {
	for i := range DefaultEmployees {
		employee := DefaultEmployees[i]
		existing, err := s.GetEmployee(ctx, employee.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to check employee %s: %w", employee.EmployeeID, err)
		}
		if existing != nil {
			continue
		}
		if err := s.CreateEmployee(ctx, &employee); err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", employee.EmployeeID, err)
		}
	}
	return nil
}

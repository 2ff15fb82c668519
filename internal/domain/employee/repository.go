package employee

import "context"

// EmployeeRepository resolves employee identities owned by the account
// service.
type EmployeeRepository interface {
	// GetByID retrieves an employee by ID
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByIDForAdmin retrieves an employee only if it belongs to the given
	// admin. Used by operations that must not leak cross-tenant data.
	GetByIDForAdmin(ctx context.Context, id string, adminID string) (Employee, error)

	// ListIDsByAdmin lists the IDs of all employees owned by an admin
	ListIDsByAdmin(ctx context.Context, adminID string) ([]string, error)
}

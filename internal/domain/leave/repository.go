package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository defines data access for leave requests. As with
// attendance, the store enforces the no-overlap rule atomically: Create
// must fail with ErrOverlappingLeave when the interval intersects any
// existing request for the employee, whatever its status.
type LeaveRequestRepository interface {
	// Create inserts a new leave request
	Create(ctx context.Context, request Request) (Request, error)

	// GetByID retrieves a leave request by ID
	GetByID(ctx context.Context, id string) (Request, error)

	// HasOverlap reports whether the employee has any request intersecting
	// [start, end]. Fast-path pre-check only.
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// UpdateStatus overwrites the request status
	UpdateStatus(ctx context.Context, id string, status RequestStatus) (Request, error)

	// ListByEmployee retrieves one employee's requests, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)

	// ListByAdmin retrieves requests owned by an admin, newest first
	ListByAdmin(ctx context.Context, adminID string) ([]Request, error)

	// ListAll retrieves every request (superadmin scope), newest first
	ListAll(ctx context.Context) ([]Request, error)
}

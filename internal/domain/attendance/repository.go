package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// The store, not the caller, is responsible for atomically enforcing the
// one-punch-in-per-day rule: Create must fail with ErrAlreadyPunchedIn when
// a record for the same employee and punch date already exists, regardless
// of any earlier pre-check.
type AttendanceRepository interface {
	// Create inserts a new punch-in record
	Create(ctx context.Context, record Record) (Record, error)

	// HasPunchInOn reports whether the employee already has a record on the
	// given local calendar day. Fast-path pre-check only.
	HasPunchInOn(ctx context.Context, employeeID string, day time.Time) (bool, error)

	// HasPunchOutBetween reports whether the employee already closed a
	// session inside [from, to).
	HasPunchOutBetween(ctx context.Context, employeeID string, from, to time.Time) (bool, error)

	// CloseOpenSession sets punch-out fields on the employee's most recently
	// opened record that is still open, in a single conditional update.
	// Returns ErrNoOpenSession when every record is already closed.
	CloseOpenSession(ctx context.Context, employeeID string, punchOut time.Time, lat, lon *float64) (Record, error)

	// SetPunchInAddress stores a best-effort resolved punch-in address
	SetPunchInAddress(ctx context.Context, id string, address string) error

	// SetPunchOutAddress stores a best-effort resolved punch-out address
	SetPunchOutAddress(ctx context.Context, id string, address string) error

	// ListByEmployees retrieves records for the given employee set sorted by
	// punch-in descending, optionally bounded by inclusive time range.
	ListByEmployees(ctx context.Context, employeeIDs []string, from, to *time.Time) ([]Record, error)

	// ListAll retrieves every record (superadmin scope), punch-in descending
	ListAll(ctx context.Context, from, to *time.Time) ([]Record, error)

	// ListForPayroll retrieves one employee's records with punch-in inside
	// [from, to], sorted ascending for slip generation.
	ListForPayroll(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// ListMissingAddresses returns records that carry coordinates but no
	// stored address, for the enrichment backfill.
	ListMissingAddresses(ctx context.Context, limit int) ([]Record, error)
}

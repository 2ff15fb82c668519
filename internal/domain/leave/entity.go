package leave

import (
	"time"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

const DefaultLeaveType = "Casual"

// Request is a leave request. Dates are date-only and the interval is
// closed on both ends.
type Request struct {
	ID         string
	EmployeeID string
	AdminID    string

	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Reason    string

	Status RequestStatus

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
}

// Overlaps reports whether [StartDate, EndDate] intersects [start, end].
func (r Request) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
// Caller identity and role come from the request's JWT claims.
type AttendanceService interface {
	// PunchIn opens the caller's session for the day
	PunchIn(ctx context.Context, req PunchRequest) (RecordResponse, error)

	// PunchOut closes the caller's most recently opened session
	PunchOut(ctx context.Context, req PunchRequest) (PunchOutResponse, error)

	// ListAttendance retrieves records scoped by the caller's role:
	// employees see their own, admins see their employees', superadmins see
	// everything.
	ListAttendance(ctx context.Context, query ListQuery) (ListRecordsResponse, error)
}

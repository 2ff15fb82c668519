package attendance

import (
	"time"
)

// Record is a single punch-in session. It is created by punch-in, closed
// exactly once by punch-out, and its addresses may be enriched afterwards.
type Record struct {
	ID         string
	EmployeeID string

	// PunchDate is the local calendar day the punch-in falls on. At most
	// one record may exist per employee per punch date.
	PunchDate time.Time

	PunchIn          time.Time
	PunchInLatitude  *float64
	PunchInLongitude *float64
	PunchInAddress   *string

	PunchOut          *time.Time
	PunchOutLatitude  *float64
	PunchOutLongitude *float64
	PunchOutAddress   *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
}

// IsOpen reports whether the session has not been closed yet.
func (r Record) IsOpen() bool {
	return r.PunchOut == nil
}

// DayWindow returns the [start, end) bounds of t's local calendar day.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

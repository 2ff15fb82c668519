package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyPunchedIn  = errors.New("you have already punched in today")
	ErrAlreadyPunchedOut = errors.New("you have already punched out today")
	ErrNoOpenSession     = errors.New("no active punch-in found to punch out")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)

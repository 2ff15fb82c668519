package leave

import "errors"

var (
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrOverlappingLeave = errors.New("a leave already exists for this date range")
	ErrNotRequestOwner  = errors.New("not authorized to update this leave")
)

package response

import (
	"errors"
	"net/http"

	"github.com/fintradify/hr-portal-go/internal/domain/attendance"
	"github.com/fintradify/hr-portal-go/internal/domain/employee"
	"github.com/fintradify/hr-portal-go/internal/domain/leave"
	"github.com/fintradify/hr-portal-go/internal/pkg/geocode"
	"github.com/fintradify/hr-portal-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "You have already punched in today")
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, "You have already punched out today")
	case errors.Is(err, attendance.ErrNoOpenSession):
		BadRequest(w, "No active punch-in found to punch out", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "A leave already exists for this date range")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Not authorized to update this leave")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is inactive")
	case errors.Is(err, employee.ErrRoleNotAllowed):
		Forbidden(w, "Role is not allowed for this operation")

	// Geocoding errors
	case errors.Is(err, geocode.ErrUnavailable):
		ServiceUnavailable(w, "Reverse geocoding is currently unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

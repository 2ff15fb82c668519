package attendance

import (
	"fmt"
	"time"

	"github.com/fintradify/hr-portal-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// PunchRequest carries an optional client timestamp and an optional
// coordinate pair. Latitude and longitude must be provided together.
type PunchRequest struct {
	Timestamp *string  `json:"timestamp,omitempty"` // RFC3339; defaults to server time
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an RFC3339 datetime",
			})
		}
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a finite value between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be a finite value between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// At resolves the effective punch time, falling back to now.
func (r *PunchRequest) At(now time.Time) time.Time {
	if r.Timestamp == nil || *r.Timestamp == "" {
		return now
	}
	t, _ := time.Parse(time.RFC3339, *r.Timestamp)
	return t.In(now.Location())
}

type RecordResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	EmployeeEmail     *string  `json:"employee_email,omitempty"`
	Date              string   `json:"date"`
	PunchIn           string   `json:"punch_in"`
	PunchOut          *string  `json:"punch_out,omitempty"`
	PunchInLatitude   *float64 `json:"punch_in_latitude,omitempty"`
	PunchInLongitude  *float64 `json:"punch_in_longitude,omitempty"`
	PunchInAddress    string   `json:"punch_in_address"`
	PunchOutLatitude  *float64 `json:"punch_out_latitude,omitempty"`
	PunchOutLongitude *float64 `json:"punch_out_longitude,omitempty"`
	PunchOutAddress   string   `json:"punch_out_address"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// PunchOutResponse returns both the closed record and the employee's full
// attendance history, newest first, so clients can redisplay immediately.
type PunchOutResponse struct {
	Record  RecordResponse   `json:"record"`
	Records []RecordResponse `json:"records"`
}

type ListRecordsResponse struct {
	Count   int              `json:"count"`
	Records []RecordResponse `json:"records"`
}

// ListQuery bounds a read by an inclusive date range. Both bounds are
// optional; when present the range covers the full days.
type ListQuery struct {
	From *string `json:"from,omitempty"` // YYYY-MM-DD
	To   *string `json:"to,omitempty"`   // YYYY-MM-DD
}

func (q *ListQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.From != nil && *q.From != "" {
		if _, valid := validator.IsValidDate(*q.From); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}

	if q.To != nil && *q.To != "" {
		if _, valid := validator.IsValidDate(*q.To); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Bounds converts the query into full-day time bounds
// (00:00:00.000 to 23:59:59.999) in the given location.
func (q *ListQuery) Bounds(loc *time.Location) (from, to *time.Time) {
	if q.From != nil && *q.From != "" {
		if d, ok := validator.IsValidDate(*q.From); ok {
			t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
			from = &t
		}
	}
	if q.To != nil && *q.To != "" {
		if d, ok := validator.IsValidDate(*q.To); ok {
			t := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999000000, loc)
			to = &t
		}
	}
	return from, to
}

// ToResponse converts a Record to its response shape. Records that never
// got a stored address fall back to raw coordinates, matching what clients
// already render.
func ToResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		EmployeeName:      r.EmployeeName,
		EmployeeEmail:     r.EmployeeEmail,
		Date:              r.PunchDate.Format("2006-01-02"),
		PunchIn:           r.PunchIn.Format(time.RFC3339),
		PunchInLatitude:   r.PunchInLatitude,
		PunchInLongitude:  r.PunchInLongitude,
		PunchOutLatitude:  r.PunchOutLatitude,
		PunchOutLongitude: r.PunchOutLongitude,
		PunchInAddress:    addressOrFallback(r.PunchInAddress, r.PunchInLatitude, r.PunchInLongitude),
		PunchOutAddress:   addressOrFallback(r.PunchOutAddress, r.PunchOutLatitude, r.PunchOutLongitude),
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         r.UpdatedAt.Format(time.RFC3339),
	}

	if r.PunchOut != nil {
		out := r.PunchOut.Format(time.RFC3339)
		resp.PunchOut = &out
	}

	return resp
}

func addressOrFallback(address *string, lat, lon *float64) string {
	if address != nil && *address != "" {
		return *address
	}
	if lat != nil && lon != nil {
		return fmt.Sprintf("%v, %v", *lat, *lon)
	}
	return "Location not available"
}

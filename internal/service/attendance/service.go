package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintradify/hr-portal-go/internal/domain/attendance"
	"github.com/fintradify/hr-portal-go/internal/domain/employee"
	"github.com/fintradify/hr-portal-go/internal/pkg/geocode"
	"github.com/fintradify/hr-portal-go/internal/pkg/jwt"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	resolver       geocode.Resolver
	enrichTimeout  time.Duration
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	resolver geocode.Resolver,
	enrichTimeout time.Duration,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		resolver:       resolver,
		enrichTimeout:  enrichTimeout,
	}
}

// PunchIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.callerEmployee(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	at := req.At(time.Now())
	dayStart, _ := attendance.DayWindow(at)

	// Fast-path pre-check; the unique index still catches racing requests
	exists, err := s.attendanceRepo.HasPunchInOn(ctx, emp.ID, dayStart)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check existing punch-in: %w", err)
	}
	if exists {
		return attendance.RecordResponse{}, attendance.ErrAlreadyPunchedIn
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Record{
		EmployeeID:       emp.ID,
		PunchDate:        dayStart,
		PunchIn:          at,
		PunchInLatitude:  req.Latitude,
		PunchInLongitude: req.Longitude,
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// Address resolution never blocks or fails the punch
	s.enrichAsync(created.ID, req.Latitude, req.Longitude, s.attendanceRepo.SetPunchInAddress)

	created.EmployeeName = &emp.Name
	created.EmployeeEmail = &emp.Email
	return attendance.ToResponse(created), nil
}

// PunchOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchRequest) (attendance.PunchOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchOutResponse{}, err
	}

	emp, err := s.callerEmployee(ctx)
	if err != nil {
		return attendance.PunchOutResponse{}, err
	}

	at := req.At(time.Now())
	dayStart, dayEnd := attendance.DayWindow(at)

	// One punch-out per day, checked against today's window. The open
	// session itself may have started on an earlier day.
	closedToday, err := s.attendanceRepo.HasPunchOutBetween(ctx, emp.ID, dayStart, dayEnd)
	if err != nil {
		return attendance.PunchOutResponse{}, fmt.Errorf("failed to check existing punch-out: %w", err)
	}
	if closedToday {
		return attendance.PunchOutResponse{}, attendance.ErrAlreadyPunchedOut
	}

	closed, err := s.attendanceRepo.CloseOpenSession(ctx, emp.ID, at, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.PunchOutResponse{}, err
	}

	s.enrichAsync(closed.ID, req.Latitude, req.Longitude, s.attendanceRepo.SetPunchOutAddress)

	records, err := s.attendanceRepo.ListByEmployees(ctx, []string{emp.ID}, nil, nil)
	if err != nil {
		return attendance.PunchOutResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	closed.EmployeeName = &emp.Name
	closed.EmployeeEmail = &emp.Email
	return attendance.PunchOutResponse{
		Record:  attendance.ToResponse(closed),
		Records: toResponses(records),
	}, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, query attendance.ListQuery) (attendance.ListRecordsResponse, error) {
	if err := query.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	from, to := query.Bounds(time.Local)

	var records []attendance.Record
	switch claims.Role {
	case employee.RoleEmployee:
		if claims.EmployeeID == "" {
			return attendance.ListRecordsResponse{}, employee.ErrRoleNotAllowed
		}
		records, err = s.attendanceRepo.ListByEmployees(ctx, []string{claims.EmployeeID}, from, to)
	case employee.RoleAdmin:
		if claims.AdminID == "" {
			return attendance.ListRecordsResponse{}, employee.ErrRoleNotAllowed
		}
		var ids []string
		ids, err = s.employeeRepo.ListIDsByAdmin(ctx, claims.AdminID)
		if err != nil {
			return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list employees for admin: %w", err)
		}
		records, err = s.attendanceRepo.ListByEmployees(ctx, ids, from, to)
	case employee.RoleSuperAdmin:
		records, err = s.attendanceRepo.ListAll(ctx, from, to)
	default:
		return attendance.ListRecordsResponse{}, employee.ErrRoleNotAllowed
	}
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := toResponses(records)
	return attendance.ListRecordsResponse{
		Count:   len(responses),
		Records: responses,
	}, nil
}

func (s *AttendanceServiceImpl) callerEmployee(ctx context.Context) (employee.Employee, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	if claims.EmployeeID == "" {
		return employee.Employee{}, employee.ErrRoleNotAllowed
	}

	emp, err := s.employeeRepo.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}

	return emp, nil
}

// enrichAsync resolves the address for a stored punch in the background.
// The request context is not reused: the HTTP response must not wait on the
// lookup, and the lookup must survive the response being sent.
func (s *AttendanceServiceImpl) enrichAsync(recordID string, lat, lon *float64, store func(ctx context.Context, id, address string) error) {
	if lat == nil || lon == nil || s.resolver == nil {
		return
	}

	latV, lonV := *lat, *lon
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.enrichTimeout)
		defer cancel()

		address, err := s.resolver.Reverse(ctx, latV, lonV)
		if err != nil {
			if !errors.Is(err, geocode.ErrUnavailable) {
				slog.Warn("Address lookup failed", "record_id", recordID, "error", err)
			}
			return
		}

		if err := store(ctx, recordID, address); err != nil {
			slog.Warn("Failed to store resolved address", "record_id", recordID, "error", err)
		}
	}()
}

func toResponses(records []attendance.Record) []attendance.RecordResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec))
	}
	return responses
}

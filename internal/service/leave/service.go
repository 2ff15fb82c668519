package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/fintradify/hr-portal-go/internal/domain/employee"
	"github.com/fintradify/hr-portal-go/internal/domain/leave"
	"github.com/fintradify/hr-portal-go/internal/pkg/database"
	"github.com/fintradify/hr-portal-go/internal/pkg/jwt"
	"github.com/fintradify/hr-portal-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db           *database.DB
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(db *database.DB, leaveRepo leave.LeaveRequestRepository, employeeRepo employee.EmployeeRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		db:           db,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
	}
}

// inTransaction runs fn inside a database transaction; repositories pick the
// ambient transaction up through the context. A nil handle runs fn directly,
// which unit tests with in-memory repositories rely on.
func (s *LeaveServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// RequestLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) RequestLeave(ctx context.Context, req leave.CreateRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if claims.EmployeeID == "" {
		return leave.RequestResponse{}, employee.ErrRoleNotAllowed
	}

	emp, err := s.employeeRepo.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !emp.IsActive {
		return leave.RequestResponse{}, employee.ErrEmployeeInactive
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	// Fast-path pre-check; the exclusion constraint still catches races.
	// Rejected and pending requests block the range just like approved ones.
	overlaps, err := s.leaveRepo.HasOverlap(ctx, emp.ID, start, end)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	if overlaps {
		return leave.RequestResponse{}, leave.ErrOverlappingLeave
	}

	leaveType := req.LeaveType
	if leaveType == "" {
		leaveType = leave.DefaultLeaveType
	}

	created, err := s.leaveRepo.Create(ctx, leave.Request{
		EmployeeID: emp.ID,
		AdminID:    emp.AdminID,
		LeaveType:  leaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.RequestStatusPending,
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	created.EmployeeName = &emp.Name
	created.EmployeeEmail = &emp.Email
	return leave.ToResponse(created), nil
}

// UpdateStatus implements leave.LeaveService.
// The transition is an unconditional overwrite: approving an already
// approved request, or flipping a rejected one to approved, both succeed.
func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, req leave.UpdateStatusRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	// Ownership check and overwrite run atomically
	var existing, updated leave.Request
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		existing, err = s.leaveRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		switch claims.Role {
		case employee.RoleSuperAdmin:
		case employee.RoleAdmin:
			if claims.AdminID == "" || existing.AdminID != claims.AdminID {
				return leave.ErrNotRequestOwner
			}
		default:
			return leave.ErrNotRequestOwner
		}

		updated, err = s.leaveRepo.UpdateStatus(ctx, req.ID, leave.RequestStatus(req.Status))
		return err
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	updated.EmployeeName = existing.EmployeeName
	updated.EmployeeEmail = existing.EmployeeEmail
	return leave.ToResponse(updated), nil
}

// ListMyLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyLeaves(ctx context.Context) (leave.ListRequestsResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.ListRequestsResponse{}, err
	}
	if claims.EmployeeID == "" {
		return leave.ListRequestsResponse{}, employee.ErrRoleNotAllowed
	}

	requests, err := s.leaveRepo.ListByEmployee(ctx, claims.EmployeeID)
	if err != nil {
		return leave.ListRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return toListResponse(requests), nil
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context) (leave.ListRequestsResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.ListRequestsResponse{}, err
	}

	var requests []leave.Request
	switch claims.Role {
	case employee.RoleAdmin:
		if claims.AdminID == "" {
			return leave.ListRequestsResponse{}, employee.ErrRoleNotAllowed
		}
		requests, err = s.leaveRepo.ListByAdmin(ctx, claims.AdminID)
	case employee.RoleSuperAdmin:
		requests, err = s.leaveRepo.ListAll(ctx)
	default:
		return leave.ListRequestsResponse{}, employee.ErrRoleNotAllowed
	}
	if err != nil {
		return leave.ListRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return toListResponse(requests), nil
}

func toListResponse(requests []leave.Request) leave.ListRequestsResponse {
	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, leave.ToResponse(req))
	}
	return leave.ListRequestsResponse{
		Count:    len(responses),
		Requests: responses,
	}
}

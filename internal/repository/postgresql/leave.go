package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintradify/hr-portal-go/internal/domain/leave"
	"github.com/fintradify/hr-portal-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveColumns = `
	l.id, l.employee_id, l.admin_id, l.leave_type,
	l.start_date, l.end_date, l.reason, l.status,
	l.created_at, l.updated_at`

// Create implements leave.LeaveRequestRepository.
// The exclusion constraint on (employee_id, daterange(start_date, end_date))
// rejects intersecting intervals atomically, whatever their status.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, admin_id, leave_type,
			start_date, end_date, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.AdminID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.Reason,
		request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
			return leave.Request{}, leave.ErrOverlappingLeave
		}
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `,
			e.name AS employee_name,
			e.email AS employee_email
		FROM leave_requests l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	var req leave.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.AdminID, &req.LeaveType,
		&req.StartDate, &req.EndDate, &req.Reason, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.EmployeeEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return req, nil
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return exists, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests l
		SET status = $2, updated_at = now()
		WHERE l.id = $1
		RETURNING ` + leaveColumns

	var req leave.Request
	err := q.QueryRow(ctx, query, id, status).Scan(
		&req.ID, &req.EmployeeID, &req.AdminID, &req.LeaveType,
		&req.StartDate, &req.EndDate, &req.Reason, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to update leave status: %w", err)
	}

	return req, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	return r.list(ctx, "l.employee_id = $1", employeeID)
}

// ListByAdmin implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByAdmin(ctx context.Context, adminID string) ([]leave.Request, error) {
	return r.list(ctx, "l.admin_id = $1", adminID)
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListAll(ctx context.Context) ([]leave.Request, error) {
	return r.list(ctx, "TRUE")
}

func (r *leaveRequestRepository) list(ctx context.Context, where string, args ...interface{}) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s,
			e.name AS employee_name,
			e.email AS employee_email
		FROM leave_requests l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE %s
		ORDER BY l.created_at DESC
	`, leaveColumns, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.AdminID, &req.LeaveType,
			&req.StartDate, &req.EndDate, &req.Reason, &req.Status,
			&req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName, &req.EmployeeEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

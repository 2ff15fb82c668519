package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintradify/hr-portal-go/internal/domain/attendance"
	"github.com/fintradify/hr-portal-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	a.id, a.employee_id, a.punch_date,
	a.punch_in, a.punch_in_latitude, a.punch_in_longitude, a.punch_in_address,
	a.punch_out, a.punch_out_latitude, a.punch_out_longitude, a.punch_out_address,
	a.created_at, a.updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PunchDate,
		&rec.PunchIn, &rec.PunchInLatitude, &rec.PunchInLongitude, &rec.PunchInAddress,
		&rec.PunchOut, &rec.PunchOutLatitude, &rec.PunchOutLongitude, &rec.PunchOutAddress,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
// The unique index on (employee_id, punch_date) makes the one-punch-in-per-
// day rule hold even when two punch-ins race past the service pre-check.
func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, punch_date,
			punch_in, punch_in_latitude, punch_in_longitude, punch_in_address
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.PunchDate,
		rec.PunchIn,
		rec.PunchInLatitude,
		rec.PunchInLongitude,
		rec.PunchInAddress,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrAlreadyPunchedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// HasPunchInOn implements attendance.AttendanceRepository.
func (r *attendanceRepository) HasPunchInOn(ctx context.Context, employeeID string, day time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_records
			WHERE employee_id = $1 AND punch_date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, day).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check punch-in for day: %w", err)
	}

	return exists, nil
}

// HasPunchOutBetween implements attendance.AttendanceRepository.
func (r *attendanceRepository) HasPunchOutBetween(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_records
			WHERE employee_id = $1
			  AND punch_out >= $2
			  AND punch_out < $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check punch-out window: %w", err)
	}

	return exists, nil
}

// CloseOpenSession implements attendance.AttendanceRepository.
// The conditional update claims the newest open record in one statement, so
// two racing punch-outs cannot both close it: the loser sees no rows and
// gets ErrNoOpenSession.
func (r *attendanceRepository) CloseOpenSession(ctx context.Context, employeeID string, punchOut time.Time, lat, lon *float64) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records a
		SET punch_out = $2,
		    punch_out_latitude = $3,
		    punch_out_longitude = $4,
		    updated_at = now()
		WHERE a.id = (
			SELECT id FROM attendance_records
			WHERE employee_id = $1 AND punch_out IS NULL
			ORDER BY punch_in DESC
			LIMIT 1
		)
		  AND a.punch_out IS NULL
		RETURNING ` + recordColumns

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, punchOut, lat, lon))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNoOpenSession
		}
		return attendance.Record{}, fmt.Errorf("failed to close open session: %w", err)
	}

	return rec, nil
}

// SetPunchInAddress implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetPunchInAddress(ctx context.Context, id string, address string) error {
	return r.setAddress(ctx, id, "punch_in_address", address)
}

// SetPunchOutAddress implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetPunchOutAddress(ctx context.Context, id string, address string) error {
	return r.setAddress(ctx, id, "punch_out_address", address)
}

func (r *attendanceRepository) setAddress(ctx context.Context, id, column, address string) error {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`UPDATE attendance_records SET %s = $2, updated_at = now() WHERE id = $1`, column)

	tag, err := q.Exec(ctx, query, id, address)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// ListByEmployees implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployees(ctx context.Context, employeeIDs []string, from, to *time.Time) ([]attendance.Record, error) {
	if len(employeeIDs) == 0 {
		return []attendance.Record{}, nil
	}
	return r.list(ctx, "a.employee_id = ANY($1)", []interface{}{employeeIDs}, from, to)
}

// ListAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListAll(ctx context.Context, from, to *time.Time) ([]attendance.Record, error) {
	return r.list(ctx, "TRUE", nil, from, to)
}

func (r *attendanceRepository) list(ctx context.Context, baseWhere string, args []interface{}, from, to *time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	argIdx := len(args) + 1
	if from != nil {
		baseWhere += fmt.Sprintf(" AND a.punch_in >= $%d", argIdx)
		args = append(args, *from)
		argIdx++
	}
	if to != nil {
		baseWhere += fmt.Sprintf(" AND a.punch_in <= $%d", argIdx)
		args = append(args, *to)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT %s,
			e.name AS employee_name,
			e.email AS employee_email
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.punch_in DESC
	`, recordColumns, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.PunchDate,
			&rec.PunchIn, &rec.PunchInLatitude, &rec.PunchInLongitude, &rec.PunchInAddress,
			&rec.PunchOut, &rec.PunchOutLatitude, &rec.PunchOutLongitude, &rec.PunchOutAddress,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.EmployeeEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListForPayroll implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListForPayroll(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		  AND a.punch_in >= $2
		  AND a.punch_in <= $3
		ORDER BY a.punch_in ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecordFromRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListMissingAddresses implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListMissingAddresses(ctx context.Context, limit int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records a
		WHERE (a.punch_in_latitude IS NOT NULL AND a.punch_in_address IS NULL)
		   OR (a.punch_out_latitude IS NOT NULL AND a.punch_out_address IS NULL)
		ORDER BY a.punch_in DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query records missing addresses: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecordFromRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func scanRecordFromRows(rows pgx.Rows) (attendance.Record, error) {
	var rec attendance.Record
	err := rows.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PunchDate,
		&rec.PunchIn, &rec.PunchInLatitude, &rec.PunchInLongitude, &rec.PunchInAddress,
		&rec.PunchOut, &rec.PunchOutLatitude, &rec.PunchOutLongitude, &rec.PunchOutAddress,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to scan attendance record: %w", err)
	}
	return rec, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintradify/hr-portal-go/internal/domain/employee"
	"github.com/fintradify/hr-portal-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, admin_id, name, email, salary, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.AdminID, &emp.Name, &emp.Email,
		&emp.Salary, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// GetByIDForAdmin implements employee.EmployeeRepository.
func (r *employeeRepository) GetByIDForAdmin(ctx context.Context, id string, adminID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND admin_id = $2`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, adminID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee for admin: %w", err)
	}

	return emp, nil
}

// ListIDsByAdmin implements employee.EmployeeRepository.
func (r *employeeRepository) ListIDsByAdmin(ctx context.Context, adminID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM employees WHERE admin_id = $1`, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee IDs by admin: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

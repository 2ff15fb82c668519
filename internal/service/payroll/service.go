package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/fintradify/hr-portal-go/internal/domain/attendance"
	"github.com/fintradify/hr-portal-go/internal/domain/employee"
	"github.com/fintradify/hr-portal-go/internal/domain/payroll"
	"github.com/fintradify/hr-portal-go/internal/pkg/jwt"
)

type PayrollServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewPayrollService(attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository) payroll.PayrollService {
	return &PayrollServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// ComputeSalarySlip implements payroll.PayrollService.
// The slip is derived purely from attendance history; nothing is persisted,
// so a recomputation after new punches always reflects current data.
func (s *PayrollServiceImpl) ComputeSalarySlip(ctx context.Context, req payroll.SalarySlipRequest) (payroll.SalarySlipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalarySlipResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.SalarySlipResponse{}, err
	}

	var emp employee.Employee
	switch claims.Role {
	case employee.RoleAdmin:
		if claims.AdminID == "" {
			return payroll.SalarySlipResponse{}, employee.ErrRoleNotAllowed
		}
		emp, err = s.employeeRepo.GetByIDForAdmin(ctx, req.EmployeeID, claims.AdminID)
	case employee.RoleSuperAdmin:
		emp, err = s.employeeRepo.GetByID(ctx, req.EmployeeID)
	default:
		return payroll.SalarySlipResponse{}, employee.ErrRoleNotAllowed
	}
	if err != nil {
		return payroll.SalarySlipResponse{}, err
	}

	fromDate, _ := time.Parse("2006-01-02", req.From)
	toDate, _ := time.Parse("2006-01-02", req.To)
	from := time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), 0, 0, 0, 0, time.Local)
	to := time.Date(toDate.Year(), toDate.Month(), toDate.Day(), 23, 59, 59, 999000000, time.Local)

	records, err := s.attendanceRepo.ListForPayroll(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.SalarySlipResponse{}, fmt.Errorf("failed to list attendance for payroll: %w", err)
	}

	var full, half, absent int
	slipRecords := make([]payroll.SlipRecord, 0, len(records))

	for _, rec := range records {
		dayType, credit, hours := payroll.Classify(rec.PunchIn, rec.PunchOut)

		switch dayType {
		case payroll.DayTypeFull:
			full++
		case payroll.DayTypeHalf:
			half++
		case payroll.DayTypeAbsent:
			// Closed sessions of non-positive length earn no credit but are
			// not counted as absences either.
			if rec.PunchOut == nil {
				absent++
			}
		}

		slip := payroll.SlipRecord{
			Date:    rec.PunchDate.Format("2006-01-02"),
			PunchIn: rec.PunchIn.Format(time.RFC3339),
			Hours:   payroll.RoundHours(hours),
			Type:    dayType,
			Credit:  credit,
		}
		if rec.PunchOut != nil {
			out := rec.PunchOut.Format(time.RFC3339)
			slip.PunchOut = &out
		}
		slipRecords = append(slipRecords, slip)
	}

	payableDays := payroll.PayableDays(full, half)

	return payroll.SalarySlipResponse{
		Employee: payroll.SlipEmployee{
			ID:     emp.ID,
			Name:   emp.Name,
			Email:  emp.Email,
			Salary: emp.Salary,
		},
		Period: payroll.SlipPeriod{
			From: req.From,
			To:   req.To,
		},
		Summary: payroll.SlipSummary{
			Full:          full,
			Half:          half,
			Absent:        absent,
			PayableDays:   payableDays,
			PayableAmount: payroll.PayableAmount(payableDays, emp.Salary),
		},
		Records: slipRecords,
	}, nil
}

package payroll

import (
	"context"
)

// PayrollService derives salary slips from attendance history
type PayrollService interface {
	// ComputeSalarySlip builds a slip for one of the calling admin's
	// employees over an inclusive date range.
	ComputeSalarySlip(ctx context.Context, req SalarySlipRequest) (SalarySlipResponse, error)
}

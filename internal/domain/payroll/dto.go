package payroll

import (
	"github.com/fintradify/hr-portal-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PAYROLL DTOs
// ========================================

type SalarySlipRequest struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"` // YYYY-MM-DD
	To         string `json:"to"`   // YYYY-MM-DD
}

func (r *SalarySlipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from is required",
		})
	} else if _, valid := validator.IsValidDate(r.From); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to is required",
		})
	} else if _, valid := validator.IsValidDate(r.To); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SlipEmployee struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Salary decimal.Decimal `json:"salary"`
}

type SlipPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type SlipSummary struct {
	Full          int             `json:"full"`
	Half          int             `json:"half"`
	Absent        int             `json:"absent"`
	PayableDays   float64         `json:"payable_days"`
	PayableAmount decimal.Decimal `json:"payable_amount"`
}

type SlipRecord struct {
	Date     string  `json:"date"`
	PunchIn  string  `json:"punch_in"`
	PunchOut *string `json:"punch_out,omitempty"`
	Hours    float64 `json:"hours"`
	Type     DayType `json:"type"`
	Credit   float64 `json:"credit"`
}

type SalarySlipResponse struct {
	Employee SlipEmployee `json:"employee"`
	Period   SlipPeriod   `json:"period"`
	Summary  SlipSummary  `json:"summary"`
	Records  []SlipRecord `json:"records"`
}

package http

import (
	"net/http"

	"github.com/fintradify/hr-portal-go/internal/domain/payroll"
	"github.com/fintradify/hr-portal-go/internal/handler/http/response"
)

type PayrollHandler interface {
	SalarySlip(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// SalarySlip implements PayrollHandler.
func (h *PayrollHandlerImpl) SalarySlip(w http.ResponseWriter, r *http.Request) {
	req := payroll.SalarySlipRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
	}

	slip, err := h.payrollService.ComputeSalarySlip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slip)
}

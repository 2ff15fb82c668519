package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/fintradify/hr-portal-go/internal/domain/attendance"
	"github.com/fintradify/hr-portal-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// PunchIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePunchRequest(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.PunchIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punched in successfully", record)
}

// PunchOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePunchRequest(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.PunchOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punched out successfully", result)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var query attendance.ListQuery
	if from := r.URL.Query().Get("from"); from != "" {
		query.From = &from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		query.To = &to
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// decodePunchRequest decodes an optional JSON body. Punches without
// coordinates are legal, so an empty body is fine.
func decodePunchRequest(w http.ResponseWriter, r *http.Request) (attendance.PunchRequest, bool) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		slog.Error("Punch request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return attendance.PunchRequest{}, false
	}
	return req, true
}

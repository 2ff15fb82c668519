package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fintradify/hr-portal-go/internal/handler/http/response"
	"github.com/fintradify/hr-portal-go/internal/pkg/geocode"
	"github.com/fintradify/hr-portal-go/internal/pkg/validator"
)

type GeocodeHandler interface {
	Reverse(w http.ResponseWriter, r *http.Request)
}

type GeocodeHandlerImpl struct {
	resolver geocode.Resolver
}

func NewGeocodeHandler(resolver geocode.Resolver) GeocodeHandler {
	return &GeocodeHandlerImpl{resolver: resolver}
}

type reverseRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type reverseResponse struct {
	Address string `json:"address"`
}

// Reverse implements GeocodeHandler. Unlike punch enrichment this lookup is
// synchronous; clients use it to preview a location before punching.
func (h *GeocodeHandlerImpl) Reverse(w http.ResponseWriter, r *http.Request) {
	var req reverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reverse geocode decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var errs validator.ValidationErrors
	if req.Latitude == nil || !validator.IsValidLatitude(*req.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a finite value between -90 and 90",
		})
	}
	if req.Longitude == nil || !validator.IsValidLongitude(*req.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be a finite value between -180 and 180",
		})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	address, err := h.resolver.Reverse(r.Context(), *req.Latitude, *req.Longitude)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reverseResponse{Address: address})
}

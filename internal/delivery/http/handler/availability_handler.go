package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/response"
	"clinic-scheduling-api/pkg/validator"
)

// AvailabilityHandler exposes the doctor-side availability
// configuration: working hours and the weekly window template.
type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) GetWorkingHours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.availabilityUsecase.GetWorkingHours(r.Context())
	if err != nil {
		h.writeAvailabilityError(w, err, "Failed to get working hours")
		return
	}

	response.Success(w, http.StatusOK, "Working hours retrieved successfully", hours)
}

func (h *AvailabilityHandler) UpdateWorkingHours(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateWorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hours, err := h.availabilityUsecase.UpdateWorkingHours(r.Context(), &req)
	if err != nil {
		h.writeAvailabilityError(w, err, "Failed to update working hours")
		return
	}

	response.Success(w, http.StatusOK, "Working hours updated successfully", hours)
}

func (h *AvailabilityHandler) ReplaceAvailability(w http.ResponseWriter, r *http.Request) {
	var req dto.ReplaceAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hours, err := h.availabilityUsecase.ReplaceAvailability(r.Context(), &req)
	if err != nil {
		h.writeAvailabilityError(w, err, "Failed to replace availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability replaced successfully", hours)
}

func (h *AvailabilityHandler) AddAvailabilityWindow(w http.ResponseWriter, r *http.Request) {
	var req dto.AvailabilityWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	window, err := h.availabilityUsecase.AddAvailabilityWindow(r.Context(), &req)
	if err != nil {
		h.writeAvailabilityError(w, err, "Failed to add availability window")
		return
	}

	response.Success(w, http.StatusCreated, "Availability window added successfully", window)
}

func (h *AvailabilityHandler) DeleteAvailabilityWindow(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.availabilityUsecase.DeleteAvailabilityWindow(r.Context(), id); err != nil {
		h.writeAvailabilityError(w, err, "Failed to delete availability window")
		return
	}

	response.Success(w, http.StatusOK, "Availability window deleted successfully", nil)
}

func (h *AvailabilityHandler) writeAvailabilityError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor profile not found")
	case usecase.ErrWindowNotFound:
		response.NotFound(w, "Availability window not found")
	case usecase.ErrInvalidDay, usecase.ErrInvalidTime, usecase.ErrInvalidTimeRange:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

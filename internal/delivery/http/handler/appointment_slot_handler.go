package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/response"
	"clinic-scheduling-api/pkg/validator"
)

// AppointmentSlotHandler manages explicit date-specific slot overrides.
type AppointmentSlotHandler struct {
	slotUsecase usecase.AppointmentSlotUsecase
	validator   *validator.CustomValidator
}

func NewAppointmentSlotHandler(slotUsecase usecase.AppointmentSlotUsecase, validator *validator.CustomValidator) *AppointmentSlotHandler {
	return &AppointmentSlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

func (h *AppointmentSlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.CreateSlot(r.Context(), &req)
	if err != nil {
		h.writeSlotError(w, err, "Failed to create slot")
		return
	}

	response.Success(w, http.StatusCreated, "Slot created successfully", slot)
}

func (h *AppointmentSlotHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateAppointmentSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.UpdateSlot(r.Context(), id, &req)
	if err != nil {
		h.writeSlotError(w, err, "Failed to update slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot updated successfully", slot)
}

func (h *AppointmentSlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.slotUsecase.DeleteSlot(r.Context(), id); err != nil {
		h.writeSlotError(w, err, "Failed to delete slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot deleted successfully", nil)
}

// ListSlots lists the authenticated doctor's explicit slots for a date.
func (h *AppointmentSlotHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter date is required", nil)
		return
	}

	slots, err := h.slotUsecase.ListSlots(r.Context(), date)
	if err != nil {
		h.writeSlotError(w, err, "Failed to list slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *AppointmentSlotHandler) writeSlotError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrSlotNotFound:
		response.NotFound(w, "Slot not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrSlotNotOwned:
		response.Forbidden(w, "Slot does not belong to you")
	case usecase.ErrSlotAlreadyExists:
		response.Conflict(w, "A slot already exists for this doctor, date and start time")
	case usecase.ErrInvalidDate, usecase.ErrInvalidTime, usecase.ErrInvalidTimeRange:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

package handler

import (
	"net/http"

	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase) *SlotHandler {
	return &SlotHandler{slotUsecase: slotUsecase}
}

// GetAvailableSlots returns the computed day view for one doctor,
// including fully-booked and past slots. The doctor comes either from
// the path ({id}) or the doctor_id query parameter.
func (h *SlotHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	if raw == "" {
		raw = r.URL.Query().Get("doctor_id")
	}
	doctorID, err := uuid.Parse(raw)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter date is required", nil)
		return
	}

	slots, err := h.slotUsecase.GetAvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

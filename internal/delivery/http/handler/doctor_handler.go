package handler

import (
	"net/http"

	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/response"
)

// DoctorHandler is the public clinic directory.
type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase) *DoctorHandler {
	return &DoctorHandler{doctorUsecase: doctorUsecase}
}

func (h *DoctorHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.doctorUsecase.ListDepartments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list departments")
		return
	}

	response.Success(w, http.StatusOK, "Departments retrieved successfully", departments)
}

func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.ListDoctors(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

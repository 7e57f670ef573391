package dto

import (
	"time"

	"github.com/google/uuid"
)

type DoctorResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email,omitempty"`
	FullName        string    `json:"full_name"`
	LicenseNumber   string    `json:"license_number,omitempty"`
	Specialization  string    `json:"specialization"`
	Department      string    `json:"department"`
	Biography       string    `json:"biography,omitempty"`
	ConsultationFee string    `json:"consultation_fee"`
	IsAvailable     bool      `json:"is_available"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type DepartmentResponse struct {
	Name         string `json:"name"`
	DoctorsCount int    `json:"doctors_count"`
}

type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

type PatientProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	Address     string    `json:"address,omitempty"`
}

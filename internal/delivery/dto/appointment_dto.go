package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	// PatientID is required when a doctor or admin books on behalf of
	// a patient; patients book for themselves.
	PatientID *uuid.UUID `json:"patient_id" validate:"omitempty"`

	// One of DoctorID or Department must be set.
	DoctorID   *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	Department string     `json:"department" validate:"omitempty"`

	AppointmentDate string `json:"appointment_date" validate:"required"` // Format: YYYY-MM-DD
	AppointmentTime string `json:"appointment_time" validate:"required"` // Format: HH:MM
	AppointmentType string `json:"appointment_type" validate:"required"`
	Reason          string `json:"reason" validate:"required"`
	Notes           string `json:"notes" validate:"omitempty"`
}

type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellation_reason" validate:"omitempty"`
}

type RescheduleAppointmentRequest struct {
	NewDate          string `json:"new_date" validate:"required"` // Format: YYYY-MM-DD
	NewTime          string `json:"new_time" validate:"required"` // Format: HH:MM
	RescheduleReason string `json:"reschedule_reason" validate:"omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status      string `json:"status" validate:"required"`
	DoctorNotes string `json:"doctor_notes" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID               uuid.UUID       `json:"id"`
	PatientID        uuid.UUID       `json:"patient_id"`
	DoctorID         uuid.UUID       `json:"doctor_id"`
	Doctor           *DoctorResponse `json:"doctor,omitempty"`
	PatientName      string          `json:"patient_name,omitempty"`
	AppointmentDate  string          `json:"appointment_date"`
	AppointmentTime  string          `json:"appointment_time"`
	Duration         int             `json:"duration"`
	AppointmentType  string          `json:"appointment_type"`
	Status           string          `json:"status"`
	Reason           string          `json:"reason"`
	DoctorNotes      string          `json:"doctor_notes,omitempty"`
	ConfirmationCode string          `json:"confirmation_code"`
	ConsultationFee  string          `json:"consultation_fee"`
	IsPaid           bool            `json:"is_paid"`

	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	RescheduleReason   string     `json:"reschedule_reason,omitempty"`
	RescheduledAt      *time.Time `json:"rescheduled_at,omitempty"`
	TreatmentStart     *time.Time `json:"treatment_start,omitempty"`
	TreatmentEnd       *time.Time `json:"treatment_end,omitempty"`
	ActualDuration     *int       `json:"actual_duration,omitempty"`

	CanBeCancelled bool `json:"can_be_cancelled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

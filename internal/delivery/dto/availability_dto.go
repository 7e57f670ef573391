package dto

import "github.com/google/uuid"

// Working hours and the weekly availability template.

type WorkingDayRequest struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"start_time" validate:"omitempty"` // Format: HH:MM
	EndTime   string `json:"end_time" validate:"omitempty"`   // Format: HH:MM
	Available bool   `json:"available"`
	Active    bool   `json:"active"`
}

type UpdateWorkingHoursRequest struct {
	IsAvailable      *bool               `json:"is_available" validate:"omitempty"`
	DefaultStartTime string              `json:"default_start_time" validate:"omitempty"` // Format: HH:MM
	DefaultEndTime   string              `json:"default_end_time" validate:"omitempty"`   // Format: HH:MM
	WorkingDays      []WorkingDayRequest `json:"working_days" validate:"omitempty,dive"`
}

type AvailabilityWindowRequest struct {
	DayOfWeek   string `json:"day_of_week" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime   string `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime     string `json:"end_time" validate:"required"`   // Format: HH:MM
	IsAvailable *bool  `json:"is_available" validate:"omitempty"`
}

type ReplaceAvailabilityRequest struct {
	Windows []AvailabilityWindowRequest `json:"windows" validate:"required,dive"`
}

type AvailabilityWindowResponse struct {
	ID          uuid.UUID `json:"id"`
	DayOfWeek   string    `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}

type WorkingHoursResponse struct {
	DoctorID         uuid.UUID                    `json:"doctor_id"`
	IsAvailable      bool                         `json:"is_available"`
	DefaultStartTime string                       `json:"default_start_time"`
	DefaultEndTime   string                       `json:"default_end_time"`
	WorkingDays      []WorkingDayRequest          `json:"working_days"`
	Windows          []AvailabilityWindowResponse `json:"availability_windows"`
}

// Explicit per-date slot administration.

type CreateAppointmentSlotRequest struct {
	DoctorID        *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	Date            string     `json:"date" validate:"required"`       // Format: YYYY-MM-DD
	StartTime       string     `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime         string     `json:"end_time" validate:"required"`   // Format: HH:MM
	IsAvailable     *bool      `json:"is_available" validate:"omitempty"`
	MaxAppointments int        `json:"max_appointments" validate:"omitempty,min=1"`
}

type UpdateAppointmentSlotRequest struct {
	StartTime       string `json:"start_time" validate:"omitempty"`
	EndTime         string `json:"end_time" validate:"omitempty"`
	IsAvailable     *bool  `json:"is_available" validate:"omitempty"`
	MaxAppointments int    `json:"max_appointments" validate:"omitempty,min=1"`
}

type AppointmentSlotResponse struct {
	ID              uuid.UUID `json:"id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	IsAvailable     bool      `json:"is_available"`
	MaxAppointments int       `json:"max_appointments"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentSlot is an explicit date-specific slot override. When a
// row exists for a (doctor, date, start_time) key it is the
// authoritative capacity and availability source for that time,
// taking precedence over window-derived defaults.
type AppointmentSlot struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_appointment_slots_doctor_date_start" json:"doctor_id"`
	Date            time.Time `gorm:"type:date;not null;uniqueIndex:uq_appointment_slots_doctor_date_start" json:"date"`
	StartTime       string    `gorm:"type:time;not null;uniqueIndex:uq_appointment_slots_doctor_date_start" json:"start_time"`
	EndTime         string    `gorm:"type:time;not null" json:"end_time"`
	IsAvailable     bool      `gorm:"not null;default:true" json:"is_available"`
	MaxAppointments int       `gorm:"not null;default:1" json:"max_appointments"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AppointmentSlot) TableName() string {
	return "appointment_slots"
}

// Capacity returns the effective capacity of the slot, never below 1.
func (s *AppointmentSlot) Capacity() int {
	if s.MaxAppointments < 1 {
		return 1
	}
	return s.MaxAppointments
}

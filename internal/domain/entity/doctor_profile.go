package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data, including the
// availability configuration consumed by the slot engine: fallback
// daily hours plus the working-days list.
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Department      string          `gorm:"type:varchar(100);not null;index" json:"department"`
	Biography       string          `gorm:"type:text" json:"biography,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`

	// IsAvailable gates the working-days fallback: slots derived from
	// working days inherit this flag when no explicit slot overrides it.
	IsAvailable bool `gorm:"not null;default:true" json:"is_available"`

	// Fallback daily hours, "HH:MM". Working-day entries without their
	// own times inherit these.
	DefaultStartTime string `gorm:"type:time;default:'09:00'" json:"default_start_time"`
	DefaultEndTime   string `gorm:"type:time;default:'19:00'" json:"default_end_time"`

	// WorkingDays is the doctor-level weekly fallback, used when no
	// availability window exists for a weekday.
	WorkingDays WorkingDayList `gorm:"type:jsonb" json:"working_days,omitempty"`

	// Relationships
	User                User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AvailabilityWindows []AvailabilityWindow `gorm:"foreignKey:DoctorID" json:"availability_windows,omitempty"`
	Slots               []AppointmentSlot    `gorm:"foreignKey:DoctorID" json:"slots,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow is a weekly recurring time window for a doctor,
// keyed by weekday. Multiple windows per day are allowed (morning and
// evening blocks); overlapping windows are not merged, the slot engine
// deduplicates generated times instead.
type AvailabilityWindow struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index:idx_availability_windows_doctor_day" json:"doctor_id"`
	DayOfWeek   string    `gorm:"type:varchar(10);not null;index:idx_availability_windows_doctor_day" json:"day_of_week"`
	StartTime   string    `gorm:"type:time;not null" json:"start_time"`
	EndTime     string    `gorm:"type:time;not null" json:"end_time"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilityWindow) TableName() string {
	return "availability_windows"
}

package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled   AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusInProgress  AppointmentStatus = "in_progress"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusNoShow      AppointmentStatus = "no_show"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

// AppointmentType categorizes the visit
type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeFollowUp     AppointmentType = "follow_up"
	AppointmentTypeCheckUp      AppointmentType = "check_up"
	AppointmentTypeEmergency    AppointmentType = "emergency"
	AppointmentTypeProcedure    AppointmentType = "procedure"
	AppointmentTypeTherapy      AppointmentType = "therapy"
)

// ActiveStatuses are the statuses that occupy slot capacity.
// The booking ledger counts exactly these when computing booked counts
// and enforcing capacity at write time.
var ActiveStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
	AppointmentStatusInProgress,
}

// validTransitions is the booking state machine. Terminal states
// (completed, cancelled, no_show) have no outgoing edges. A
// rescheduled appointment behaves like a scheduled one.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
		AppointmentStatusRescheduled,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusInProgress,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
		AppointmentStatusRescheduled,
	},
	AppointmentStatusRescheduled: {
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
		AppointmentStatusRescheduled,
	},
	AppointmentStatusInProgress: {
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
	},
	AppointmentStatusCompleted: {},
	AppointmentStatusCancelled: {},
	AppointmentStatusNoShow:    {},
}

// InvalidTransitionError is returned when a status change is not
// permitted by the state machine.
type InvalidTransitionError struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid appointment transition from %q to %q", e.From, e.To)
}

// IsValidStatus reports whether s is a known appointment status.
func IsValidStatus(s AppointmentStatus) bool {
	_, ok := validTransitions[s]
	return ok
}

// Appointment represents a patient booking against a doctor slot.
// Appointments are never physically deleted; cancellation and
// rescheduling are status transitions.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_doctor_date_time" json:"doctor_id"`

	AppointmentDate time.Time         `gorm:"type:date;not null;index:idx_appointments_doctor_date_time" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:time;not null;index:idx_appointments_doctor_date_time" json:"appointment_time"`
	Duration        int               `gorm:"not null;default:60" json:"duration"`
	AppointmentType AppointmentType   `gorm:"type:varchar(20);not null;default:'consultation'" json:"appointment_type"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`

	Reason      string `gorm:"type:text" json:"reason"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`
	DoctorNotes string `gorm:"type:text" json:"doctor_notes,omitempty"`

	ConfirmationCode string `gorm:"type:varchar(20);uniqueIndex" json:"confirmation_code"`

	CancellationReason string     `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	RescheduleReason   string     `gorm:"type:text" json:"reschedule_reason,omitempty"`
	RescheduledAt      *time.Time `json:"rescheduled_at,omitempty"`

	TreatmentStart *time.Time `json:"treatment_start,omitempty"`
	TreatmentEnd   *time.Time `json:"treatment_end,omitempty"`
	ActualDuration *int       `json:"actual_duration,omitempty"`

	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	IsPaid          bool            `gorm:"not null;default:false" json:"is_paid"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive reports whether the appointment currently occupies capacity.
func (a *Appointment) IsActive() bool {
	for _, s := range ActiveStatuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (a *Appointment) IsTerminal() bool {
	return len(validTransitions[a.Status]) == 0 && IsValidStatus(a.Status)
}

// CanTransitionTo reports whether the state machine permits moving to
// the target status.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	for _, s := range validTransitions[a.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the appointment to the target status, returning
// an InvalidTransitionError if the state machine forbids it.
func (a *Appointment) TransitionTo(target AppointmentStatus) error {
	if !a.CanTransitionTo(target) {
		return &InvalidTransitionError{From: a.Status, To: target}
	}
	a.Status = target
	return nil
}

// DateTime combines the appointment date and "HH:MM" time into a
// single instant in loc.
func (a *Appointment) DateTime(loc *time.Location) time.Time {
	t, err := time.Parse("15:04", a.AppointmentTime)
	if err != nil {
		return a.AppointmentDate
	}
	d := a.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

// CanBeCancelled is the advisory cancellation flag: the appointment is
// not terminal and starts more than deadline from now. Whether the
// flag is enforced on the cancel transition is a policy decision made
// by the caller.
func (a *Appointment) CanBeCancelled(now time.Time, deadline time.Duration) bool {
	if a.IsTerminal() {
		return false
	}
	return a.DateTime(now.Location()).Sub(now) > deadline
}

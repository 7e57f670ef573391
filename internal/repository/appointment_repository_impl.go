package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// slotLockKey builds the advisory-lock key serializing all
// booking-affecting writes for one (doctor, date, time) slot.
func slotLockKey(doctorID uuid.UUID, date time.Time, startTime string) string {
	return fmt.Sprintf("slot:%s:%s:%s", doctorID, date.Format("2006-01-02"), normalizeTime(startTime))
}

// normalizeTime reduces "HH:MM:SS" time values to the "HH:MM" key form.
func normalizeTime(s string) string {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return s
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// CreateScheduled serializes the check-then-insert for the slot key
// with a transaction-scoped Postgres advisory lock. Two concurrent
// creates for the same key cannot both pass the capacity count.
func (r *appointmentRepository) CreateScheduled(ctx context.Context, appointment *entity.Appointment, capacity int) error {
	if capacity < 1 {
		capacity = 1
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		key := slotLockKey(appointment.DoctorID, appointment.AppointmentDate, appointment.AppointmentTime)
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return err
		}

		count, err := countActiveAt(tx, appointment.DoctorID, appointment.AppointmentDate, appointment.AppointmentTime, uuid.Nil)
		if err != nil {
			return err
		}
		if count >= int64(capacity) {
			return domainRepo.ErrSlotCapacityExceeded
		}

		return tx.Create(appointment).Error
	})
}

// Reschedule re-runs the capacity check at the new key, excluding the
// record being moved, before persisting the mutation. On conflict the
// stored record is untouched.
func (r *appointmentRepository) Reschedule(ctx context.Context, appointment *entity.Appointment, newDate time.Time, newTime string, capacity int) error {
	if capacity < 1 {
		capacity = 1
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		key := slotLockKey(appointment.DoctorID, newDate, newTime)
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return err
		}

		count, err := countActiveAt(tx, appointment.DoctorID, newDate, newTime, appointment.ID)
		if err != nil {
			return err
		}
		if count >= int64(capacity) {
			return domainRepo.ErrSlotCapacityExceeded
		}

		appointment.AppointmentDate = newDate
		appointment.AppointmentTime = newTime
		return tx.Omit("Patient", "Doctor").Save(appointment).Error
	})
}

func countActiveAt(tx *gorm.DB, doctorID uuid.UUID, date time.Time, startTime string, exclude uuid.UUID) (int64, error) {
	var count int64
	query := tx.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
			doctorID, date.Format("2006-01-02"), startTime, entity.ActiveStatuses)
	if exclude != uuid.Nil {
		query = query.Where("id != ?", exclude)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Omit("Patient", "Doctor").Save(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor.User").Preload("Patient.User").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	appointment.AppointmentTime = normalizeTime(appointment.AppointmentTime)
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	for i := range appointments {
		appointments[i].AppointmentTime = normalizeTime(appointments[i].AppointmentTime)
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient.User").
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date.Format("2006-01-02")).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	for i := range appointments {
		appointments[i].AppointmentTime = normalizeTime(appointments[i].AppointmentTime)
	}
	return appointments, nil
}

// CountActiveByTime feeds the slot engine's booked-count map.
func (r *appointmentRepository) CountActiveByTime(ctx context.Context, doctorID uuid.UUID, date time.Time) (map[string]int, error) {
	type timeCount struct {
		AppointmentTime string
		Count           int
	}
	var rows []timeCount
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Select("appointment_time, COUNT(*) as count").
		Where("doctor_id = ? AND appointment_date = ? AND status IN ?",
			doctorID, date.Format("2006-01-02"), entity.ActiveStatuses).
		Group("appointment_time").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[normalizeTime(row.AppointmentTime)] = row.Count
	}
	return counts, nil
}

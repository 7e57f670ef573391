package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-scheduling-api/config"
	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"
	"clinic-scheduling-api/internal/scheduling"
	"clinic-scheduling-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound        = errors.New("appointment not found")
	ErrAppointmentNotOwned        = errors.New("appointment does not belong to you")
	ErrPatientNotFound            = errors.New("patient not found")
	ErrPatientRequired            = errors.New("patient_id is required when booking on behalf of a patient")
	ErrDoctorOrDepartment         = errors.New("either doctor_id or department is required")
	ErrNoDoctorInDepartment       = errors.New("no available doctor in this department")
	ErrInvalidTime                = errors.New("invalid time format, use HH:MM")
	ErrInvalidAppointmentType     = errors.New("invalid appointment type")
	ErrInvalidStatus              = errors.New("invalid appointment status")
	ErrPastAppointment            = errors.New("cannot book an appointment in the past")
	ErrSlotUnavailable            = errors.New("the selected slot is not open for booking")
	ErrSlotFullyBooked            = errors.New("the selected slot is fully booked")
	ErrCancellationDeadlinePassed = errors.New("cancellation deadline has passed")
)

var validAppointmentTypes = map[entity.AppointmentType]bool{
	entity.AppointmentTypeConsultation: true,
	entity.AppointmentTypeFollowUp:     true,
	entity.AppointmentTypeCheckUp:      true,
	entity.AppointmentTypeEmergency:    true,
	entity.AppointmentTypeProcedure:    true,
	entity.AppointmentTypeTherapy:      true,
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, date string) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	cfg             config.SchedulingConfig
	clock           scheduling.Clock
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientProfileRepository
	slotRepo        repository.AppointmentSlotRepository
	auditService    service.AuditService
	slotCache       *service.SlotCacheService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	cfg config.SchedulingConfig,
	clock scheduling.Clock,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientProfileRepository,
	slotRepo repository.AppointmentSlotRepository,
	auditService service.AuditService,
	slotCache *service.SlotCacheService,
) AppointmentUsecase {
	if clock == nil {
		clock = scheduling.SystemClock()
	}
	return &appointmentUsecase{
		log:             log,
		cfg:             cfg,
		clock:           clock,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		slotRepo:        slotRepo,
		auditService:    auditService,
		slotCache:       slotCache,
	}
}

// CreateAppointment books a slot.
//
// Flow:
// 1. Resolve the patient (self-booking, or on-behalf for staff)
// 2. Resolve the doctor (explicit ID, or first available in department)
// 3. Validate date/time format and reject past instants
// 4. Resolve slot capacity from the explicit slot override, default 1
// 5. Serialized check-then-insert against the booking ledger
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	// Step 1: Resolve patient
	patientID := userID
	if roleID == entity.RoleIDDoctor || roleID == entity.RoleIDAdmin {
		if req.PatientID == nil {
			return nil, ErrPatientRequired
		}
		patientID = *req.PatientID
	}

	patient, err := u.patientRepo.FindByUserID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	// Step 2: Resolve doctor
	doctor, err := u.resolveDoctor(ctx, req.DoctorID, req.Department)
	if err != nil {
		return nil, err
	}

	// Step 3: Validate date, time and type
	day, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	timeKey, err := normalizeClock(req.AppointmentTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	appointmentType := entity.AppointmentType(req.AppointmentType)
	if !validAppointmentTypes[appointmentType] {
		return nil, ErrInvalidAppointmentType
	}

	now := u.clock.Now()
	if !startsInFuture(day, timeKey, now) {
		return nil, ErrPastAppointment
	}

	// Step 4: Resolve capacity from the explicit slot override
	capacity := 1
	slot, err := u.slotRepo.FindByDoctorDateTime(ctx, doctor.UserID, day, timeKey)
	if err != nil {
		u.log.Warnf("Failed to resolve slot override for doctor %s: %+v", doctor.UserID, err)
		return nil, err
	}
	if slot != nil {
		if !slot.IsAvailable {
			return nil, ErrSlotUnavailable
		}
		capacity = slot.Capacity()
	}

	appointment := &entity.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        doctor.UserID,
		AppointmentDate: day,
		AppointmentTime: timeKey,
		Duration:        u.cfg.SlotDurationMinutes,
		AppointmentType: appointmentType,
		Status:          entity.AppointmentStatusScheduled,
		Reason:          req.Reason,
		Notes:           req.Notes,
		ConsultationFee: doctor.ConsultationFee,
	}
	appointment.ConfirmationCode = generateConfirmationCode(appointment.ID, now)

	// Step 5: Capacity-checked insert, serialized per slot key
	if err := u.appointmentRepo.CreateScheduled(ctx, appointment, capacity); err != nil {
		if errors.Is(err, repository.ErrSlotCapacityExceeded) {
			return nil, ErrSlotFullyBooked
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.RecordChange(nil, &userID, entity.AuditActionAppointmentCreate,
		"appointment", appointment.ID.String(), nil, map[string]interface{}{
			"doctor_id": doctor.UserID.String(),
			"date":      req.AppointmentDate,
			"time":      timeKey,
		})
	u.invalidateDay(ctx, doctor.UserID, day)

	u.log.Infof("Appointment created: id=%s, doctor=%s, date=%s, time=%s, code=%s",
		appointment.ID, doctor.UserID, req.AppointmentDate, timeKey, appointment.ConfirmationCode)

	appointment.Doctor = doctor
	return converter.AppointmentToResponse(appointment, now, u.cfg.CancellationDeadline), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment, u.clock.Now(), u.cfg.CancellationDeadline), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, u.clock.Now(), u.cfg.CancellationDeadline),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, date string) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	day := u.clock.Now()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		day = parsed
	}

	appointments, err := u.appointmentRepo.FindByDoctorAndDate(ctx, userID, day)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, u.clock.Now(), u.cfg.CancellationDeadline),
		Total:        len(appointments),
	}, nil
}

// CancelAppointment moves an appointment to cancelled. The deadline is
// advisory unless enforcement is enabled; the state machine check is
// always hard.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	appointment, err := u.findOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	if u.cfg.EnforceCancellationDeadline && !appointment.CanBeCancelled(now, u.cfg.CancellationDeadline) {
		if !appointment.IsTerminal() {
			return nil, ErrCancellationDeadlinePassed
		}
	}

	oldStatus := appointment.Status
	if err := appointment.TransitionTo(entity.AppointmentStatusCancelled); err != nil {
		return nil, err
	}
	appointment.CancellationReason = req.CancellationReason
	appointment.CancelledAt = &now

	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return nil, err
	}

	u.auditService.RecordChange(nil, &userID, entity.AuditActionAppointmentCancel,
		"appointment", id.String(), string(oldStatus), string(appointment.Status))
	u.invalidateDay(ctx, appointment.DoctorID, appointment.AppointmentDate)

	u.log.Infof("Appointment cancelled: id=%s", id)
	return converter.AppointmentToResponse(appointment, now, u.cfg.CancellationDeadline), nil
}

// RescheduleAppointment moves an active appointment to a new date and
// time under the same capacity check as creation. On conflict the
// stored appointment is left untouched.
func (u *appointmentUsecase) RescheduleAppointment(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	appointment, err := u.findOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appointment.CanTransitionTo(entity.AppointmentStatusRescheduled) {
		return nil, &entity.InvalidTransitionError{From: appointment.Status, To: entity.AppointmentStatusRescheduled}
	}

	day, err := time.Parse("2006-01-02", req.NewDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	timeKey, err := normalizeClock(req.NewTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	now := u.clock.Now()
	if !startsInFuture(day, timeKey, now) {
		return nil, ErrPastAppointment
	}

	capacity := 1
	slot, err := u.slotRepo.FindByDoctorDateTime(ctx, appointment.DoctorID, day, timeKey)
	if err != nil {
		u.log.Warnf("Failed to resolve slot override for doctor %s: %+v", appointment.DoctorID, err)
		return nil, err
	}
	if slot != nil {
		if !slot.IsAvailable {
			return nil, ErrSlotUnavailable
		}
		capacity = slot.Capacity()
	}

	oldDate := appointment.AppointmentDate
	oldStatus := appointment.Status

	// The persisted status after a move is a deployment policy: either
	// the appointment re-enters the lifecycle as scheduled, or it keeps
	// the rescheduled tag.
	if err := appointment.TransitionTo(entity.AppointmentStatusRescheduled); err != nil {
		return nil, err
	}
	if u.cfg.ReschedulePolicy == config.RescheduleToScheduled {
		appointment.Status = entity.AppointmentStatusScheduled
	}
	appointment.RescheduleReason = req.RescheduleReason
	appointment.RescheduledAt = &now

	if err := u.appointmentRepo.Reschedule(ctx, appointment, day, timeKey, capacity); err != nil {
		if errors.Is(err, repository.ErrSlotCapacityExceeded) {
			return nil, ErrSlotFullyBooked
		}
		u.log.Warnf("Failed to reschedule appointment %s: %+v", id, err)
		return nil, err
	}

	u.auditService.RecordChange(nil, &userID, entity.AuditActionAppointmentReschedule,
		"appointment", id.String(),
		map[string]interface{}{"date": oldDate.Format("2006-01-02"), "status": string(oldStatus)},
		map[string]interface{}{"date": req.NewDate, "time": timeKey, "status": string(appointment.Status)})
	u.invalidateDay(ctx, appointment.DoctorID, oldDate)
	u.invalidateDay(ctx, appointment.DoctorID, day)

	u.log.Infof("Appointment rescheduled: id=%s, date=%s, time=%s", id, req.NewDate, timeKey)
	return converter.AppointmentToResponse(appointment, now, u.cfg.CancellationDeadline), nil
}

// UpdateAppointmentStatus is the doctor-side lifecycle endpoint. The
// treatment timeline is stamped as a side effect: starting treatment
// records the start instant, completing records the end and the actual
// duration in minutes.
func (u *appointmentUsecase) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	if roleID != entity.RoleIDAdmin && appointment.DoctorID != userID {
		return nil, ErrAppointmentNotOwned
	}

	target := entity.AppointmentStatus(strings.ToLower(req.Status))
	if !entity.IsValidStatus(target) {
		return nil, ErrInvalidStatus
	}

	oldStatus := appointment.Status
	if err := appointment.TransitionTo(target); err != nil {
		return nil, err
	}

	now := u.clock.Now()
	switch target {
	case entity.AppointmentStatusInProgress:
		appointment.TreatmentStart = &now
	case entity.AppointmentStatusCompleted:
		appointment.TreatmentEnd = &now
		if appointment.TreatmentStart != nil {
			minutes := int(now.Sub(*appointment.TreatmentStart).Minutes())
			appointment.ActualDuration = &minutes
		}
	case entity.AppointmentStatusCancelled:
		appointment.CancelledAt = &now
	}
	if req.DoctorNotes != "" {
		appointment.DoctorNotes = req.DoctorNotes
	}

	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", id, err)
		return nil, err
	}

	u.auditService.RecordChange(nil, &userID, entity.AuditActionAppointmentStatus,
		"appointment", id.String(), string(oldStatus), string(target))
	u.invalidateDay(ctx, appointment.DoctorID, appointment.AppointmentDate)

	u.log.Infof("Appointment status updated: id=%s, %s -> %s", id, oldStatus, target)
	return converter.AppointmentToResponse(appointment, now, u.cfg.CancellationDeadline), nil
}

// findOwned loads an appointment and verifies the caller may act on
// it: patients their own bookings, doctors their own schedule, admins
// everything.
func (u *appointmentUsecase) findOwned(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	if roleID == entity.RoleIDAdmin {
		return appointment, nil
	}
	if appointment.PatientID != userID && appointment.DoctorID != userID {
		return nil, ErrAppointmentNotOwned
	}
	return appointment, nil
}

func (u *appointmentUsecase) resolveDoctor(ctx context.Context, doctorID *uuid.UUID, department string) (*entity.DoctorProfile, error) {
	if doctorID != nil {
		doctor, err := u.doctorRepo.FindByUserID(ctx, *doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", *doctorID, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		return doctor, nil
	}

	if department == "" {
		return nil, ErrDoctorOrDepartment
	}

	doctor, err := u.doctorRepo.FindFirstAvailableByDepartment(ctx, department)
	if err != nil {
		u.log.Warnf("Failed to find doctor in department %s: %+v", department, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNoDoctorInDepartment
	}
	return doctor, nil
}

func (u *appointmentUsecase) invalidateDay(ctx context.Context, doctorID uuid.UUID, day time.Time) {
	if u.slotCache != nil {
		u.slotCache.InvalidateDay(ctx, doctorID, day.Format("2006-01-02"))
	}
}

// normalizeClock validates a clock string and returns its "HH:MM" form.
func normalizeClock(s string) (string, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", ErrInvalidTime
}

// startsInFuture reports whether the date+time instant is strictly
// after now. For non-today dates only the date matters.
func startsInFuture(day time.Time, timeKey string, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	target := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	if target.After(today) {
		return true
	}
	if target.Before(today) {
		return false
	}
	t, err := time.Parse("15:04", timeKey)
	if err != nil {
		return false
	}
	return t.Hour()*60+t.Minute() > now.Hour()*60+now.Minute()
}

// generateConfirmationCode builds a human-readable booking reference:
// APT-YYYY-XXXXXX, derived from the appointment ID.
func generateConfirmationCode(id uuid.UUID, now time.Time) string {
	compact := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("APT-%d-%s", now.Year(), strings.ToUpper(compact[len(compact)-6:]))
}

package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"
	"clinic-scheduling-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSlotNotFound      = errors.New("appointment slot not found")
	ErrSlotAlreadyExists = errors.New("a slot already exists for this doctor, date and start time")
	ErrSlotNotOwned      = errors.New("appointment slot does not belong to you")
)

// AppointmentSlotUsecase manages explicit date-specific slot
// overrides. Doctors manage their own slots; admins may manage any
// doctor's by passing doctor_id.
type AppointmentSlotUsecase interface {
	CreateSlot(ctx context.Context, req *dto.CreateAppointmentSlotRequest) (*dto.AppointmentSlotResponse, error)
	UpdateSlot(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentSlotRequest) (*dto.AppointmentSlotResponse, error)
	DeleteSlot(ctx context.Context, id uuid.UUID) error
	ListSlots(ctx context.Context, date string) ([]dto.AppointmentSlotResponse, error)
}

type appointmentSlotUsecase struct {
	log          *logrus.Logger
	slotRepo     repository.AppointmentSlotRepository
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
	slotCache    *service.SlotCacheService
}

func NewAppointmentSlotUsecase(
	log *logrus.Logger,
	slotRepo repository.AppointmentSlotRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	slotCache *service.SlotCacheService,
) AppointmentSlotUsecase {
	return &appointmentSlotUsecase{
		log:          log,
		slotRepo:     slotRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		slotCache:    slotCache,
	}
}

func (u *appointmentSlotUsecase) CreateSlot(ctx context.Context, req *dto.CreateAppointmentSlotRequest) (*dto.AppointmentSlotResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	doctorID := userID
	if roleID == entity.RoleIDAdmin && req.DoctorID != nil {
		doctorID = *req.DoctorID
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	start, err := normalizeClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	end, err := normalizeClock(req.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if start >= end {
		return nil, ErrInvalidTimeRange
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	capacity := req.MaxAppointments
	if capacity < 1 {
		capacity = 1
	}

	slot := &entity.AppointmentSlot{
		ID:              uuid.New(),
		DoctorID:        doctorID,
		Date:            day,
		StartTime:       start,
		EndTime:         end,
		IsAvailable:     available,
		MaxAppointments: capacity,
	}

	if err := u.slotRepo.Create(ctx, slot); err != nil {
		if isDuplicateKeyError(err, "uq_appointment_slots") {
			return nil, ErrSlotAlreadyExists
		}
		u.log.Warnf("Failed to create slot for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.auditService.RecordChange(nil, &userID, entity.AuditActionSlotCreate,
		"appointment_slot", slot.ID.String(), nil, slot)
	u.slotCache.InvalidateDay(ctx, doctorID, day.Format("2006-01-02"))

	u.log.Infof("Slot created: id=%s, doctor=%s, date=%s, start=%s, capacity=%d",
		slot.ID, doctorID, req.Date, start, capacity)
	return converter.AppointmentSlotToResponse(slot), nil
}

func (u *appointmentSlotUsecase) UpdateSlot(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentSlotRequest) (*dto.AppointmentSlotResponse, error) {
	userID, slot, err := u.findOwnedSlot(ctx, id)
	if err != nil {
		return nil, err
	}

	old := *slot
	if req.StartTime != "" {
		start, err := normalizeClock(req.StartTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		slot.StartTime = start
	}
	if req.EndTime != "" {
		end, err := normalizeClock(req.EndTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		slot.EndTime = end
	}
	if slot.StartTime >= slot.EndTime {
		return nil, ErrInvalidTimeRange
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}
	if req.MaxAppointments > 0 {
		slot.MaxAppointments = req.MaxAppointments
	}

	if err := u.slotRepo.Update(ctx, slot); err != nil {
		if isDuplicateKeyError(err, "uq_appointment_slots") {
			return nil, ErrSlotAlreadyExists
		}
		u.log.Warnf("Failed to update slot %s: %+v", id, err)
		return nil, err
	}

	u.auditService.RecordChange(nil, &userID, entity.AuditActionSlotUpdate,
		"appointment_slot", id.String(), old, slot)
	u.slotCache.InvalidateDay(ctx, slot.DoctorID, slot.Date.Format("2006-01-02"))

	return converter.AppointmentSlotToResponse(slot), nil
}

func (u *appointmentSlotUsecase) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	userID, slot, err := u.findOwnedSlot(ctx, id)
	if err != nil {
		return err
	}

	affected, err := u.slotRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete slot %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	u.auditService.RecordChange(nil, &userID, entity.AuditActionSlotDelete,
		"appointment_slot", id.String(), slot, nil)
	u.slotCache.InvalidateDay(ctx, slot.DoctorID, slot.Date.Format("2006-01-02"))

	u.log.Infof("Slot deleted: id=%s, doctor=%s", id, slot.DoctorID)
	return nil
}

func (u *appointmentSlotUsecase) ListSlots(ctx context.Context, date string) ([]dto.AppointmentSlotResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	slots, err := u.slotRepo.FindByDoctorAndDate(ctx, userID, day)
	if err != nil {
		u.log.Warnf("Failed to list slots for doctor %s: %+v", userID, err)
		return nil, err
	}

	return converter.AppointmentSlotsToResponses(slots), nil
}

func (u *appointmentSlotUsecase) findOwnedSlot(ctx context.Context, id uuid.UUID) (uuid.UUID, *entity.AppointmentSlot, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, nil, errors.New("user not found in context")
	}

	slot, err := u.slotRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find slot %s: %+v", id, err)
		return uuid.Nil, nil, err
	}
	if slot == nil {
		return uuid.Nil, nil, ErrSlotNotFound
	}

	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	if roleID != entity.RoleIDAdmin && slot.DoctorID != userID {
		return uuid.Nil, nil, ErrSlotNotOwned
	}
	return userID, slot, nil
}

package usecase

import (
	"context"
	"errors"
	"strings"

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
	ErrWindowNotFound   = errors.New("availability window not found")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrInvalidDay       = errors.New("invalid day of week")
)

var validDays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// AvailabilityUsecase manages a doctor's availability configuration:
// headline working hours, the working-days fallback list and the
// weekly window template.
type AvailabilityUsecase interface {
	GetWorkingHours(ctx context.Context) (*dto.WorkingHoursResponse, error)
	UpdateWorkingHours(ctx context.Context, req *dto.UpdateWorkingHoursRequest) (*dto.WorkingHoursResponse, error)
	ReplaceAvailability(ctx context.Context, req *dto.ReplaceAvailabilityRequest) (*dto.WorkingHoursResponse, error)
	AddAvailabilityWindow(ctx context.Context, req *dto.AvailabilityWindowRequest) (*dto.AvailabilityWindowResponse, error)
	DeleteAvailabilityWindow(ctx context.Context, windowID uuid.UUID) error
}

type availabilityUsecase struct {
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	windowRepo   repository.AvailabilityWindowRepository
	auditService service.AuditService
	slotCache    *service.SlotCacheService
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	windowRepo repository.AvailabilityWindowRepository,
	auditService service.AuditService,
	slotCache *service.SlotCacheService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		log:          log,
		doctorRepo:   doctorRepo,
		windowRepo:   windowRepo,
		auditService: auditService,
		slotCache:    slotCache,
	}
}

func (u *availabilityUsecase) GetWorkingHours(ctx context.Context) (*dto.WorkingHoursResponse, error) {
	doctor, err := u.currentDoctor(ctx)
	if err != nil {
		return nil, err
	}

	windows, err := u.windowRepo.FindByDoctorID(ctx, doctor.UserID)
	if err != nil {
		u.log.Warnf("Failed to load availability windows for doctor %s: %+v", doctor.UserID, err)
		return nil, err
	}

	return converter.WorkingHoursToResponse(doctor, windows), nil
}

func (u *availabilityUsecase) UpdateWorkingHours(ctx context.Context, req *dto.UpdateWorkingHoursRequest) (*dto.WorkingHoursResponse, error) {
	doctor, err := u.currentDoctor(ctx)
	if err != nil {
		return nil, err
	}

	if req.IsAvailable != nil {
		doctor.IsAvailable = *req.IsAvailable
	}
	if req.DefaultStartTime != "" {
		start, err := normalizeClock(req.DefaultStartTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		doctor.DefaultStartTime = start
	}
	if req.DefaultEndTime != "" {
		end, err := normalizeClock(req.DefaultEndTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		doctor.DefaultEndTime = end
	}
	if doctor.DefaultStartTime >= doctor.DefaultEndTime {
		return nil, ErrInvalidTimeRange
	}

	if req.WorkingDays != nil {
		days := make(entity.WorkingDayList, len(req.WorkingDays))
		for i, d := range req.WorkingDays {
			day := strings.ToLower(strings.TrimSpace(d.Day))
			if !validDays[day] {
				return nil, ErrInvalidDay
			}
			start, end := d.StartTime, d.EndTime
			if start != "" {
				if start, err = normalizeClock(start); err != nil {
					return nil, ErrInvalidTime
				}
			}
			if end != "" {
				if end, err = normalizeClock(end); err != nil {
					return nil, ErrInvalidTime
				}
			}
			if start != "" && end != "" && start >= end {
				return nil, ErrInvalidTimeRange
			}
			days[i] = entity.WorkingDay{
				Day:       day,
				StartTime: start,
				EndTime:   end,
				Available: d.Available,
				Active:    d.Active,
			}
		}
		doctor.WorkingDays = days
	}

	if err := u.doctorRepo.UpdateSchedule(ctx, doctor); err != nil {
		u.log.Warnf("Failed to update working hours for doctor %s: %+v", doctor.UserID, err)
		return nil, err
	}

	u.auditService.RecordChange(nil, &doctor.UserID, entity.AuditActionWorkingHoursUpdate,
		"doctor_profile", doctor.UserID.String(), nil, map[string]interface{}{
			"is_available":       doctor.IsAvailable,
			"default_start_time": doctor.DefaultStartTime,
			"default_end_time":   doctor.DefaultEndTime,
		})
	u.slotCache.InvalidateDoctor(ctx, doctor.UserID)

	u.log.Infof("Working hours updated: doctor=%s", doctor.UserID)
	return u.GetWorkingHours(ctx)
}

func (u *availabilityUsecase) ReplaceAvailability(ctx context.Context, req *dto.ReplaceAvailabilityRequest) (*dto.WorkingHoursResponse, error) {
	doctor, err := u.currentDoctor(ctx)
	if err != nil {
		return nil, err
	}

	windows := make([]entity.AvailabilityWindow, len(req.Windows))
	for i, w := range req.Windows {
		window, err := u.buildWindow(doctor.UserID, &w)
		if err != nil {
			return nil, err
		}
		windows[i] = *window
	}

	if err := u.windowRepo.ReplaceForDoctor(ctx, doctor.UserID, windows); err != nil {
		u.log.Warnf("Failed to replace availability for doctor %s: %+v", doctor.UserID, err)
		return nil, err
	}

	u.syncWorkingDays(ctx, doctor)

	u.auditService.RecordChange(nil, &doctor.UserID, entity.AuditActionAvailabilityUpdate,
		"availability_window", doctor.UserID.String(), nil, map[string]interface{}{
			"windows": len(windows),
		})
	u.slotCache.InvalidateDoctor(ctx, doctor.UserID)

	u.log.Infof("Availability template replaced: doctor=%s, windows=%d", doctor.UserID, len(windows))
	return u.GetWorkingHours(ctx)
}

func (u *availabilityUsecase) AddAvailabilityWindow(ctx context.Context, req *dto.AvailabilityWindowRequest) (*dto.AvailabilityWindowResponse, error) {
	doctor, err := u.currentDoctor(ctx)
	if err != nil {
		return nil, err
	}

	window, err := u.buildWindow(doctor.UserID, req)
	if err != nil {
		return nil, err
	}
	window.ID = uuid.New()

	if err := u.windowRepo.Create(ctx, window); err != nil {
		u.log.Warnf("Failed to create availability window for doctor %s: %+v", doctor.UserID, err)
		return nil, err
	}

	u.syncWorkingDays(ctx, doctor)

	u.auditService.RecordChange(nil, &doctor.UserID, entity.AuditActionAvailabilityUpdate,
		"availability_window", window.ID.String(), nil, window)
	u.slotCache.InvalidateDoctor(ctx, doctor.UserID)

	return converter.AvailabilityWindowToResponse(window), nil
}

func (u *availabilityUsecase) DeleteAvailabilityWindow(ctx context.Context, windowID uuid.UUID) error {
	doctor, err := u.currentDoctor(ctx)
	if err != nil {
		return err
	}

	affected, err := u.windowRepo.Delete(ctx, doctor.UserID, windowID)
	if err != nil {
		u.log.Warnf("Failed to delete availability window %s: %+v", windowID, err)
		return err
	}
	if affected == 0 {
		return ErrWindowNotFound
	}

	u.syncWorkingDays(ctx, doctor)

	u.auditService.RecordChange(nil, &doctor.UserID, entity.AuditActionAvailabilityUpdate,
		"availability_window", windowID.String(), windowID.String(), nil)
	u.slotCache.InvalidateDoctor(ctx, doctor.UserID)

	return nil
}

// syncWorkingDays rebuilds the doctor's working-days fallback from the
// weekly window template: one entry per weekday that has at least one
// available window, spanning the earliest start to the latest end.
// Best effort; window edits succeed even if the resync fails.
func (u *availabilityUsecase) syncWorkingDays(ctx context.Context, doctor *entity.DoctorProfile) {
	windows, err := u.windowRepo.FindByDoctorID(ctx, doctor.UserID)
	if err != nil {
		u.log.Warnf("Failed to resync working days for doctor %s: %+v", doctor.UserID, err)
		return
	}

	spans := make(map[string]*entity.WorkingDay)
	var order []string
	for _, w := range windows {
		if !w.IsAvailable {
			continue
		}
		day := strings.ToLower(w.DayOfWeek)
		span, ok := spans[day]
		if !ok {
			spans[day] = &entity.WorkingDay{
				Day:       day,
				StartTime: w.StartTime,
				EndTime:   w.EndTime,
				Available: true,
				Active:    true,
			}
			order = append(order, day)
			continue
		}
		if w.StartTime < span.StartTime {
			span.StartTime = w.StartTime
		}
		if w.EndTime > span.EndTime {
			span.EndTime = w.EndTime
		}
	}

	days := make(entity.WorkingDayList, len(order))
	for i, day := range order {
		days[i] = *spans[day]
	}
	doctor.WorkingDays = days

	if err := u.doctorRepo.UpdateSchedule(ctx, doctor); err != nil {
		u.log.Warnf("Failed to persist working days for doctor %s: %+v", doctor.UserID, err)
	}
}

func (u *availabilityUsecase) currentDoctor(ctx context.Context) (*entity.DoctorProfile, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", userID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func (u *availabilityUsecase) buildWindow(doctorID uuid.UUID, req *dto.AvailabilityWindowRequest) (*entity.AvailabilityWindow, error) {
	day := strings.ToLower(strings.TrimSpace(req.DayOfWeek))
	if !validDays[day] {
		return nil, ErrInvalidDay
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

	return &entity.AvailabilityWindow{
		DoctorID:    doctorID,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}, nil
}

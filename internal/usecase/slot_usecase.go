package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/repository"
	"clinic-scheduling-api/internal/scheduling"
	"clinic-scheduling-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrInvalidDate    = errors.New("invalid date format, use YYYY-MM-DD")
)

type SlotUsecase interface {
	// GetAvailableSlots computes the public day view for one doctor
	// and date: every slot the configuration generates, including
	// fully-booked and past ones.
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error)
}

type slotUsecase struct {
	log             *logrus.Logger
	engine          *scheduling.Engine
	doctorRepo      repository.DoctorRepository
	windowRepo      repository.AvailabilityWindowRepository
	slotRepo        repository.AppointmentSlotRepository
	appointmentRepo repository.AppointmentRepository
	slotCache       *service.SlotCacheService
}

func NewSlotUsecase(
	log *logrus.Logger,
	engine *scheduling.Engine,
	doctorRepo repository.DoctorRepository,
	windowRepo repository.AvailabilityWindowRepository,
	slotRepo repository.AppointmentSlotRepository,
	appointmentRepo repository.AppointmentRepository,
	slotCache *service.SlotCacheService,
) SlotUsecase {
	return &slotUsecase{
		log:             log,
		engine:          engine,
		doctorRepo:      doctorRepo,
		windowRepo:      windowRepo,
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		slotCache:       slotCache,
	}
}

func (u *slotUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	date = day.Format("2006-01-02")

	// Cached views for future dates only: today's view depends on the
	// current time, which shifts past-time slots to booked.
	cacheable := day.After(time.Now().Truncate(24 * time.Hour))
	if cacheable && u.slotCache != nil {
		if cached := u.slotCache.Get(ctx, doctorID, date); cached != nil {
			return cached, nil
		}
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	dayOfWeek := day.Weekday().String()

	windows, err := u.windowRepo.FindAvailableByDoctorAndDay(ctx, doctorID, dayOfWeek)
	if err != nil {
		u.log.Warnf("Failed to load availability windows for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	explicitSlots, err := u.slotRepo.FindByDoctorAndDate(ctx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load explicit slots for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	bookedCounts, err := u.appointmentRepo.CountActiveByTime(ctx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load booked counts for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	schedule := u.engine.ComputeDaySlots(scheduling.DayInput{
		Date:          day,
		Doctor:        doctor,
		Windows:       windows,
		ExplicitSlots: explicitSlots,
		BookedCounts:  bookedCounts,
	})

	response := converter.DayScheduleToResponse(doctor, schedule)

	if cacheable && u.slotCache != nil {
		u.slotCache.Set(ctx, doctorID, date, response)
	}

	return response, nil
}

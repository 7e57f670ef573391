package converter

import (
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/scheduling"
)

// DayScheduleToResponse converts a computed day view to the public
// slot listing DTO.
func DayScheduleToResponse(doctor *entity.DoctorProfile, schedule scheduling.DaySchedule) *dto.AvailableSlotsResponse {
	slots := make([]dto.SlotResponse, len(schedule.Slots))
	for i, s := range schedule.Slots {
		slots[i] = dto.SlotResponse{
			ID:                  s.ID,
			Time:                s.Time,
			StartTime:           s.StartTime,
			EndTime:             s.EndTime,
			Status:              s.Status,
			IsAvailable:         s.IsAvailable,
			IsFullyBooked:       s.IsFullyBooked,
			CurrentAppointments: s.CurrentAppointments,
			MaxAppointments:     s.MaxAppointments,
			RemainingCapacity:   s.RemainingCapacity,
		}
	}

	response := &dto.AvailableSlotsResponse{
		Date:      schedule.Date,
		DayOfWeek: schedule.DayOfWeek,
		Slots:     slots,
	}
	if d := DoctorProfileToResponse(doctor); d != nil {
		response.Doctor = *d
	}
	return response
}

// AppointmentSlotToResponse converts an explicit slot row to its DTO.
func AppointmentSlotToResponse(slot *entity.AppointmentSlot) *dto.AppointmentSlotResponse {
	if slot == nil {
		return nil
	}
	return &dto.AppointmentSlotResponse{
		ID:              slot.ID,
		DoctorID:        slot.DoctorID,
		Date:            slot.Date.Format("2006-01-02"),
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		IsAvailable:     slot.IsAvailable,
		MaxAppointments: slot.MaxAppointments,
	}
}

// AppointmentSlotsToResponses converts a slice of explicit slot rows.
func AppointmentSlotsToResponses(slots []entity.AppointmentSlot) []dto.AppointmentSlotResponse {
	responses := make([]dto.AppointmentSlotResponse, len(slots))
	for i := range slots {
		resp := AppointmentSlotToResponse(&slots[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

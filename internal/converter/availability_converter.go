package converter

import (
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
)

// AvailabilityWindowToResponse converts a weekly window entity to its DTO.
func AvailabilityWindowToResponse(window *entity.AvailabilityWindow) *dto.AvailabilityWindowResponse {
	if window == nil {
		return nil
	}
	return &dto.AvailabilityWindowResponse{
		ID:          window.ID,
		DayOfWeek:   window.DayOfWeek,
		StartTime:   window.StartTime,
		EndTime:     window.EndTime,
		IsAvailable: window.IsAvailable,
	}
}

// AvailabilityWindowsToResponses converts a slice of weekly window entities.
func AvailabilityWindowsToResponses(windows []entity.AvailabilityWindow) []dto.AvailabilityWindowResponse {
	responses := make([]dto.AvailabilityWindowResponse, len(windows))
	for i := range windows {
		resp := AvailabilityWindowToResponse(&windows[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// WorkingHoursToResponse assembles the doctor availability view:
// profile defaults, working days fallback and the weekly template.
func WorkingHoursToResponse(doctor *entity.DoctorProfile, windows []entity.AvailabilityWindow) *dto.WorkingHoursResponse {
	if doctor == nil {
		return nil
	}

	workingDays := make([]dto.WorkingDayRequest, len(doctor.WorkingDays))
	for i, d := range doctor.WorkingDays {
		workingDays[i] = dto.WorkingDayRequest{
			Day:       d.Day,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Available: d.Available,
			Active:    d.Active,
		}
	}

	return &dto.WorkingHoursResponse{
		DoctorID:         doctor.UserID,
		IsAvailable:      doctor.IsAvailable,
		DefaultStartTime: doctor.DefaultStartTime,
		DefaultEndTime:   doctor.DefaultEndTime,
		WorkingDays:      workingDays,
		Windows:          AvailabilityWindowsToResponses(windows),
	}
}

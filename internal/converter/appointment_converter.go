package converter

import (
	"time"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// The can_be_cancelled flag is computed against now and the configured
// cancellation deadline.
func AppointmentToResponse(appointment *entity.Appointment, now time.Time, cancellationDeadline time.Duration) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		AppointmentDate:    appointment.AppointmentDate.Format("2006-01-02"),
		AppointmentTime:    appointment.AppointmentTime,
		Duration:           appointment.Duration,
		AppointmentType:    string(appointment.AppointmentType),
		Status:             string(appointment.Status),
		Reason:             appointment.Reason,
		DoctorNotes:        appointment.DoctorNotes,
		ConfirmationCode:   appointment.ConfirmationCode,
		ConsultationFee:    appointment.ConsultationFee.StringFixed(2),
		IsPaid:             appointment.IsPaid,
		CancellationReason: appointment.CancellationReason,
		CancelledAt:        appointment.CancelledAt,
		RescheduleReason:   appointment.RescheduleReason,
		RescheduledAt:      appointment.RescheduledAt,
		TreatmentStart:     appointment.TreatmentStart,
		TreatmentEnd:       appointment.TreatmentEnd,
		ActualDuration:     appointment.ActualDuration,
		CanBeCancelled:     appointment.CanBeCancelled(now, cancellationDeadline),
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	if appointment.Doctor != nil {
		response.Doctor = DoctorProfileToResponse(appointment.Doctor)
	}
	if appointment.Patient != nil {
		response.PatientName = appointment.Patient.User.FullName
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to
// slice of AppointmentResponse DTOs.
func AppointmentsToResponses(appointments []entity.Appointment, now time.Time, cancellationDeadline time.Duration) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i], now, cancellationDeadline)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

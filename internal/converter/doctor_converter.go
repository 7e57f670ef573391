package converter

import (
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              profile.UserID,
		Email:           profile.User.Email,
		FullName:        profile.User.FullName,
		LicenseNumber:   profile.LicenseNumber,
		Specialization:  profile.Specialization,
		Department:      profile.Department,
		Biography:       profile.Biography,
		ConsultationFee: profile.ConsultationFee.StringFixed(2),
		IsAvailable:     profile.IsAvailable,
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to slice of DoctorResponse DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		resp := DoctorProfileToResponse(&profiles[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// DepartmentsToResponses converts department summaries to DTOs.
func DepartmentsToResponses(departments []repository.DepartmentSummary) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, len(departments))
	for i, d := range departments {
		responses[i] = dto.DepartmentResponse{
			Name:         d.Department,
			DoctorsCount: d.DoctorsCount,
		}
	}
	return responses
}

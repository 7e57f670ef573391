package converter

import (
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Includes DoctorProfile and PatientProfile if they are loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		response.DoctorProfile = &dto.DoctorResponse{
			ID:              user.ID,
			FullName:        user.FullName,
			LicenseNumber:   user.DoctorProfile.LicenseNumber,
			Specialization:  user.DoctorProfile.Specialization,
			Department:      user.DoctorProfile.Department,
			Biography:       user.DoctorProfile.Biography,
			ConsultationFee: user.DoctorProfile.ConsultationFee.StringFixed(2),
			IsAvailable:     user.DoctorProfile.IsAvailable,
		}
	}

	if user.PatientProfile != nil {
		response.PatientProfile = &dto.PatientProfileResponse{
			UserID:      user.PatientProfile.UserID,
			PhoneNumber: user.PatientProfile.PhoneNumber,
			DateOfBirth: user.PatientProfile.DateOfBirth,
			Gender:      user.PatientProfile.Gender,
			Address:     user.PatientProfile.Address,
		}
	}

	return response
}

package usecase

import (
	"context"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DoctorUsecase is the public clinic directory: departments and the
// doctors available in each.
type DoctorUsecase interface {
	ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error)
	ListDoctors(ctx context.Context, department string) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
}

func NewDoctorUsecase(log *logrus.Logger, doctorRepo repository.DoctorRepository) DoctorUsecase {
	return &doctorUsecase{
		log:        log,
		doctorRepo: doctorRepo,
	}
}

func (u *doctorUsecase) ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	departments, err := u.doctorRepo.ListDepartments(ctx)
	if err != nil {
		u.log.Warnf("Failed to list departments: %+v", err)
		return nil, err
	}

	return &dto.DepartmentListResponse{
		Departments: converter.DepartmentsToResponses(departments),
	}, nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context, department string) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.ListAvailableByDepartment(ctx, department)
	if err != nil {
		u.log.Warnf("Failed to list doctors in department %s: %+v", department, err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(doctor), nil
}

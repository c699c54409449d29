package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/caredesk/appointment-service/internal/repositories"
)

const featuredDoctorCount = 4

type doctorService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDoctorService(repo repositories.Repository, logger *slog.Logger) DoctorService {
	return &doctorService{repo: repo, logger: logger}
}

func (s *doctorService) List(ctx context.Context, specialization, query string) (*DoctorListResponse, error) {
	filters := repositories.DoctorFilters{
		Specialization: strings.TrimSpace(specialization),
		Query:          strings.TrimSpace(query),
	}

	doctors, err := s.repo.Doctor().List(ctx, filters)
	if err != nil {
		return nil, err
	}
	specializations, err := s.repo.Doctor().Specializations(ctx)
	if err != nil {
		return nil, err
	}

	resp := &DoctorListResponse{
		Doctors:         make([]DoctorResponse, 0, len(doctors)),
		Specializations: specializations,
	}
	for _, doctor := range doctors {
		resp.Doctors = append(resp.Doctors, toDoctorResponse(doctor))
	}
	if resp.Specializations == nil {
		resp.Specializations = []string{}
	}
	return resp, nil
}

func (s *doctorService) Featured(ctx context.Context) ([]DoctorResponse, error) {
	doctors, err := s.repo.Doctor().ListFeatured(ctx, featuredDoctorCount)
	if err != nil {
		return nil, err
	}
	out := make([]DoctorResponse, 0, len(doctors))
	for _, doctor := range doctors {
		out = append(out, toDoctorResponse(doctor))
	}
	return out, nil
}

func (s *doctorService) Get(ctx context.Context, doctorID uint) (*DoctorResponse, error) {
	doctor, err := s.repo.Doctor().GetByID(ctx, doctorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	resp := toDoctorResponse(doctor)
	return &resp, nil
}

// SetProfileImage stores the uploaded filename on the doctor row and returns
// the previous filename so the caller can delete the orphaned file.
func (s *doctorService) SetProfileImage(ctx context.Context, userID uint, filename string) (string, error) {
	doctor, err := s.repo.Doctor().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrDoctorNotFound
		}
		return "", err
	}

	previous := ""
	if doctor.ProfileImage != nil {
		previous = *doctor.ProfileImage
	}
	doctor.ProfileImage = &filename

	if err := s.repo.Doctor().Update(ctx, doctor); err != nil {
		return "", err
	}
	s.logger.Info("profile image updated", "doctor_id", doctor.ID)
	return previous, nil
}

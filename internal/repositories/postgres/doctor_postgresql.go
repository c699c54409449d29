package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/caredesk/appointment-service/internal/models"
	"github.com/caredesk/appointment-service/internal/repositories"
)

type DoctorPostgreSQL struct {
	db *gorm.DB
}

func NewDoctorPostgreSQL(db *gorm.DB) repositories.DoctorRepository {
	return &DoctorPostgreSQL{db: db}
}

func (r *DoctorPostgreSQL) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *DoctorPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).Preload("User").First(&doctor, id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *DoctorPostgreSQL) GetByUserID(ctx context.Context, userID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *DoctorPostgreSQL) Update(ctx context.Context, doctor *models.Doctor) error {
	if err := r.db.WithContext(ctx).Save(doctor).Error; err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return nil
}

// List returns doctors ordered by specialization then id, optionally filtered
// by exact specialization and a free-text query over the doctor's name,
// username and specialization.
func (r *DoctorPostgreSQL) List(ctx context.Context, filters repositories.DoctorFilters) ([]*models.Doctor, error) {
	query := r.db.WithContext(ctx).Model(&models.Doctor{}).
		Joins("JOIN users ON users.id = doctors.user_id").
		Preload("User")

	if filters.Specialization != "" {
		query = query.Where("doctors.specialization = ?", filters.Specialization)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where(
			"users.full_name ILIKE ? OR users.username ILIKE ? OR doctors.specialization ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var doctors []*models.Doctor
	if err := query.Order("doctors.specialization ASC, doctors.id ASC").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *DoctorPostgreSQL) ListFeatured(ctx context.Context, limit int) ([]*models.Doctor, error) {
	var doctors []*models.Doctor
	err := r.db.WithContext(ctx).Preload("User").
		Order("id ASC").
		Limit(limit).
		Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list featured doctors: %w", err)
	}
	return doctors, nil
}

func (r *DoctorPostgreSQL) Specializations(ctx context.Context) ([]string, error) {
	var specializations []string
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).
		Distinct("specialization").
		Order("specialization ASC").
		Pluck("specialization", &specializations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list specializations: %w", err)
	}
	return specializations, nil
}

func (r *DoctorPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Doctor{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return count, nil
}

package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/caredesk/appointment-service/internal/models"
	"github.com/caredesk/appointment-service/internal/repositories"
)

type ContactPostgreSQL struct {
	db *gorm.DB
}

func NewContactPostgreSQL(db *gorm.DB) repositories.ContactRepository {
	return &ContactPostgreSQL{db: db}
}

func (r *ContactPostgreSQL) Create(ctx context.Context, submission *models.ContactSubmission) error {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create contact submission: %w", err)
	}
	return nil
}

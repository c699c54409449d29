package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/caredesk/appointment-service/internal/models"
)

// IsNotFoundError reports whether err is the store's record-not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports whether err is a unique-constraint violation,
// e.g. from a concurrent booking racing past the pre-insert checks.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// DoctorFilters narrows the doctor listing.
type DoctorFilters struct {
	Specialization string // exact match
	Query          string // free-text over name, username, specialization
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id uint) (*models.Doctor, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error

	List(ctx context.Context, filters DoctorFilters) ([]*models.Doctor, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.Doctor, error)
	Specializations(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error

	// TakenSlots returns the slot labels held by the doctor's active
	// appointments on the given date.
	TakenSlots(ctx context.Context, doctorID uint, date time.Time) ([]string, error)

	DoctorSlotTaken(ctx context.Context, doctorID uint, date time.Time, slot string) (bool, error)
	PatientSlotTaken(ctx context.Context, patientID uint, date time.Time, slot string) (bool, error)

	// Patient dashboard: upcoming are active appointments dated today or
	// later (ascending); past are terminal or dated before today
	// (descending).
	ListUpcomingByPatient(ctx context.Context, patientID uint, today time.Time) ([]*models.Appointment, error)
	ListPastByPatient(ctx context.Context, patientID uint, today time.Time) ([]*models.Appointment, error)

	ListActiveByDoctor(ctx context.Context, doctorID uint) ([]*models.Appointment, error)
	CountActiveByDoctorBetween(ctx context.Context, doctorID uint, from, to time.Time) (int64, error)
}

type ContactRepository interface {
	Create(ctx context.Context, submission *models.ContactSubmission) error
}

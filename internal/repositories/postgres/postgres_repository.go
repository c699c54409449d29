package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/caredesk/appointment-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface.
type PostgreSQLRepository struct {
	db *gorm.DB

	user        repositories.UserRepository
	doctor      repositories.DoctorRepository
	appointment repositories.AppointmentRepository
	contact     repositories.ContactRepository
}

func NewPostgreSQLRepository(db *gorm.DB) repositories.Repository {
	return &PostgreSQLRepository{
		db:          db,
		user:        NewUserPostgreSQL(db),
		doctor:      NewDoctorPostgreSQL(db),
		appointment: NewAppointmentPostgreSQL(db),
		contact:     NewContactPostgreSQL(db),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository               { return r.user }
func (r *PostgreSQLRepository) Doctor() repositories.DoctorRepository           { return r.doctor }
func (r *PostgreSQLRepository) Appointment() repositories.AppointmentRepository { return r.appointment }
func (r *PostgreSQLRepository) Contact() repositories.ContactRepository         { return r.contact }

// WithTransaction executes fn with a Repository bound to a single database
// transaction. Booking relies on this plus the partial unique indexes for its
// atomicity guarantee.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgreSQLRepository(tx))
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// RepositoryManager implements the repositories.RepositoryManager interface.
type RepositoryManager struct {
	db   *gorm.DB
	repo repositories.Repository
}

func NewRepositoryManager(db *gorm.DB) repositories.RepositoryManager {
	return &RepositoryManager{db: db}
}

func (rm *RepositoryManager) Initialize() error {
	if rm.db == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	rm.repo = NewPostgreSQLRepository(rm.db)
	return nil
}

func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return rm.repo.Ping(ctx)
}

func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}
	return rm.repo.Close()
}

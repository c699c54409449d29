package repositories

import "context"

// Repository aggregates the per-entity repositories behind one handle so
// services can run multi-entity work in a single transaction.
type Repository interface {
	User() UserRepository
	Doctor() DoctorRepository
	Appointment() AppointmentRepository
	Contact() ContactRepository

	// WithTransaction runs fn against a transaction-bound Repository; any
	// error rolls the whole transaction back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns repository lifecycle: connection checks on startup
// and graceful shutdown.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

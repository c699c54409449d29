package services

import (
	"log/slog"

	"github.com/caredesk/appointment-service/internal/events"
	"github.com/caredesk/appointment-service/internal/repositories"
	"github.com/caredesk/appointment-service/internal/validator"
)

// serviceManager implements ServiceManager over shared dependencies.
type serviceManager struct {
	authService        AuthService
	doctorService      DoctorService
	bookingService     BookingService
	appointmentService AppointmentService
	dashboardService   DashboardService
	contactService     ContactService
	exportService      ExportService
}

func NewServiceManager(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ServiceManager {
	return &serviceManager{
		authService:        NewAuthService(repo, eventPublisher, logger, v),
		doctorService:      NewDoctorService(repo, logger),
		bookingService:     NewBookingService(repo, eventPublisher, logger, v),
		appointmentService: NewAppointmentService(repo, eventPublisher, logger, v),
		dashboardService:   NewDashboardService(repo, logger),
		contactService:     NewContactService(repo, eventPublisher, logger),
		exportService:      NewExportService(repo, logger),
	}
}

func (m *serviceManager) Auth() AuthService               { return m.authService }
func (m *serviceManager) Doctor() DoctorService           { return m.doctorService }
func (m *serviceManager) Booking() BookingService         { return m.bookingService }
func (m *serviceManager) Appointment() AppointmentService { return m.appointmentService }
func (m *serviceManager) Dashboard() DashboardService     { return m.dashboardService }
func (m *serviceManager) Contact() ContactService         { return m.contactService }
func (m *serviceManager) Export() ExportService           { return m.exportService }

package services

import (
	"context"

	"github.com/caredesk/appointment-service/internal/models"
)

// ===== Request DTOs =====

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=80"`
	Email           string `json:"email" validate:"required,email,max=120"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FullName        string `json:"full_name" validate:"required,max=120"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,max=20"`
	DateOfBirth     string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Role            string `json:"role" validate:"omitempty,oneof=patient doctor"`
}

type LoginRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type ProfileUpdateRequest struct {
	FullName    string `json:"full_name" validate:"required,max=120"`
	Email       string `json:"email" validate:"required,email,max=120"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
}

type BookAppointmentRequest struct {
	DoctorID       uint   `json:"doctor_id" validate:"required"`
	Date           string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"appointment_time" validate:"required,max=20"`
	ReasonForVisit string `json:"reason_for_visit" validate:"required,max=1000"`
}

type NotesRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ===== Response DTOs =====

type UserResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	CreatedAt   string `json:"created_at"`
	LastLogin   string `json:"last_login,omitempty"`
}

type DoctorResponse struct {
	ID                 uint     `json:"id"`
	FullName           string   `json:"full_name"`
	Username           string   `json:"username"`
	Specialization     string   `json:"specialization"`
	Qualifications     string   `json:"qualifications,omitempty"`
	YearsOfExperience  int      `json:"years_of_experience"`
	ConsultationFee    float64  `json:"consultation_fee"`
	AvailableDays      []string `json:"available_days"`
	AvailableTimeSlots []string `json:"available_time_slots"`
	AboutText          string   `json:"about_text,omitempty"`
	ProfileImage       string   `json:"profile_image,omitempty"`
}

type DoctorListResponse struct {
	Doctors         []DoctorResponse `json:"doctors"`
	Specializations []string         `json:"specializations"`
}

type AppointmentResponse struct {
	ID             uint   `json:"id"`
	PatientID      uint   `json:"patient_id"`
	PatientName    string `json:"patient_name,omitempty"`
	DoctorID       uint   `json:"doctor_id"`
	DoctorName     string `json:"doctor_name,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Date           string `json:"appointment_date"`
	Time           string `json:"appointment_time"`
	Status         string `json:"status"`
	ReasonForVisit string `json:"reason_for_visit"`
	Notes          string `json:"notes,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type PatientDashboardResponse struct {
	Upcoming []AppointmentResponse `json:"upcoming"`
	Past     []AppointmentResponse `json:"past"`
}

type DoctorDashboardResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	CountWeek    int64                 `json:"count_week"`
	CountMonth   int64                 `json:"count_month"`
}

// ===== Service interfaces =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error)

	// Login verifies credentials and records last_login. Session creation is
	// the caller's concern.
	Login(ctx context.Context, req *LoginRequest) (*models.User, error)

	GetUser(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *ProfileUpdateRequest) (*UserResponse, error)
}

type DoctorService interface {
	List(ctx context.Context, specialization, query string) (*DoctorListResponse, error)
	Featured(ctx context.Context) ([]DoctorResponse, error)
	Get(ctx context.Context, doctorID uint) (*DoctorResponse, error)
	SetProfileImage(ctx context.Context, userID uint, filename string) (previous string, err error)
}

type BookingService interface {
	// AvailableSlots returns the doctor's open slots for a calendar date.
	// Past dates and off days yield an empty list, not an error.
	AvailableSlots(ctx context.Context, doctorID uint, date string) ([]string, error)

	Book(ctx context.Context, patientID uint, req *BookAppointmentRequest) (*AppointmentResponse, error)
}

type AppointmentService interface {
	Cancel(ctx context.Context, actor *models.User, appointmentID uint) error
	Complete(ctx context.Context, actor *models.User, appointmentID uint) error
	GetNotes(ctx context.Context, actor *models.User, appointmentID uint) (*AppointmentResponse, error)
	UpdateNotes(ctx context.Context, actor *models.User, appointmentID uint, req *NotesRequest) error
}

type DashboardService interface {
	PatientDashboard(ctx context.Context, patientID uint) (*PatientDashboardResponse, error)
	DoctorDashboard(ctx context.Context, userID uint) (*DoctorDashboardResponse, error)
}

type ContactService interface {
	Submit(ctx context.Context, req *ContactRequest) error
}

type ExportService interface {
	// DoctorSchedule renders the doctor's active appointments as an .xlsx
	// workbook and returns its bytes with a download filename.
	DoctorSchedule(ctx context.Context, userID uint) ([]byte, string, error)
}

// ServiceManager wires all services over shared dependencies.
type ServiceManager interface {
	Auth() AuthService
	Doctor() DoctorService
	Booking() BookingService
	Appointment() AppointmentService
	Dashboard() DashboardService
	Contact() ContactService
	Export() ExportService
}

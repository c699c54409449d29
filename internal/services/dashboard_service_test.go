package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/caredesk/appointment-service/internal/models"
)

func addAppointment(repo *fakeRepository, patientID, doctorID uint, date string, slot string, status models.AppointmentStatus) {
	d, _ := time.Parse("2006-01-02", date)
	repo.appointments.Create(context.Background(), &models.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: datatypes.Date(d),
		AppointmentTime: slot,
		Status:          status,
	})
}

func TestPatientDashboardSplit(t *testing.T) {
	repo := newFakeRepository()
	service := &dashboardService{repo: repo, logger: testLogger(), now: fixedClock(testToday)}

	const patientID = 1
	addAppointment(repo, patientID, 1, "2026-03-09", "09:00", models.StatusPending)   // upcoming
	addAppointment(repo, patientID, 1, "2026-03-02", "10:00", models.StatusConfirmed) // today counts as upcoming
	addAppointment(repo, patientID, 1, "2026-02-23", "09:00", models.StatusCompleted) // past by status and date
	addAppointment(repo, patientID, 1, "2026-03-16", "09:00", models.StatusCancelled) // future but terminal
	addAppointment(repo, 2, 1, "2026-03-09", "10:00", models.StatusPending)           // other patient

	resp, err := service.PatientDashboard(context.Background(), patientID)
	if err != nil {
		t.Fatalf("PatientDashboard returned error: %v", err)
	}

	if len(resp.Upcoming) != 2 {
		t.Fatalf("expected 2 upcoming, got %d", len(resp.Upcoming))
	}
	if resp.Upcoming[0].Date != "2026-03-02" {
		t.Errorf("upcoming should be ascending, first is %s", resp.Upcoming[0].Date)
	}

	if len(resp.Past) != 2 {
		t.Fatalf("expected 2 past, got %d", len(resp.Past))
	}
	if resp.Past[0].Date != "2026-03-16" {
		t.Errorf("past should be descending, first is %s", resp.Past[0].Date)
	}
}

func TestDoctorDashboardCounts(t *testing.T) {
	repo := newFakeRepository()
	service := &dashboardService{repo: repo, logger: testLogger(), now: fixedClock(testToday)}
	ctx := context.Background()

	doctorUser := &models.User{Username: "dr", Email: "dr@clinic.test", Role: models.RoleDoctor}
	repo.users.Create(ctx, doctorUser)
	doctor := &models.Doctor{UserID: doctorUser.ID, Specialization: "Cardiology"}
	repo.doctors.Create(ctx, doctor)

	// Week of 2026-03-02 runs Mon 03-02 through Sun 03-08.
	addAppointment(repo, 5, doctor.ID, "2026-03-03", "09:00", models.StatusPending)   // this week + month
	addAppointment(repo, 5, doctor.ID, "2026-03-08", "09:00", models.StatusConfirmed) // this week + month
	addAppointment(repo, 5, doctor.ID, "2026-03-20", "09:00", models.StatusPending)   // month only
	addAppointment(repo, 5, doctor.ID, "2026-04-01", "09:00", models.StatusPending)   // neither
	addAppointment(repo, 5, doctor.ID, "2026-03-04", "09:00", models.StatusCancelled) // inactive

	resp, err := service.DoctorDashboard(ctx, doctorUser.ID)
	if err != nil {
		t.Fatalf("DoctorDashboard returned error: %v", err)
	}

	if resp.CountWeek != 2 {
		t.Errorf("expected week count 2, got %d", resp.CountWeek)
	}
	if resp.CountMonth != 3 {
		t.Errorf("expected month count 3, got %d", resp.CountMonth)
	}
	if len(resp.Appointments) != 4 {
		t.Errorf("expected 4 active appointments, got %d", len(resp.Appointments))
	}
}

func TestDoctorDashboardWithoutProfile(t *testing.T) {
	repo := newFakeRepository()
	service := &dashboardService{repo: repo, logger: testLogger(), now: fixedClock(testToday)}

	_, err := service.DoctorDashboard(context.Background(), 42)
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		day       string
		wantStart string
		wantEnd   string
	}{
		{"2026-03-02", "2026-03-02", "2026-03-08"}, // Monday
		{"2026-03-05", "2026-03-02", "2026-03-08"}, // Thursday
		{"2026-03-08", "2026-03-02", "2026-03-08"}, // Sunday belongs to the same week
	}
	for _, tt := range tests {
		day, _ := time.Parse("2006-01-02", tt.day)
		start, end := weekBounds(day)
		if start.Format("2006-01-02") != tt.wantStart || end.Format("2006-01-02") != tt.wantEnd {
			t.Errorf("weekBounds(%s) = %s..%s, want %s..%s",
				tt.day, start.Format("2006-01-02"), end.Format("2006-01-02"), tt.wantStart, tt.wantEnd)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		day       string
		wantStart string
		wantEnd   string
	}{
		{"2026-03-15", "2026-03-01", "2026-03-31"},
		{"2026-02-10", "2026-02-01", "2026-02-28"},
		{"2024-02-10", "2024-02-01", "2024-02-29"}, // leap year
		{"2026-12-31", "2026-12-01", "2026-12-31"},
	}
	for _, tt := range tests {
		day, _ := time.Parse("2006-01-02", tt.day)
		start, end := monthBounds(day)
		if start.Format("2006-01-02") != tt.wantStart || end.Format("2006-01-02") != tt.wantEnd {
			t.Errorf("monthBounds(%s) = %s..%s, want %s..%s",
				tt.day, start.Format("2006-01-02"), end.Format("2006-01-02"), tt.wantStart, tt.wantEnd)
		}
	}
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/caredesk/appointment-service/internal/events"
	"github.com/caredesk/appointment-service/internal/models"
	"github.com/caredesk/appointment-service/internal/validator"
)

func newAuthFixture(t *testing.T) (*authService, *fakeRepository, *events.MockEventPublisher) {
	t.Helper()

	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := &authService{
		repo:           repo,
		eventPublisher: publisher,
		logger:         testLogger(),
		validator:      validator.New(),
		now:            fixedClock(testToday),
	}
	return service, repo, publisher
}

func validRegistration() *RegisterRequest {
	return &RegisterRequest{
		Username:        "newpatient",
		Email:           "new@clinic.test",
		Password:        "longenough",
		ConfirmPassword: "longenough",
		FullName:        "New Patient",
	}
}

func TestRegisterPatient(t *testing.T) {
	service, repo, publisher := newAuthFixture(t)

	resp, err := service.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.Role != string(models.RolePatient) {
		t.Errorf("default role should be patient, got %s", resp.Role)
	}

	user := repo.users.users[resp.ID]
	if user == nil {
		t.Fatal("user not stored")
	}
	if user.PasswordHash == "longenough" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if !user.CheckPassword("longenough") {
		t.Error("stored hash does not verify")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventUserRegistered {
		t.Errorf("expected one %s event", events.EventUserRegistered)
	}
}

func TestRegisterDoctorGetsDefaultProfile(t *testing.T) {
	service, repo, _ := newAuthFixture(t)

	req := validRegistration()
	req.Username = "newdoctor"
	req.Email = "doc@clinic.test"
	req.Role = "doctor"

	resp, err := service.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	doctor, err := repo.doctors.GetByUserID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("doctor profile missing: %v", err)
	}
	if doctor.Specialization != "General Practice" {
		t.Errorf("expected default specialization, got %s", doctor.Specialization)
	}
	if !doctor.AvailableDays.Contains("Mon") || !doctor.AvailableDays.Contains("Fri") {
		t.Errorf("unexpected default days %v", doctor.AvailableDays)
	}
	if !doctor.AvailableTimeSlots.Contains("14:00") {
		t.Errorf("unexpected default slots %v", doctor.AvailableTimeSlots)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	service, _, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	t.Run("username taken", func(t *testing.T) {
		req := validRegistration()
		req.Email = "other@clinic.test"
		if _, err := service.Register(ctx, req); !errors.Is(err, ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("email taken", func(t *testing.T) {
		req := validRegistration()
		req.Username = "someoneelse"
		if _, err := service.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestRegisterValidation(t *testing.T) {
	service, _, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"short username", func(r *RegisterRequest) { r.Username = "ab" }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "short"; r.ConfirmPassword = "short" }},
		{"password mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "different1" }},
		{"missing full name", func(r *RegisterRequest) { r.FullName = "" }},
		{"bad date of birth", func(r *RegisterRequest) { r.DateOfBirth = "31-12-1990" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.mutate(req)

			_, err := service.Register(ctx, req)
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	service, _, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	t.Run("success stamps last login", func(t *testing.T) {
		user, err := service.Login(ctx, &LoginRequest{Username: "newpatient", Password: "longenough"})
		if err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		if user.LastLogin == nil {
			t.Error("last login not recorded")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Username: "newpatient", Password: "wrongwrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user looks the same", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Username: "ghost", Password: "whatever1"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	service, repo, _ := newAuthFixture(t)
	ctx := context.Background()

	first, err := service.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	second := validRegistration()
	second.Username = "second"
	second.Email = "second@clinic.test"
	if _, err := service.Register(ctx, second); err != nil {
		t.Fatalf("second registration failed: %v", err)
	}

	t.Run("updates fields", func(t *testing.T) {
		resp, err := service.UpdateProfile(ctx, first.ID, &ProfileUpdateRequest{
			FullName:    "Renamed Patient",
			Email:       "renamed@clinic.test",
			PhoneNumber: "  555-0101  ",
		})
		if err != nil {
			t.Fatalf("UpdateProfile returned error: %v", err)
		}
		if resp.FullName != "Renamed Patient" || resp.Email != "renamed@clinic.test" {
			t.Errorf("unexpected response %+v", resp)
		}
		if resp.PhoneNumber != "555-0101" {
			t.Errorf("phone should be trimmed, got %q", resp.PhoneNumber)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := service.UpdateProfile(ctx, first.ID, &ProfileUpdateRequest{
			FullName: "Renamed Patient",
			Email:    "second@clinic.test",
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("keeping own email is fine", func(t *testing.T) {
		user := repo.users.users[first.ID]
		_, err := service.UpdateProfile(ctx, first.ID, &ProfileUpdateRequest{
			FullName: "Renamed Again",
			Email:    user.Email,
		})
		if err != nil {
			t.Fatalf("UpdateProfile returned error: %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.UpdateProfile(ctx, 999, &ProfileUpdateRequest{
			FullName: "Ghost", Email: "ghost@clinic.test",
		})
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

// Clock sanity: the fixed test clock must land on the documented weekday.
func TestFixedClockIsMonday(t *testing.T) {
	if d := fixedClock(testToday)(); d.Weekday() != time.Monday {
		t.Fatalf("%s should be a Monday, got %s", testToday, d.Weekday())
	}
}

package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/caredesk/appointment-service/internal/events"
	"github.com/caredesk/appointment-service/internal/models"
	"github.com/caredesk/appointment-service/internal/repositories"
	"github.com/caredesk/appointment-service/internal/validator"
)

type authService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	now            func() time.Time
}

func NewAuthService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
		now:            time.Now,
	}
}

// Register creates a patient or doctor account. A doctor gets a minimal
// profile to edit later; any other requested role falls back to patient.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if taken, err := s.repo.User().ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.repo.User().ExistsByEmail(ctx, strings.TrimSpace(req.Email)); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	role := models.RolePatient
	if req.Role == string(models.RoleDoctor) {
		role = models.RoleDoctor
	}

	user := &models.User{
		Username:    req.Username,
		Email:       strings.TrimSpace(req.Email),
		FullName:    strings.TrimSpace(req.FullName),
		PhoneNumber: optionalString(req.PhoneNumber),
		Role:        role,
	}
	if req.DateOfBirth != "" {
		dob, err := parseDate(req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDate
		}
		user.DateOfBirth = &dob
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			return err
		}
		if role != models.RoleDoctor {
			return nil
		}
		doctor := &models.Doctor{
			UserID:             user.ID,
			Specialization:     "General Practice",
			AvailableDays:      models.ParseDayList("Mon,Tue,Wed,Thu,Fri"),
			AvailableTimeSlots: models.ParseSlotList("09:00,10:00,11:00,14:00,15:00"),
			AboutText:          "Doctor profile - update your details in the dashboard.",
		}
		return tx.Doctor().Create(ctx, doctor)
	})
	if err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	event := events.NewEvent(events.EventUserRegistered, events.UserRegisteredEvent{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicUsers, event); err != nil {
		s.logger.Warn("failed to publish registration event", "user_id", user.ID, "error", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return toUserResponse(user), nil
}

// Login verifies the credentials and stamps last_login. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	loginAt := s.now().UTC()
	user.LastLogin = &loginAt
	if err := s.repo.User().Update(ctx, user); err != nil {
		s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	return user, nil
}

func (s *authService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes full name, email and phone for the logged-in user.
func (s *authService) UpdateProfile(ctx context.Context, userID uint, req *ProfileUpdateRequest) (*UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The email may collide with any account except the user's own.
	email := strings.TrimSpace(req.Email)
	if other, err := s.repo.User().GetByEmail(ctx, email); err != nil {
		if !repositories.IsNotFoundError(err) {
			return nil, err
		}
	} else if other.ID != userID {
		return nil, ErrEmailTaken
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Email = email
	user.PhoneNumber = optionalString(req.PhoneNumber)

	if err := s.repo.User().Update(ctx, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/caredesk/appointment-service/internal/models"
	"github.com/caredesk/appointment-service/internal/repositories"
)

// fakeRepository is an in-memory repositories.Repository for service tests.
type fakeRepository struct {
	users        *fakeUserRepo
	doctors      *fakeDoctorRepo
	appointments *fakeAppointmentRepo
	contacts     *fakeContactRepo
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:        &fakeUserRepo{users: map[uint]*models.User{}},
		doctors:      &fakeDoctorRepo{doctors: map[uint]*models.Doctor{}},
		appointments: &fakeAppointmentRepo{},
		contacts:     &fakeContactRepo{},
	}
}

func (r *fakeRepository) User() repositories.UserRepository               { return r.users }
func (r *fakeRepository) Doctor() repositories.DoctorRepository           { return r.doctors }
func (r *fakeRepository) Appointment() repositories.AppointmentRepository { return r.appointments }
func (r *fakeRepository) Contact() repositories.ContactRepository         { return r.contacts }

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepository) Ping(ctx context.Context) error { return nil }
func (r *fakeRepository) Close() error                   { return nil }

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

type fakeDoctorRepo struct {
	doctors map[uint]*models.Doctor
	nextID  uint
}

func (f *fakeDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	f.nextID++
	doctor.ID = f.nextID
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	if doctor, ok := f.doctors[id]; ok {
		return doctor, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDoctorRepo) GetByUserID(ctx context.Context, userID uint) (*models.Doctor, error) {
	for _, doctor := range f.doctors {
		if doctor.UserID == userID {
			return doctor, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDoctorRepo) Update(ctx context.Context, doctor *models.Doctor) error {
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) List(ctx context.Context, filters repositories.DoctorFilters) ([]*models.Doctor, error) {
	out := make([]*models.Doctor, 0, len(f.doctors))
	for _, doctor := range f.doctors {
		if filters.Specialization != "" && doctor.Specialization != filters.Specialization {
			continue
		}
		out = append(out, doctor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDoctorRepo) ListFeatured(ctx context.Context, limit int) ([]*models.Doctor, error) {
	all, _ := f.List(ctx, repositories.DoctorFilters{})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeDoctorRepo) Specializations(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, doctor := range f.doctors {
		if !seen[doctor.Specialization] {
			seen[doctor.Specialization] = true
			out = append(out, doctor.Specialization)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeDoctorRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.doctors)), nil
}

type fakeAppointmentRepo struct {
	appointments []*models.Appointment
	nextID       uint

	// createErr, when set, is returned by the next Create call. Used to
	// simulate a unique-constraint violation from a racing insert.
	createErr error
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, apt *models.Appointment) error {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}
	f.nextID++
	apt.ID = f.nextID
	now := time.Now()
	apt.CreatedAt = now
	apt.UpdatedAt = now
	f.appointments = append(f.appointments, apt)
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	for _, apt := range f.appointments {
		if apt.ID == id {
			return apt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, apt *models.Appointment) error {
	for i, existing := range f.appointments {
		if existing.ID == apt.ID {
			f.appointments[i] = apt
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func sameDate(apt *models.Appointment, date time.Time) bool {
	return apt.DateString() == date.Format("2006-01-02")
}

func (f *fakeAppointmentRepo) TakenSlots(ctx context.Context, doctorID uint, date time.Time) ([]string, error) {
	var slots []string
	for _, apt := range f.appointments {
		if apt.DoctorID == doctorID && apt.IsActive() && sameDate(apt, date) {
			slots = append(slots, apt.AppointmentTime)
		}
	}
	return slots, nil
}

func (f *fakeAppointmentRepo) DoctorSlotTaken(ctx context.Context, doctorID uint, date time.Time, slot string) (bool, error) {
	for _, apt := range f.appointments {
		if apt.DoctorID == doctorID && apt.IsActive() && sameDate(apt, date) && apt.AppointmentTime == slot {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepo) PatientSlotTaken(ctx context.Context, patientID uint, date time.Time, slot string) (bool, error) {
	for _, apt := range f.appointments {
		if apt.PatientID == patientID && apt.IsActive() && sameDate(apt, date) && apt.AppointmentTime == slot {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepo) ListUpcomingByPatient(ctx context.Context, patientID uint, today time.Time) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, apt := range f.appointments {
		if apt.PatientID == patientID && apt.IsActive() && apt.DateString() >= today.Format("2006-01-02") {
			out = append(out, apt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateString() != out[j].DateString() {
			return out[i].DateString() < out[j].DateString()
		}
		return out[i].AppointmentTime < out[j].AppointmentTime
	})
	return out, nil
}

func (f *fakeAppointmentRepo) ListPastByPatient(ctx context.Context, patientID uint, today time.Time) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, apt := range f.appointments {
		if apt.PatientID == patientID && (!apt.IsActive() || apt.DateString() < today.Format("2006-01-02")) {
			out = append(out, apt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateString() != out[j].DateString() {
			return out[i].DateString() > out[j].DateString()
		}
		return out[i].AppointmentTime > out[j].AppointmentTime
	})
	return out, nil
}

func (f *fakeAppointmentRepo) ListActiveByDoctor(ctx context.Context, doctorID uint) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, apt := range f.appointments {
		if apt.DoctorID == doctorID && apt.IsActive() {
			out = append(out, apt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateString() != out[j].DateString() {
			return out[i].DateString() < out[j].DateString()
		}
		return out[i].AppointmentTime < out[j].AppointmentTime
	})
	return out, nil
}

func (f *fakeAppointmentRepo) CountActiveByDoctorBetween(ctx context.Context, doctorID uint, from, to time.Time) (int64, error) {
	var count int64
	fromStr, toStr := from.Format("2006-01-02"), to.Format("2006-01-02")
	for _, apt := range f.appointments {
		if apt.DoctorID == doctorID && apt.IsActive() && apt.DateString() >= fromStr && apt.DateString() <= toStr {
			count++
		}
	}
	return count, nil
}

type fakeContactRepo struct {
	submissions []*models.ContactSubmission
	nextID      uint
}

func (f *fakeContactRepo) Create(ctx context.Context, submission *models.ContactSubmission) error {
	f.nextID++
	submission.ID = f.nextID
	f.submissions = append(f.submissions, submission)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, nil))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// fixedClock pins "today" so availability tests are deterministic.
func fixedClock(dateStr string) func() time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return func() time.Time { return t }
}

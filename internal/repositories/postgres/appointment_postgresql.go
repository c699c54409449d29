package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/caredesk/appointment-service/internal/models"
	"github.com/caredesk/appointment-service/internal/repositories"
)

type AppointmentPostgreSQL struct {
	db *gorm.DB
}

func NewAppointmentPostgreSQL(db *gorm.DB) repositories.AppointmentRepository {
	return &AppointmentPostgreSQL{db: db}
}

func (r *AppointmentPostgreSQL) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := r.db.WithContext(ctx).Create(appointment).Error; err != nil {
		// Surface unique-index violations unchanged so the service layer can
		// map a lost booking race to the slot-taken error.
		return err
	}
	return nil
}

func (r *AppointmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Doctor.User").
		First(&appointment, id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentPostgreSQL) Update(ctx context.Context, appointment *models.Appointment) error {
	if err := r.db.WithContext(ctx).Save(appointment).Error; err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return nil
}

func (r *AppointmentPostgreSQL) TakenSlots(ctx context.Context, doctorID uint, date time.Time) ([]string, error) {
	var slots []string
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status IN ?",
			doctorID, datatypes.Date(date), models.ActiveStatuses).
		Pluck("appointment_time", &slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load taken slots: %w", err)
	}
	return slots, nil
}

func (r *AppointmentPostgreSQL) DoctorSlotTaken(ctx context.Context, doctorID uint, date time.Time, slot string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
			doctorID, datatypes.Date(date), slot, models.ActiveStatuses).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check doctor slot: %w", err)
	}
	return count > 0, nil
}

func (r *AppointmentPostgreSQL) PatientSlotTaken(ctx context.Context, patientID uint, date time.Time, slot string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("patient_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
			patientID, datatypes.Date(date), slot, models.ActiveStatuses).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check patient slot: %w", err)
	}
	return count > 0, nil
}

func (r *AppointmentPostgreSQL) ListUpcomingByPatient(ctx context.Context, patientID uint, today time.Time) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Doctor.User").
		Where("patient_id = ? AND status IN ? AND appointment_date >= ?",
			patientID, models.ActiveStatuses, datatypes.Date(today)).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentPostgreSQL) ListPastByPatient(ctx context.Context, patientID uint, today time.Time) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Doctor.User").
		Where("patient_id = ? AND (status NOT IN ? OR appointment_date < ?)",
			patientID, models.ActiveStatuses, datatypes.Date(today)).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list past appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentPostgreSQL) ListActiveByDoctor(ctx context.Context, doctorID uint) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ? AND status IN ?", doctorID, models.ActiveStatuses).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentPostgreSQL) CountActiveByDoctorBetween(ctx context.Context, doctorID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND status IN ? AND appointment_date >= ? AND appointment_date <= ?",
			doctorID, models.ActiveStatuses, datatypes.Date(from), datatypes.Date(to)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count doctor appointments: %w", err)
	}
	return count, nil
}

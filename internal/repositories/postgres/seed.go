package postgres

import (
	"context"
	"fmt"

	"github.com/caredesk/appointment-service/internal/models"
	"github.com/caredesk/appointment-service/internal/repositories"
)

type seedDoctor struct {
	username       string
	fullName       string
	specialization string
	qualifications string
	years          int
	fee            float64
	days           string
	slots          string
	about          string
}

var seedDoctors = []seedDoctor{
	{"dr_smith", "Dr. Sarah Smith", "Cardiology", "MD, FACC", 15, 150.00,
		"Mon,Tue,Wed,Thu", "09:00,10:00,11:00,14:00,15:00",
		"Board-certified cardiologist with expertise in preventive care and heart disease management."},
	{"dr_jones", "Dr. Michael Jones", "Dermatology", "MD, FAAD", 10, 120.00,
		"Mon,Wed,Fri", "09:00,10:00,11:00",
		"Specializing in medical and cosmetic dermatology. Committed to skin health for all ages."},
	{"dr_williams", "Dr. Emily Williams", "Pediatrics", "MD, FAAP", 12, 100.00,
		"Tue,Thu,Fri", "08:00,09:00,10:00,11:00,14:00",
		"Caring for children from birth through adolescence. Focus on preventive care and family support."},
	{"dr_brown", "Dr. James Brown", "General Practice", "MD, Family Medicine", 20, 90.00,
		"Mon,Tue,Wed,Thu,Fri", "08:00,09:00,10:00,11:00,14:00,15:00",
		"Experienced family physician providing comprehensive care for all ages."},
}

// SeedSampleData inserts sample doctors and a test patient when the doctors
// table is empty. Running it against a populated database is a no-op.
func SeedSampleData(ctx context.Context, repo repositories.Repository) error {
	count, err := repo.Doctor().Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing doctors: %w", err)
	}
	if count > 0 {
		return nil
	}

	return repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, sd := range seedDoctors {
			exists, err := tx.User().ExistsByUsername(ctx, sd.username)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			user := &models.User{
				Username: sd.username,
				Email:    fmt.Sprintf("%s@clinic.example.com", sd.username),
				FullName: sd.fullName,
				Role:     models.RoleDoctor,
			}
			if err := user.SetPassword("doctor123"); err != nil {
				return err
			}
			if err := tx.User().Create(ctx, user); err != nil {
				return err
			}

			doctor := &models.Doctor{
				UserID:             user.ID,
				Specialization:     sd.specialization,
				Qualifications:     sd.qualifications,
				YearsOfExperience:  sd.years,
				ConsultationFee:    sd.fee,
				AvailableDays:      models.ParseDayList(sd.days),
				AvailableTimeSlots: models.ParseSlotList(sd.slots),
				AboutText:          sd.about,
			}
			if err := tx.Doctor().Create(ctx, doctor); err != nil {
				return err
			}
		}

		exists, err := tx.User().ExistsByUsername(ctx, "patient")
		if err != nil {
			return err
		}
		if !exists {
			patient := &models.User{
				Username: "patient",
				Email:    "patient@example.com",
				FullName: "John Patient",
				Role:     models.RolePatient,
			}
			if err := patient.SetPassword("patient123"); err != nil {
				return err
			}
			if err := tx.User().Create(ctx, patient); err != nil {
				return err
			}
		}
		return nil
	})
}

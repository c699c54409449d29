package models

import (
	"time"

	"gorm.io/datatypes"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ActiveStatuses are the statuses that hold a slot. Completed and cancelled
// appointments release it.
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed}

// IsTerminal reports whether the status permits no further transitions.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment links one patient and one doctor for a calendar date and slot
// label. The partial unique indexes guarantee that no two active appointments
// share a (doctor, date, slot) or a (patient, date, slot) even under
// concurrent inserts; a racing insert fails with a duplicated-key error.
type Appointment struct {
	ID        uint `json:"appointment_id" gorm:"primaryKey"`
	PatientID uint `json:"patient_id" gorm:"not null;index;uniqueIndex:uq_patient_slot_active,where:status = 'pending' OR status = 'confirmed'"`
	DoctorID  uint `json:"doctor_id" gorm:"not null;index;uniqueIndex:uq_doctor_slot_active,where:status = 'pending' OR status = 'confirmed'"`

	AppointmentDate datatypes.Date    `json:"appointment_date" gorm:"not null;index;uniqueIndex:uq_doctor_slot_active;uniqueIndex:uq_patient_slot_active"`
	AppointmentTime string            `json:"appointment_time" gorm:"not null;size:20;uniqueIndex:uq_doctor_slot_active;uniqueIndex:uq_patient_slot_active"`
	Status          AppointmentStatus `json:"status" gorm:"not null;default:pending;size:20;index"`

	ReasonForVisit string  `json:"reason_for_visit" gorm:"type:text"`
	Notes          *string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Patient User   `json:"-" gorm:"foreignKey:PatientID"`
	Doctor  Doctor `json:"-" gorm:"foreignKey:DoctorID"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive reports whether the appointment still holds its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// DateString renders the appointment date in the YYYY-MM-DD wire format.
func (a *Appointment) DateString() string {
	return time.Time(a.AppointmentDate).Format("2006-01-02")
}

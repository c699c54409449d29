package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID           uint     `json:"user_id" gorm:"primaryKey"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:80"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:120"`
	PasswordHash string   `json:"-" gorm:"not null;size:256"`
	Role         UserRole `json:"role" gorm:"not null;default:patient;size:20;index"`

	FullName    string     `json:"full_name" gorm:"size:120"`
	PhoneNumber *string    `json:"phone_number" gorm:"size:20"`
	DateOfBirth *time.Time `json:"date_of_birth" gorm:"type:date"`

	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`

	// Deleting a user cascades to the doctor profile and any appointments
	// booked as a patient.
	DoctorProfile *Doctor       `json:"doctor_profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Appointments  []Appointment `json:"-" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword hashes and stores the password with bcrypt.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) IsPatient() bool { return u.Role == RolePatient }
func (u *User) IsDoctor() bool  { return u.Role == RoleDoctor }
func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }

// DisplayName prefers the full name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

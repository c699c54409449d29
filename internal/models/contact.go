package models

import "time"

// ContactSubmission is an append-only record of a contact-form inquiry. It has
// no relationships and no state machine.
type ContactSubmission struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:120"`
	Email       string    `json:"email" gorm:"not null;size:120"`
	Phone       *string   `json:"phone" gorm:"size:20"`
	Subject     string    `json:"subject" gorm:"not null;size:200"`
	Message     string    `json:"message" gorm:"not null;type:text"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`
}

func (ContactSubmission) TableName() string {
	return "contact_submissions"
}

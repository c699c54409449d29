package models

type Doctor struct {
	ID     uint `json:"doctor_id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`

	Specialization    string  `json:"specialization" gorm:"not null;size:100;index"`
	Qualifications    string  `json:"qualifications" gorm:"size:500"`
	YearsOfExperience int     `json:"years_of_experience"`
	ConsultationFee   float64 `json:"consultation_fee" gorm:"type:decimal(10,2)"`

	// Weekly availability: the same slot labels apply on every available day.
	AvailableDays      DayList  `json:"available_days" gorm:"type:varchar(200)"`
	AvailableTimeSlots SlotList `json:"available_time_slots" gorm:"type:varchar(500)"`

	AboutText    string  `json:"about_text" gorm:"type:text"`
	ProfileImage *string `json:"profile_image" gorm:"size:255"`

	User         User          `json:"user" gorm:"foreignKey:UserID"`
	Appointments []Appointment `json:"-" gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
}

func (Doctor) TableName() string {
	return "doctors"
}

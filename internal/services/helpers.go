package services

import (
	"strings"
	"time"

	"github.com/caredesk/appointment-service/internal/models"
)

const dateLayout = "2006-01-02"

// weekdayToken renders a date's weekday in the three-letter form stored in
// doctor day lists (Mon, Tue, ...).
func weekdayToken(t time.Time) string {
	return t.Format("Mon")
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// today returns the current calendar date with the time component dropped.
func today(now func() time.Time) time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// optionalString trims s and returns nil for an empty result.
func optionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toUserResponse(user *models.User) *UserResponse {
	resp := &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
	if user.PhoneNumber != nil {
		resp.PhoneNumber = *user.PhoneNumber
	}
	if user.DateOfBirth != nil {
		resp.DateOfBirth = user.DateOfBirth.Format(dateLayout)
	}
	if user.LastLogin != nil {
		resp.LastLogin = user.LastLogin.UTC().Format(time.RFC3339)
	}
	return resp
}

func toDoctorResponse(doctor *models.Doctor) DoctorResponse {
	resp := DoctorResponse{
		ID:                 doctor.ID,
		FullName:           doctor.User.DisplayName(),
		Username:           doctor.User.Username,
		Specialization:     doctor.Specialization,
		Qualifications:     doctor.Qualifications,
		YearsOfExperience:  doctor.YearsOfExperience,
		ConsultationFee:    doctor.ConsultationFee,
		AvailableDays:      doctor.AvailableDays,
		AvailableTimeSlots: doctor.AvailableTimeSlots,
		AboutText:          doctor.AboutText,
	}
	if doctor.ProfileImage != nil {
		resp.ProfileImage = *doctor.ProfileImage
	}
	if resp.AvailableDays == nil {
		resp.AvailableDays = []string{}
	}
	if resp.AvailableTimeSlots == nil {
		resp.AvailableTimeSlots = []string{}
	}
	return resp
}

func toAppointmentResponse(apt *models.Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		ID:             apt.ID,
		PatientID:      apt.PatientID,
		DoctorID:       apt.DoctorID,
		Date:           apt.DateString(),
		Time:           apt.AppointmentTime,
		Status:         string(apt.Status),
		ReasonForVisit: apt.ReasonForVisit,
		CreatedAt:      apt.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      apt.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if apt.Notes != nil {
		resp.Notes = *apt.Notes
	}
	if apt.Patient.ID != 0 {
		resp.PatientName = apt.Patient.DisplayName()
	}
	if apt.Doctor.ID != 0 {
		resp.DoctorName = apt.Doctor.User.DisplayName()
		resp.Specialization = apt.Doctor.Specialization
	}
	return resp
}

func toAppointmentResponses(appointments []*models.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appointments))
	for _, apt := range appointments {
		out = append(out, toAppointmentResponse(apt))
	}
	return out
}

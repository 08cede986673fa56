package handlers

import (
	"errors"
	"strings"

	"doctor-portal-server/internal/models"
	"doctor-portal-server/internal/utils"
)

// SigninForm is the sign-in form.
type SigninForm struct {
	Email    string `form:"email_address" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// ProfileForm holds the practitioner fields a doctor may edit.
type ProfileForm struct {
	FirstName     string `form:"first_name" validate:"required,max=100"`
	LastName      string `form:"last_name" validate:"required,max=100"`
	BirthDate     string `form:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Gender        string `form:"gender" validate:"max=20"`
	Email         string `form:"email_address" validate:"required,email,max=255"`
	PhoneNumber   string `form:"phone_number" validate:"max=30"`
	WorkAddress   string `form:"work_address" validate:"max=255"`
	Specialty     string `form:"specialty" validate:"max=100"`
	Nationality   string `form:"nationality" validate:"max=100"`
	LicenseNumber string `form:"license_number" validate:"max=50"`
}

// SignupForm is a full practitioner record plus the initial password.
type SignupForm struct {
	ProfileForm
	Password string `form:"password" validate:"required,min=8,max=72"`
}

// PasswordForm is the change-password form.
type PasswordForm struct {
	OldPassword     string `form:"old_password" validate:"required"`
	NewPassword     string `form:"new_password" validate:"required,min=8,max=72"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

// PatientForm holds every editable patient field. The owner is never
// part of the form.
type PatientForm struct {
	FirstName              string  `form:"first_name" validate:"required,max=100"`
	LastName               string  `form:"last_name" validate:"required,max=100"`
	BirthDate              string  `form:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Gender                 string  `form:"gender" validate:"max=20"`
	Nationality            string  `form:"nationality" validate:"max=100"`
	HealthInsuranceNumber  string  `form:"health_insurance_number" validate:"max=50"`
	Email                  string  `form:"email" validate:"omitempty,email,max=255"`
	PhoneNumber            string  `form:"phone_number" validate:"max=30"`
	Address                string  `form:"address" validate:"max=255"`
	EmergencyContactName   string  `form:"emergency_contact_name" validate:"max=100"`
	EmergencyContactNumber string  `form:"emergency_contact_number" validate:"max=30"`
	Height                 float64 `form:"height" validate:"gte=0"`
	Weight                 float64 `form:"weight" validate:"gte=0"`
	BloodGroup             string  `form:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Genotype               string  `form:"genotype" validate:"omitempty,oneof=AA AS AC SS SC CC"`
	Allergies              string  `form:"allergies"`
	ChronicDiseases        string  `form:"chronic_diseases"`
	Disabilities           string  `form:"disabilities"`
	Vaccines               string  `form:"vaccines"`
	Medications            string  `form:"medications"`
	DoctorsNote            string  `form:"doctors_note"`
}

var errBirthDate = errors.New("birth date must be a date like 1990-01-31")

// apply copies the form onto p. The other fields are still copied when the
// birth date does not parse.
func (f *ProfileForm) apply(p *models.Practitioner) error {
	p.FirstName = strings.TrimSpace(f.FirstName)
	p.LastName = strings.TrimSpace(f.LastName)
	birthDate, dateErr := utils.ParseDate(f.BirthDate)
	p.BirthDate = birthDate
	p.Gender = f.Gender
	p.Email = strings.ToLower(strings.TrimSpace(f.Email))
	p.PhoneNumber = f.PhoneNumber
	p.WorkAddress = f.WorkAddress
	p.Specialty = f.Specialty
	p.Nationality = f.Nationality
	p.LicenseNumber = f.LicenseNumber
	if dateErr != nil {
		return errBirthDate
	}
	return nil
}

func (f *PatientForm) apply(p *models.Patient) error {
	p.FirstName = strings.TrimSpace(f.FirstName)
	p.LastName = strings.TrimSpace(f.LastName)
	birthDate, dateErr := utils.ParseDate(f.BirthDate)
	p.BirthDate = birthDate
	p.Gender = f.Gender
	p.Nationality = f.Nationality
	p.HealthInsuranceNumber = f.HealthInsuranceNumber
	p.Email = strings.TrimSpace(f.Email)
	p.PhoneNumber = f.PhoneNumber
	p.Address = f.Address
	p.EmergencyContactName = f.EmergencyContactName
	p.EmergencyContactNumber = f.EmergencyContactNumber
	p.Height = f.Height
	p.Weight = f.Weight
	p.BloodGroup = f.BloodGroup
	p.Genotype = f.Genotype
	p.Allergies = f.Allergies
	p.ChronicDiseases = f.ChronicDiseases
	p.Disabilities = f.Disabilities
	p.Vaccines = f.Vaccines
	p.Medications = f.Medications
	p.DoctorsNote = f.DoctorsNote
	if dateErr != nil {
		return errBirthDate
	}
	return nil
}

package models

import (
	"time"
)

// Patient is a record owned by exactly one practitioner.
type Patient struct {
	BaseModel
	DoctorID uint `gorm:"not null;index"`

	// Demographics
	FirstName             string     `gorm:"size:100;not null"`
	LastName              string     `gorm:"size:100;not null"`
	BirthDate             *time.Time `gorm:"type:date"`
	Gender                string     `gorm:"size:20"`
	Nationality           string     `gorm:"size:100"`
	HealthInsuranceNumber string     `gorm:"size:50"`

	// Contact
	Email                  string `gorm:"column:email_address;size:255"`
	PhoneNumber            string `gorm:"size:30"`
	Address                string `gorm:"size:255"`
	EmergencyContactName   string `gorm:"size:100"`
	EmergencyContactNumber string `gorm:"size:30"`

	// Clinical
	Height          float64
	Weight          float64
	BloodGroup      string `gorm:"size:5"`
	Genotype        string `gorm:"size:5"`
	Allergies       string `gorm:"type:text"`
	ChronicDiseases string `gorm:"type:text"`
	Disabilities    string `gorm:"type:text"`
	Vaccines        string `gorm:"type:text"`
	Medications     string `gorm:"type:text"`
	DoctorsNote     string `gorm:"type:text"`

	// FileUpload is the stored name of an optional uploaded document.
	FileUpload string `gorm:"size:255"`
}

// FullName is shown in the patient list.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// BelongsTo reports whether practitionerID owns the patient.
func (p *Patient) BelongsTo(practitionerID uint) bool {
	return p.DoctorID != 0 && p.DoctorID == practitionerID
}

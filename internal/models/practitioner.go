package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Practitioner is a doctor account. It owns the patients registered under it.
type Practitioner struct {
	BaseModel
	FirstName     string     `gorm:"size:100;not null"`
	LastName      string     `gorm:"size:100;not null"`
	Email         string     `gorm:"column:email_address;uniqueIndex;size:255;not null"`
	Password      string     `gorm:"size:255;not null"` // bcrypt hash, never rendered
	PhoneNumber   string     `gorm:"size:30"`
	WorkAddress   string     `gorm:"size:255"`
	Specialty     string     `gorm:"size:100"`
	LicenseNumber string     `gorm:"size:50"`
	Nationality   string     `gorm:"size:100"`
	BirthDate     *time.Time `gorm:"type:date"`
	Gender        string     `gorm:"size:20"`

	Patients []Patient `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name the practice has always used.
func (Practitioner) TableName() string {
	return "doctors"
}

// FullName is what the dashboard greets with.
func (p *Practitioner) FullName() string {
	return p.FirstName + " " + p.LastName
}

// HashPassword returns the bcrypt hash stored for a plaintext password.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// SetPassword hashes a password and sets it on the practitioner
func (p *Practitioner) SetPassword(password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	p.Password = hashed
	return nil
}

// CheckPassword compares a password with the practitioner's hashed password
func (p *Practitioner) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password))
	return err == nil
}

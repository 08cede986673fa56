package store

import (
	"context"
	"errors"
	"fmt"

	"doctor-portal-server/internal/models"

	"gorm.io/gorm"
)

// GormPatientStore implements PatientStore with gorm.
type GormPatientStore struct {
	DB *gorm.DB
}

var _ PatientStore = (*GormPatientStore)(nil)

// NewPatientStore creates a new GormPatientStore.
func NewPatientStore(db *gorm.DB) *GormPatientStore {
	return &GormPatientStore{DB: db}
}

func (s *GormPatientStore) Create(ctx context.Context, p *models.Patient) error {
	if p.DoctorID == 0 {
		return errors.New("create patient: missing owning practitioner")
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

func (s *GormPatientStore) ListByPractitioner(ctx context.Context, practitionerID uint) ([]models.Patient, error) {
	patients := []models.Patient{}
	err := s.DB.WithContext(ctx).
		Where("doctor_id = ?", practitionerID).
		Order("id").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (s *GormPatientStore) CountByPractitioner(ctx context.Context, practitionerID uint) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Patient{}).
		Where("doctor_id = ?", practitionerID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	return n, nil
}

func (s *GormPatientStore) GetForPractitioner(ctx context.Context, id, practitionerID uint) (*models.Patient, error) {
	var p models.Patient
	err := s.DB.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", id, practitionerID).
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// UpdateForPractitioner rewrites every editable column of p.ID, provided
// the row belongs to practitionerID. The owner column is never written.
func (s *GormPatientStore) UpdateForPractitioner(ctx context.Context, practitionerID uint, p *models.Patient) error {
	res := s.DB.WithContext(ctx).Model(&models.Patient{}).
		Where("id = ? AND doctor_id = ?", p.ID, practitionerID).
		Updates(map[string]interface{}{
			"first_name":               p.FirstName,
			"last_name":                p.LastName,
			"birth_date":               p.BirthDate,
			"gender":                   p.Gender,
			"nationality":              p.Nationality,
			"health_insurance_number":  p.HealthInsuranceNumber,
			"email_address":            p.Email,
			"phone_number":             p.PhoneNumber,
			"address":                  p.Address,
			"emergency_contact_name":   p.EmergencyContactName,
			"emergency_contact_number": p.EmergencyContactNumber,
			"height":                   p.Height,
			"weight":                   p.Weight,
			"blood_group":              p.BloodGroup,
			"genotype":                 p.Genotype,
			"allergies":                p.Allergies,
			"chronic_diseases":         p.ChronicDiseases,
			"disabilities":             p.Disabilities,
			"vaccines":                 p.Vaccines,
			"medications":              p.Medications,
			"doctors_note":             p.DoctorsNote,
			"file_upload":              p.FileUpload,
		})
	if res.Error != nil {
		return fmt.Errorf("update patient %d: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormPatientStore) DeleteForPractitioner(ctx context.Context, id, practitionerID uint) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", id, practitionerID).
		Delete(&models.Patient{})
	if res.Error != nil {
		return fmt.Errorf("delete patient %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"context"
	"fmt"

	"doctor-portal-server/internal/models"

	"gorm.io/gorm"
)

// GormPractitionerStore implements PractitionerStore with gorm.
type GormPractitionerStore struct {
	DB *gorm.DB
}

var _ PractitionerStore = (*GormPractitionerStore)(nil)

// NewPractitionerStore creates a new GormPractitionerStore.
func NewPractitionerStore(db *gorm.DB) *GormPractitionerStore {
	return &GormPractitionerStore{DB: db}
}

func (s *GormPractitionerStore) Create(ctx context.Context, p *models.Practitioner) error {
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create practitioner: %w", translate(err))
	}
	return nil
}

func (s *GormPractitionerStore) GetByID(ctx context.Context, id uint) (*models.Practitioner, error) {
	var p models.Practitioner
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormPractitionerStore) GetByEmail(ctx context.Context, email string) (*models.Practitioner, error) {
	var p models.Practitioner
	if err := s.DB.WithContext(ctx).Where("email_address = ?", email).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// EmailTaken reports whether another practitioner already uses email.
// Pass exceptID 0 at sign-up.
func (s *GormPractitionerStore) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Practitioner{}).
		Where("email_address = ? AND id <> ?", email, exceptID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}

// UpdateProfile rewrites the mutable profile fields of row id. The id
// always comes from the session; p.ID is ignored.
func (s *GormPractitionerStore) UpdateProfile(ctx context.Context, id uint, p *models.Practitioner) error {
	res := s.DB.WithContext(ctx).Model(&models.Practitioner{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"first_name":     p.FirstName,
			"last_name":      p.LastName,
			"email_address":  p.Email,
			"phone_number":   p.PhoneNumber,
			"work_address":   p.WorkAddress,
			"specialty":      p.Specialty,
			"license_number": p.LicenseNumber,
			"nationality":    p.Nationality,
			"birth_date":     p.BirthDate,
			"gender":         p.Gender,
		})
	if res.Error != nil {
		return fmt.Errorf("update practitioner %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormPractitionerStore) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := s.DB.WithContext(ctx).Model(&models.Practitioner{}).
		Where("id = ?", id).
		Update("password", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("update password for %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

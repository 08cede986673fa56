// Package store holds the persistence contracts used by the handlers and
// their gorm implementations. Every patient query is scoped to the owning
// practitioner; callers never get a row they do not own.
package store

import (
	"context"
	"errors"

	"doctor-portal-server/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both a missing row and a row owned by someone else.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when the email address is already registered.
	ErrDuplicateEmail = errors.New("email address already registered")
)

// PractitionerStore is the credential store for doctor accounts.
type PractitionerStore interface {
	Create(ctx context.Context, p *models.Practitioner) error
	GetByID(ctx context.Context, id uint) (*models.Practitioner, error)
	GetByEmail(ctx context.Context, email string) (*models.Practitioner, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	UpdateProfile(ctx context.Context, id uint, p *models.Practitioner) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// PatientStore is the patient registry. All reads and writes take the
// owning practitioner's id.
type PatientStore interface {
	Create(ctx context.Context, p *models.Patient) error
	ListByPractitioner(ctx context.Context, practitionerID uint) ([]models.Patient, error)
	CountByPractitioner(ctx context.Context, practitionerID uint) (int64, error)
	GetForPractitioner(ctx context.Context, id, practitionerID uint) (*models.Patient, error)
	UpdateForPractitioner(ctx context.Context, practitionerID uint, p *models.Patient) error
	DeleteForPractitioner(ctx context.Context, id, practitionerID uint) error
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	default:
		return err
	}
}

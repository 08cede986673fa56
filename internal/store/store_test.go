package store

import (
	"context"
	"testing"

	"doctor-portal-server/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), models.GormConfig(false))
	require.NoError(t, err)
	return db, mock
}

func TestPatientStore_GetForPractitioner_ScopesByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPatientStore(db)

	mock.ExpectQuery("SELECT \\* FROM `patients` WHERE id = \\? AND doctor_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "first_name", "last_name"}).
			AddRow(1, 1, "Jane", "Smith"))

	p, err := s.GetForPractitioner(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.ID)
	assert.Equal(t, uint(1), p.DoctorID)
	assert.Equal(t, "Jane", p.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientStore_GetForPractitioner_ForeignIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPatientStore(db)

	mock.ExpectQuery("SELECT \\* FROM `patients` WHERE id = \\? AND doctor_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id"}))

	_, err := s.GetForPractitioner(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientStore_DeleteForPractitioner(t *testing.T) {
	t.Run("owned row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPatientStore(db)
		mock.ExpectExec("DELETE FROM `patients` WHERE id = \\? AND doctor_id = \\?").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.DeleteForPractitioner(context.Background(), 1, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matching row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPatientStore(db)
		mock.ExpectExec("DELETE FROM `patients` WHERE id = \\? AND doctor_id = \\?").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.DeleteForPractitioner(context.Background(), 1, 2), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPatientStore_UpdateForPractitioner(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPatientStore(db)

	mock.ExpectExec("UPDATE `patients` SET .* WHERE id = \\? AND doctor_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateForPractitioner(context.Background(), 2, &models.Patient{BaseModel: models.BaseModel{ID: 1}, FirstName: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientStore_Create(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPatientStore(db)

	err := s.Create(context.Background(), &models.Patient{FirstName: "Orphan"})
	assert.Error(t, err)

	mock.ExpectExec("INSERT INTO `patients`").
		WillReturnResult(sqlmock.NewResult(7, 1))

	p := &models.Patient{DoctorID: 1, FirstName: "Patient", LastName: "One"}
	require.NoError(t, s.Create(context.Background(), p))
	assert.Equal(t, uint(7), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientStore_ListByPractitioner_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPatientStore(db)

	mock.ExpectQuery("SELECT \\* FROM `patients` WHERE doctor_id = \\? ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id"}))

	patients, err := s.ListByPractitioner(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, patients)
	assert.Empty(t, patients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPractitionerStore_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPractitionerStore(db)

	mock.ExpectExec("INSERT INTO `doctors`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'john.doe@example.com'"})

	err := s.Create(context.Background(), &models.Practitioner{Email: "john.doe@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPractitionerStore_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPractitionerStore(db)

	mock.ExpectQuery("SELECT \\* FROM `doctors` WHERE email_address = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email_address", "first_name"}).
			AddRow(1, "john.doe@example.com", "John"))

	p, err := s.GetByEmail(context.Background(), "john.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPractitionerStore_UpdateProfileTargetsSessionRow(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPractitionerStore(db)

	mock.ExpectExec("UPDATE `doctors` SET .* WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// p.ID points elsewhere; the id argument wins.
	p := &models.Practitioner{BaseModel: models.BaseModel{ID: 99}, FirstName: "John", LastName: "Updated"}
	require.NoError(t, s.UpdateProfile(context.Background(), 1, p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPractitionerStore_EmailTaken(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPractitionerStore(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `doctors` WHERE email_address = \\? AND id <> \\?").
		WithArgs("jane@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	taken, err := s.EmailTaken(context.Background(), "jane@example.com", 1)
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

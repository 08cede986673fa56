package handlers

import (
	"testing"

	"doctor-portal-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientFormApply(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		var p models.Patient
		require.NoError(t, (&PatientForm{FirstName: " Ann ", BirthDate: "1990-01-31"}).apply(&p))
		assert.Equal(t, "Ann", p.FirstName)
		require.NotNil(t, p.BirthDate)
		assert.Equal(t, "1990-01-31", p.BirthDate.Format("2006-01-02"))
	})

	t.Run("no date", func(t *testing.T) {
		p := models.Patient{DoctorID: 3}
		require.NoError(t, (&PatientForm{FirstName: "Ann"}).apply(&p))
		assert.Nil(t, p.BirthDate)
		assert.Equal(t, uint(3), p.DoctorID)
	})

	t.Run("malformed date", func(t *testing.T) {
		var p models.Patient
		err := (&PatientForm{FirstName: "Ann", BloodGroup: "O+", BirthDate: "31/01/1990"}).apply(&p)
		assert.ErrorIs(t, err, errBirthDate)
		assert.Equal(t, "Ann", p.FirstName)
		assert.Equal(t, "O+", p.BloodGroup)
		assert.Nil(t, p.BirthDate)
	})
}

func TestProfileFormApply(t *testing.T) {
	t.Run("email is normalised", func(t *testing.T) {
		var p models.Practitioner
		require.NoError(t, (&ProfileForm{FirstName: "Jane", Email: " Jane@Example.COM "}).apply(&p))
		assert.Equal(t, "jane@example.com", p.Email)
	})

	t.Run("malformed date", func(t *testing.T) {
		var p models.Practitioner
		err := (&ProfileForm{FirstName: "Jane", BirthDate: "May 17th"}).apply(&p)
		assert.ErrorIs(t, err, errBirthDate)
		assert.Equal(t, "Jane", p.FirstName)
		assert.Nil(t, p.BirthDate)
	})
}

package models

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPractitionerPassword(t *testing.T) {
	p := &Practitioner{}
	require.NoError(t, p.SetPassword("password123"))

	assert.NotEqual(t, "password123", p.Password)
	assert.True(t, p.CheckPassword("password123"))
	assert.False(t, p.CheckPassword("wrongpassword"))
	assert.False(t, p.CheckPassword(""))
}

func TestCheckPassword_NoHashStored(t *testing.T) {
	p := &Practitioner{}
	assert.False(t, p.CheckPassword(""))
	assert.False(t, p.CheckPassword("anything"))
}

func TestPatientBelongsTo(t *testing.T) {
	p := &Patient{DoctorID: 1}
	assert.True(t, p.BelongsTo(1))
	assert.False(t, p.BelongsTo(2))

	orphan := &Patient{}
	assert.False(t, orphan.BelongsTo(0))
}

func TestDialector(t *testing.T) {
	_, err := Dialector(DatabaseConfig{Driver: "mysql", DSN: "u:p@tcp(localhost:3306)/db"})
	assert.NoError(t, err)

	_, err = Dialector(DatabaseConfig{Driver: "postgres", DSN: "host=localhost"})
	assert.NoError(t, err)

	_, err = Dialector(DatabaseConfig{Driver: "sqlite"})
	assert.Error(t, err)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "doctors", Practitioner{}.TableName())
	assert.Equal(t, "John Doe", (&Practitioner{FirstName: "John", LastName: "Doe"}).FullName())
}

func TestModels_CarryNoJSONTags(t *testing.T) {
	for _, model := range []any{Practitioner{}, Patient{}, BaseModel{}} {
		typ := reflect.TypeOf(model)
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			assert.Empty(t, f.Tag.Get("json"), "%s.%s", typ.Name(), f.Name)
		}
	}
}

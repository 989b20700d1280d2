package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSubmit() SubmitRegistrationRequest {
	return SubmitRegistrationRequest{
		FirstName:    "María",
		LastName:     "Gómez",
		Email:        "maria@example.com",
		Phone:        "3001234567",
		HealthEntity: "Sura",
		Region:       "Bogotá",
		Role:         "laico",
		Lodging:      "si",
	}
}

func TestSubmitRegistrationRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validSubmit()
		assert.NoError(t, req.Validate())
	})

	t.Run("short name", func(t *testing.T) {
		req := validSubmit()
		req.FirstName = "M"
		assert.Error(t, req.Validate())
	})

	t.Run("bad email", func(t *testing.T) {
		req := validSubmit()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("short phone", func(t *testing.T) {
		req := validSubmit()
		req.Phone = "123"
		assert.Error(t, req.Validate())
	})

	t.Run("lodging outside the option set", func(t *testing.T) {
		req := validSubmit()
		req.Lodging = "maybe"
		assert.Error(t, req.Validate())
	})
}

func TestCreateAdminRequest_Validate(t *testing.T) {
	valid := CreateAdminRequest{
		Email:    "admin@example.com",
		Password: "Secret123",
		Name:     "Admin",
	}

	t.Run("valid", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("password without digits", func(t *testing.T) {
		req := valid
		req.Password = "onlyletters"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without letters", func(t *testing.T) {
		req := valid
		req.Password = "12345678"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password too short", func(t *testing.T) {
		req := valid
		req.Password = "Ab1"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})
}

func TestUpdateStatusRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdateStatusRequest{Status: "approved"}).Validate())
	assert.NoError(t, (&UpdateStatusRequest{Status: "rejected"}).Validate())
	assert.Error(t, (&UpdateStatusRequest{Status: "pending"}).Validate())
	assert.Error(t, (&UpdateStatusRequest{}).Validate())
}

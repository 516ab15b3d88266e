package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		Name:     "Asha Sharma",
		Email:    "asha@example.com",
		Mobile:   "9876543210",
		Gender:   "Female",
		Password: "secret1",
	}
	assert.Empty(t, valid.Validate())

	t.Run("missing fields", func(t *testing.T) {
		r := RegisterRequest{}
		errs := r.Validate()
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "mobile")
		assert.Contains(t, errs, "gender")
		assert.Contains(t, errs, "password")
	})

	t.Run("gender outside Male/Female", func(t *testing.T) {
		r := valid
		r.Gender = "other"
		errs := r.Validate()
		assert.Equal(t, "Gender must be Male or Female", errs["gender"])
	})

	t.Run("short password", func(t *testing.T) {
		r := valid
		r.Password = "abc"
		errs := r.Validate()
		assert.Equal(t, "Password must be at least 6 characters", errs["password"])
	})
}

func TestLoginRequestValidate(t *testing.T) {
	r := LoginRequest{Email: "asha@example.com", Password: "secret1"}
	assert.Empty(t, r.Validate())

	r = LoginRequest{}
	errs := r.Validate()
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestResetPasswordRequestValidate(t *testing.T) {
	r := ResetPasswordRequest{Email: "asha@example.com", OTP: "123456", NewPassword: "secret1"}
	assert.Empty(t, r.Validate())

	r.NewPassword = "ab"
	errs := r.Validate()
	assert.Equal(t, "Password must be at least 6 characters", errs["new_password"])

	r = ResetPasswordRequest{}
	errs = r.Validate()
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "otp")
	assert.Contains(t, errs, "new_password")
}

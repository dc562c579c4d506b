// AngelaMos | 2026
// validation_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type phoneFixture struct {
	Phone string `validate:"ilphone"`
}

type passwordFixture struct {
	Password string `validate:"strongpwd"`
}

func TestPhoneRule(t *testing.T) {
	v := NewValidator()

	valid := []string{
		"050-123 4567",
		"0501234567",
		"02-123 4567",
		"03 123 4567",
	}
	for _, phone := range valid {
		assert.NoError(t, v.Struct(phoneFixture{Phone: phone}), phone)
	}

	invalid := []string{
		"1501234567",
		"050-12345",
		"+972501234567",
		"phone",
		"",
	}
	for _, phone := range invalid {
		assert.Error(t, v.Struct(phoneFixture{Phone: phone}), phone)
	}
}

func TestStrongPasswordRule(t *testing.T) {
	v := NewValidator()

	valid := []string{
		"Password!1",
		"Abcdef1*",
		"longEnough-9",
	}
	for _, pwd := range valid {
		assert.NoError(t, v.Struct(passwordFixture{Password: pwd}), pwd)
	}

	invalid := []string{
		"Short!1",      // under 8
		"password!1",   // no uppercase
		"PASSWORD!1",   // no lowercase
		"Password!!",   // no digit
		"Password11",   // no special character
		"Password 1 x", // space is not in the allowed special set
	}
	for _, pwd := range invalid {
		assert.Error(t, v.Struct(passwordFixture{Password: pwd}), pwd)
	}
}

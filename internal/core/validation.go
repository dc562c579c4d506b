// AngelaMos | 2026
// validation.go

package core

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^0[0-9]{1,2}-?\s?[0-9]{3}\s?[0-9]{4}$`)

	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*-]`)
)

// NewValidator returns a validator with the domain-specific rules
// registered: ilphone (israeli phone format) and strongpwd (mixed-case,
// digit and special character, minimum 8).
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	//nolint:errcheck // registration only fails on empty tag names
	_ = v.RegisterValidation("ilphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	//nolint:errcheck // registration only fails on empty tag names
	_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		pwd := fl.Field().String()
		if len(pwd) < 8 {
			return false
		}
		return upperPattern.MatchString(pwd) &&
			lowerPattern.MatchString(pwd) &&
			digitPattern.MatchString(pwd) &&
			specialPattern.MatchString(pwd)
	})

	return v
}

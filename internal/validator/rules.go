package validator

import (
	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate) error {
	return v.RegisterValidation("currency_code", validCurrencyCode)
}

// validCurrencyCode accepts ISO 4217 style codes: exactly three uppercase
// ASCII letters.
func validCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

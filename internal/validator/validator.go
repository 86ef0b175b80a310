package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries a field -> message map built from the raw
// validator output.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	var msgs []string
	for field, msg := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator wraps go-playground/validator so handlers report field names
// as they appear in the JSON body, not as Go struct fields.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := registerCustomRules(v); err != nil {
		panic(fmt.Sprintf("register custom validation rules: %v", err))
	}

	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	custom := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		custom[fe.Field()] = messageFor(fe)
	}
	return &ValidationError{Errors: custom}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "gtefield":
		return fmt.Sprintf("must not be below %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "currency_code":
		return "must be a three-letter uppercase currency code"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

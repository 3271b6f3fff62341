// Package validator adapts go-playground/validator to Echo's Validator
// interface.
package validator

import (
	validatorlib "github.com/go-playground/validator/v10"
)

// Validator wraps a validator instance for Echo.
type Validator struct {
	validate *validatorlib.Validate
}

// New creates a request validator.
func New() *Validator {
	return &Validator{
		validate: validatorlib.New(validatorlib.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator library
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// Validate validates a struct
func (v *Validator) Validate(data interface{}) error {
	return v.validate.Struct(data)
}

// ValidateEmail validates an email string
func (v *Validator) ValidateEmail(email string) error {
	return v.validate.Var(email, "required,email")
}

// ValidatePassword validates a password string
func (v *Validator) ValidatePassword(password string) error {
	if err := v.validate.Var(password, "required,min=6"); err != nil {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

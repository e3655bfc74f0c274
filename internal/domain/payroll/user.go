package payroll

import "github.com/go-playground/validator/v10"

// UserProfile is supplied by the caller and is the source of truth for the pay rate.
type UserProfile struct {
	ID         string  `json:"id" binding:"required,max=64" validate:"required,max=64"`
	Name       string  `json:"name" binding:"required,max=120" validate:"required,max=120"`
	Role       string  `json:"role" binding:"omitempty,max=80" validate:"omitempty,max=80"`
	HourlyRate float64 `json:"hourly_rate" binding:"required,gt=0" validate:"required,gt=0"`
}

// AnonymizedUser has the same shape as UserProfile but carries a pseudonymous name.
type AnonymizedUser struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	HourlyRate float64 `json:"hourly_rate"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a profile built outside of HTTP binding (CLI, tests).
func (u UserProfile) Validate() error {
	return validate.Struct(u)
}

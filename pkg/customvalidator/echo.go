package customvalidator

import "github.com/go-playground/validator/v10"

// EchoValidator adapta o validador à interface echo.Validator.
type EchoValidator struct {
	validator *validator.Validate
}

func NewEchoValidator(v *validator.Validate) *EchoValidator {
	return &EchoValidator{validator: v}
}

func (cv *EchoValidator) Validate(i interface{}) error {
	return Struct(cv.validator, i)
}

// Package validator wires go-playground/validator into echo so request DTOs
// are checked against their struct tags at bind time.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator satisfies echo.Validator
type CustomValidator struct {
	v *validator.Validate
}

// New returns a CustomValidator with the default tag set
func New() *CustomValidator {
	return &CustomValidator{v: validator.New()}
}

// Validate checks i against its validation tags
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

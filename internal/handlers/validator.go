package handlers

import (
	"github.com/labstack/echo/v4"

	"mcc-reference/internal/validation"
)

// CustomValidator implements echo.Validator on top of the shared
// go-playground instance with the MCC rules registered.
type CustomValidator struct {
	validator *validation.Validator
}

// NewValidator creates a new custom validator
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.NewValidator()}
}

// Validate implements the echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.GetValidate().Struct(i)
}

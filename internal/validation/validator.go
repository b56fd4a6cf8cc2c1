package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"mcc-reference/internal/models"
)

// Validator wraps the go-playground validator with custom MCC rules and
// json tag names for error reporting.
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// NewValidator creates a new validator instance with the custom MCC rules
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("mcc_candidate", validateMCCCandidate)
	_ = v.RegisterValidation("mcc_source", validateMCCSource)
	_ = v.RegisterValidation("category_id", validateCategoryID)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateMCCCandidate accepts candidate code values: 1-4 digits after
// trimming. This is deliberately softer than the canonical 4-digit form so
// that short values can be zero-padded downstream.
func validateMCCCandidate(fl validator.FieldLevel) bool {
	return candidatePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

var candidatePattern = regexp.MustCompile(`^\d{1,4}$`)

// validateMCCSource validates that a description source is one of the 8
// recognized identifiers
func validateMCCSource(fl validator.FieldLevel) bool {
	return models.IsValidDescriptionSource(strings.ToLower(fl.Field().String()))
}

// validateCategoryID validates the lowercase identifier form used for
// category ids
func validateCategoryID(fl validator.FieldLevel) bool {
	matched, _ := regexp.MatchString(`^[a-z][a-z0-9_]*$`, strings.ToLower(fl.Field().String()))
	return matched
}

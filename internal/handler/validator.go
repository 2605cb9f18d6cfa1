package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validations for care supply tiers
	_ = v.RegisterValidation("waterquality", validateWaterQuality)
	_ = v.RegisterValidation("fertilizertype", validateFertilizerType)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	// Check if it's a validator.ValidationErrors
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "email":
			errs[field] = "Invalid email format"
		case "waterquality":
			errs[field] = "Invalid water quality. Valid options: basic, premium, expert"
		case "fertilizertype":
			errs[field] = "Invalid fertilizer type. Valid options: basic, organic, premium"
		case "latitude":
			errs[field] = "Must be a valid latitude"
		case "longitude":
			errs[field] = "Must be a valid longitude"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidWaterQualities defines the watering tiers
var ValidWaterQualities = map[string]bool{
	"basic":   true,
	"premium": true,
	"expert":  true,
}

// ValidFertilizerTypes defines the fertilizer tiers
var ValidFertilizerTypes = map[string]bool{
	"basic":   true,
	"organic": true,
	"premium": true,
}

// Custom validation function for watering quality
func validateWaterQuality(fl validator.FieldLevel) bool {
	quality := fl.Field().String()
	// Allow empty if not required (handled by 'required' tag if needed)
	if quality == "" {
		return true
	}
	return ValidWaterQualities[strings.ToLower(quality)]
}

// Custom validation function for fertilizer type
func validateFertilizerType(fl validator.FieldLevel) bool {
	fertilizerType := fl.Field().String()
	if fertilizerType == "" {
		return true
	}
	return ValidFertilizerTypes[strings.ToLower(fertilizerType)]
}

// internal/utils/validator.go
package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinPhoneDigits is the minimum number of digits a phone number keeps after
// stripping separators.
const MinPhoneDigits = 10

var validate *validator.Validate

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	MustRegisterValidation("required_trimmed", validateRequiredTrimmed)
	MustRegisterValidation("phone_digits", validatePhoneDigits)
	MustRegisterValidation("basic_email", validateBasicEmail)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// RegisterValidation adds a custom tag to the shared validator.
func RegisterValidation(tag string, fn validator.Func) error {
	return validate.RegisterValidation(tag, fn)
}

// MustRegisterValidation is RegisterValidation for package init; it panics
// when the tag cannot be registered.
func MustRegisterValidation(tag string, fn validator.Func) {
	if err := RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func validateRequiredTrimmed(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validatePhoneDigits(fl validator.FieldLevel) bool {
	return len(DigitsOnly(fl.Field().String())) >= MinPhoneDigits
}

func validateBasicEmail(fl validator.FieldLevel) bool {
	return IsBasicEmail(fl.Field().String())
}

func IsBasicEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_trimmed":
		return e.Field() + " is required"
	case "basic_email", "email":
		return "Invalid email format"
	case "phone_digits":
		return "Phone number must contain at least 10 digits"
	case "eq":
		if e.Field() == "accept_terms" {
			return "Terms and conditions must be accepted"
		}
		return e.Field() + " is invalid"
	case "shipping_method":
		return "Unknown shipping method"
	case "payment_method":
		return "Unknown payment method"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}

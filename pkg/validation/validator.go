package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

// Limits mirrored by the struct tags below
const (
	// MaxNameLength bounds node, interaction and parameter names (in characters)
	MaxNameLength = 128
	// MaxDescriptionLength bounds node descriptions (in characters)
	MaxDescriptionLength = 4096
)

func init() {
	validate = validator.New()
	// "entityname": valid UTF-8, no control characters and no surrounding whitespace
	_ = validate.RegisterValidation("entityname", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !utf8.ValidString(s) || s != strings.TrimSpace(s) {
			return false
		}
		for _, r := range s {
			if unicode.IsControl(r) {
				return false
			}
		}
		return true
	})
	// "utf8text": encoders replace invalid bytes, so such text cannot round trip
	_ = validate.RegisterValidation("utf8text", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})
	_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
}

// NameRequest is the validated shape of a node or interaction name
type NameRequest struct {
	Name string `validate:"required,max=128,entityname"`
}

// ParameterRequest is the validated shape of a network parameter
type ParameterRequest struct {
	Name  string  `validate:"required,max=128,entityname"`
	Value float64 `validate:"finite"`
}

// DescriptionRequest is the validated shape of a node description
type DescriptionRequest struct {
	Description string `validate:"max=4096,utf8text"`
}

// ValidateName checks a node or interaction name
func ValidateName(name string) error {
	if err := validate.Struct(&NameRequest{Name: name}); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateParameter checks a parameter name and value
func ValidateParameter(name string, value float64) error {
	if err := validate.Struct(&ParameterRequest{Name: name, Value: value}); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateDescription checks a node description
func ValidateDescription(description string) error {
	if err := validate.Struct(&DescriptionRequest{Description: description}); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateText checks that free text such as a reaction expression is valid
// UTF-8. field names the text in the error.
func ValidateText(field, text string) error {
	if err := validate.Var(text, "utf8text"); err != nil {
		return fmt.Errorf("%s: must be valid UTF-8", field)
	}
	return nil
}

// ValidateFinite checks that a stored number is neither NaN nor infinite
func ValidateFinite(field string, value float64) error {
	if err := validate.Var(value, "finite"); err != nil {
		return fmt.Errorf("%s: must be a finite number, got %v", field, value)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Only the first failure is reported
	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "max":
			return fmt.Errorf("%s: must not exceed %s characters", field, e.Param())
		case "entityname":
			return fmt.Errorf("%s: %q must be valid UTF-8 without control characters or surrounding whitespace", field, e.Value())
		case "utf8text":
			return fmt.Errorf("%s: must be valid UTF-8", field)
		case "finite":
			return fmt.Errorf("%s: must be a finite number, got %v", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}

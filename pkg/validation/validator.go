package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is the shared validator instance
	validate *validator.Validate

	// MaxLabelLength bounds stream labels and unit names
	MaxLabelLength = 32

	// Stream labels are identifiers that can appear inside an equation
	labelPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	// Compound abbreviations are two lower-case characters
	abbrPattern = regexp.MustCompile(`^[a-z0-9]{2}$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("pfdlabel", func(fl validator.FieldLevel) bool {
		return ValidateLabel(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("abbr", func(fl validator.FieldLevel) bool {
		return ValidateAbbreviation(fl.Field().String()) == nil
	})
}

// Struct validates v using its `validate` struct tags and reports the first
// failure as "Field: reason".
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateLabel checks that a stream label can be used as an equation variable
func ValidateLabel(label string) error {
	if label == "" {
		return errors.New("label cannot be empty")
	}
	if len(label) > MaxLabelLength {
		return fmt.Errorf("label '%s' exceeds maximum length of %d characters", label, MaxLabelLength)
	}
	if !labelPattern.MatchString(label) {
		return fmt.Errorf("label '%s' is invalid (must start with a letter, followed by letters, digits or underscore)", label)
	}
	return nil
}

// ValidateAbbreviation checks a compound abbreviation
func ValidateAbbreviation(abbr string) error {
	if !abbrPattern.MatchString(abbr) {
		return fmt.Errorf("abbreviation '%s' must be exactly two lower-case characters", abbr)
	}
	return nil
}

// formatValidationError turns validator errors into a short message naming
// the namespaced field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := trimRoot(e.Namespace())
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "pfdlabel":
			return fmt.Errorf("%s: '%v' is not a valid label", field, e.Value())
		case "abbr":
			return fmt.Errorf("%s: '%v' is not a two character abbreviation", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}

// trimRoot drops the struct name from "Document.Streams[0].Label"
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their `label` tag so messages read "Title is required".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})

	if err := v.RegisterValidation("between", validateBetween); err != nil {
		panic(err)
	}

	return v
}

// validateBetween checks an inclusive numeric range given as "min max".
// String fields are parsed as numbers first; unparseable text fails.
func validateBetween(fl validator.FieldLevel) bool {
	lo, hi, ok := parseRange(fl.Param())
	if !ok {
		return false
	}

	field := fl.Field()
	var n float64
	switch field.Kind() {
	case reflect.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(field.String()), 64)
		if err != nil {
			return false
		}
		n = parsed
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = float64(field.Int())
	case reflect.Float32, reflect.Float64:
		n = field.Float()
	default:
		return false
	}

	return n >= lo && n <= hi
}

func parseRange(param string) (float64, float64, bool) {
	parts := strings.Fields(param)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// FieldError is one failed rule, in struct field order.
type FieldError struct {
	Field   string
	Message string
}

func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Message: err.Error()}}
	}

	result := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		result = append(result, FieldError{
			Field:   fe.Field(),
			Message: getErrorMessage(fe),
		})
	}
	return result
}

// FirstValidationError validates data and returns the first failure as an
// ErrValidationFailed, or nil when data is valid.
func FirstValidationError(data interface{}) error {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	return NewValidationError(errs[0].Message)
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "between":
		parts := strings.Fields(err.Param())
		if len(parts) == 2 {
			return fmt.Sprintf("%s must be between %s and %s", err.Field(), parts[0], parts[1])
		}
		return fmt.Sprintf("%s is out of range", err.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("%s must be one of: %s", err.Field(), options)
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", err.Field())
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

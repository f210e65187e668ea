package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance used by all request
// validator middleware.
var Validate = validator.New()

// Translate maps validator errors onto the field->message shape that
// middleware.ValidationErrorResponse expects.
func Translate(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		fieldErrors["body"] = "Invalid request body!"
		return fieldErrors
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors["body"] = "Invalid request body!"
		return fieldErrors
	}

	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			fieldErrors[field] = fmt.Sprintf("%s is required!", fe.Field())
		case "email":
			fieldErrors[field] = "Invalid email!"
		case "min":
			fieldErrors[field] = fmt.Sprintf("%s must be at least %s!", fe.Field(), fe.Param())
		case "max":
			fieldErrors[field] = fmt.Sprintf("%s cannot be more than %s!", fe.Field(), fe.Param())
		case "oneof":
			fieldErrors[field] = fmt.Sprintf("%s must be one of: %s!", fe.Field(), fe.Param())
		default:
			fieldErrors[field] = fmt.Sprintf("%s is invalid!", fe.Field())
		}
	}
	return fieldErrors
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

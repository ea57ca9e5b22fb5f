// internal/app/system/inputval/inputval.go
package inputval

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/taskflow/internal/app/system/apperr"
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator instances cache struct metadata and are
// safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct-tag validation on a mutation input and converts
// failures into a caller-facing Invalid error naming the offending
// fields.
func Validate(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Non-validation failure (e.g. a nil pointer input).
		return apperr.Invalid("invalid input")
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, describe(fe))
	}
	return apperr.Invalid("invalid input: " + strings.Join(fields, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

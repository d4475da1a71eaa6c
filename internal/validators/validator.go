package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/anonto42/introhub/backend/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator. Failures come back as
// VALIDATION errors naming the offending json field.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form", "param"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.Validation("%s", message(fieldErrs[0]))
	}
	return apperrors.Validation("%s", err.Error())
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_if", "required_with", "required_without":
		return fmt.Sprintf("%q is required", field)
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "url":
		return fmt.Sprintf("%q must be a valid uri", field)
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
	case "len":
		return fmt.Sprintf("%q length must be %s characters long", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%q must be a number", field)
	case "eqfield":
		return fmt.Sprintf("%q must match %q", field, fieldName(fe))
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

// fieldName turns the Go field named by an eqfield param into its
// snake_case json name.
func fieldName(fe validator.FieldError) string {
	return toSnake(fe.Param())
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

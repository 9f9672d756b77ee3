// Package validate checks form inputs with go-playground/validator and turns
// the result into apperror violations whose messages can be shown next to
// the offending field.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vs-portfolio/portfolio/internal/apperror"
)

// Validator wraps a configured *validator.Validate. It is safe for
// concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator that reports fields by their form name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s. It returns nil, an *apperror.AppError wrapping
// apperror.ErrValidation, or an internal error if s is not a struct.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	violations := make([]apperror.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, apperror.Violation{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return apperror.Invalid(violations)
}

// Merge combines violations found before struct validation (for example a
// number that failed to parse) with the result of Struct.
func (v *Validator) Merge(pre []apperror.Violation, s any) error {
	err := v.Struct(s)
	if len(pre) == 0 {
		return err
	}

	var appErr *apperror.AppError
	if err != nil && !errors.As(err, &appErr) {
		return err
	}

	all := append([]apperror.Violation{}, pre...)
	if appErr != nil {
		for _, got := range appErr.Violations {
			if !hasField(all, got.Field) {
				all = append(all, got)
			}
		}
	}
	return apperror.Invalid(all)
}

func hasField(vs []apperror.Violation, field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return "Invalid Email Address."
	case "url":
		return fmt.Sprintf("%s must be a valid URL.", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}

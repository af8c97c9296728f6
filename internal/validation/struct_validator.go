package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one failed validation rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator returns the shared validator with the domain tags registered:
//
//	city    - chicago, new york city / new-york-city, washington
//	month   - all or january..june
//	weekday - all or monday..sunday
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()

		v.RegisterValidation("city", isCity)
		v.RegisterValidation("month", isMonth)
		v.RegisterValidation("weekday", isWeekday)

		// Report yaml names so messages match the config file
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			}
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		validate = v
	})
	return validate
}

// Struct validates v against its struct tags. Failures are returned as a
// single VALIDATION AppError carrying the individual field errors.
func Struct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("validation failed", err)
	}

	details := make([]FieldError, 0, len(fieldErrs))
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := formatFieldError(fe)
		details = append(details, FieldError{Field: fieldPath(fe), Message: msg})
		messages = append(messages, msg)
	}

	return apperrors.NewValidationError(strings.Join(messages, "; "), nil).
		WithContext("fields", details)
}

// fieldPath drops the root struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func formatFieldError(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value()))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "city":
		return fmt.Sprintf("%s %q is not a valid city", field, fmt.Sprint(fe.Value()))
	case "month":
		return fmt.Sprintf("%s %q is not a valid month", field, fmt.Sprint(fe.Value()))
	case "weekday":
		return fmt.Sprintf("%s %q is not a valid day", field, fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func isCity(fl validator.FieldLevel) bool {
	_, ok := domain.ParseCity(fl.Field().String())
	return ok
}

func isMonth(fl validator.FieldLevel) bool {
	_, ok := domain.ParseMonth(fl.Field().String())
	return ok
}

func isWeekday(fl validator.FieldLevel) bool {
	_, ok := domain.ParseDay(fl.Field().String())
	return ok
}

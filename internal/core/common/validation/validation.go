package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	errors "github.com/frahmantamala/shift-tracker/internal"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator which reports fields by their json name.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = instance.RegisterValidation("clock", isClock)
	})
	return instance
}

// Struct validates v and folds every failing rule into one AppError.
// message and code describe the overall failure as shown to the client.
func Struct(v interface{}, message string, code errors.ErrorCode) *errors.AppError {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError(message, code).WithCause(err)
	}

	details := make([]errors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, errors.ValidationError{
			Field:   fe.Field(),
			Message: describe(fe),
			Code:    ruleCode(fe.Tag()),
		})
	}

	return errors.NewValidationError(message, code).
		WithDetails(errors.ValidationErrors{Errors: details})
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return fmt.Sprintf("%s is required", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must match %s", fe.Field(), fe.Param())
	case "clock":
		return fmt.Sprintf("%s must be a time of day (HH:MM)", fe.Field())
	case "numeric", "number":
		return fmt.Sprintf("%s must be numeric", fe.Field())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

func ruleCode(tag string) string {
	switch tag {
	case "required", "required_if", "required_unless":
		return string(errors.ErrCodeMissingFields)
	default:
		return string(errors.ErrCodeInvalidFormat)
	}
}

// MissingFields lists the fields an AppError from Struct reports as absent.
func MissingFields(appErr *errors.AppError) []string {
	if appErr == nil {
		return nil
	}
	ve, ok := appErr.Details.(errors.ValidationErrors)
	if !ok {
		return nil
	}
	var fields []string
	for _, e := range ve.Errors {
		if e.Code == string(errors.ErrCodeMissingFields) {
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// isClock accepts a time of day written as HH:MM or HH:MM:SS.
func isClock(fl validator.FieldLevel) bool {
	_, ok := ParseClock(fl.Field().String())
	return ok
}

// ParseClock parses HH:MM or HH:MM:SS.
func ParseClock(value string) (time.Time, bool) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

package reminder

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	datePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	timePattern = regexp.MustCompile(`^(([01]\d|2[0-3]):([0-5]\d)|24:00)$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		return IsValidDate(fl.Field().String())
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsValidTime(fl.Field().String())
	})

	return v
}

// IsValidDate reports whether s looks like DD/MM/YYYY. No calendar check is
// made.
func IsValidDate(s string) bool {
	return datePattern.MatchString(s)
}

// IsValidTime reports whether s is a 24-hour HH:MM value or the literal 24:00.
func IsValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// Validate checks r field by field and returns the first failure as a
// *ValidationError.
func Validate(r Reminder) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		value, _ := fe.Value().(string)
		return &ValidationError{Field: fe.Field(), Value: value}
	}
	return err
}

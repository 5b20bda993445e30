package utils

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

// Validation errors
var (
	ErrBlank             = errors.New("cannot be blank")
	ErrBloodPressure     = errors.New("must be systolic/diastolic, e.g. 120/80")
	ErrSystolicNotHigher = errors.New("systolic must be higher than diastolic")
)

// NotBlank rejects strings that are empty once trimmed. validation.Required
// accepts whitespace.
var NotBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return ErrBlank
	}
	return nil
})

// BloodPressure validates a "systolic/diastolic" reading.
var BloodPressure = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	_, _, err := ParseBloodPressure(s)
	return err
})

// ParseBloodPressure splits "120/80" into its systolic and diastolic parts.
func ParseBloodPressure(bp string) (systolic, diastolic int, err error) {
	parts := strings.Split(strings.TrimSpace(bp), "/")
	if len(parts) != 2 {
		return 0, 0, ErrBloodPressure
	}
	systolic, errSys := strconv.Atoi(strings.TrimSpace(parts[0]))
	diastolic, errDia := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errSys != nil || errDia != nil || systolic <= 0 || diastolic <= 0 {
		return 0, 0, ErrBloodPressure
	}
	if systolic <= diastolic {
		return 0, 0, ErrSystolicNotHigher
	}
	return systolic, diastolic, nil
}

// FieldError builds a single field validation error, matching the shape
// ValidateStruct produces.
func FieldError(field, message string) error {
	return validation.Errors{field: errors.New(message)}
}

// Package validation provides common validation utilities for the goinvoke library.
package validation

import (
	"reflect"
	"time"

	"github.com/robfig/cron/v3"

	gferrors "github.com/vnykmshr/goinvoke/pkg/common/errors"
)

// cronParser accepts the same expressions as memoize.Resetter.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateNonNegativeDuration validates that a duration is non-negative (>= 0).
// Returns a ValidationError if the duration is negative.
func ValidateNonNegativeDuration(module, field string, value time.Duration) error {
	if value < 0 {
		return gferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive duration")
	}
	return nil
}

// ValidateNotNil validates that a value is not nil. Typed nils (a nil func,
// pointer, map, channel, slice or interface stored in value) are rejected too.
// Returns a ValidationError if the value is nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if isNil(value) {
		return gferrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return gferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// ValidateEdges validates that at least one of the leading and trailing
// edges is enabled.
func ValidateEdges(module string, leading, trailing bool) error {
	if !leading && !trailing {
		return gferrors.NewValidationError(module, "trailing", trailing, "leading and trailing are both disabled").
			WithHint("enable at least one edge or the wrapped function never runs")
	}
	return nil
}

// ValidateCronSpec validates a cron expression. Six-field expressions with
// seconds, standard five-field expressions and descriptors such as "@hourly"
// are accepted.
func ValidateCronSpec(module, field string, spec string) error {
	if err := ValidateNotEmpty(module, field, spec); err != nil {
		return err
	}
	if _, err := cronParser.Parse(spec); err != nil {
		return gferrors.NewValidationError(module, field, spec, err.Error()).
			WithHint(`use a cron expression such as "0 */5 * * * *" or "@hourly"`)
	}
	return nil
}

// ParseCronSpec parses a cron expression with the validation parser.
func ParseCronSpec(spec string) (cron.Schedule, error) {
	return cronParser.Parse(spec)
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Func, reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

package validation

import (
	"testing"
	"time"

	"github.com/vnykmshr/goinvoke/pkg/common/errors"
)

func TestValidateNonNegativeDuration(t *testing.T) {
	tests := []struct {
		name      string
		value     time.Duration
		wantError bool
	}{
		{"positive", 100 * time.Millisecond, false},
		{"zero", 0, false},
		{"negative", -time.Nanosecond, true},
		{"large negative", -time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegativeDuration("test", "wait", tt.value)

			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateNotNil(t *testing.T) {
	var nilFunc func(int) error
	var nilPtr *int
	var nilMap map[string]int
	one := 1

	tests := []struct {
		name      string
		value     interface{}
		wantError bool
	}{
		{"untyped nil", nil, true},
		{"nil func", nilFunc, true},
		{"nil pointer", nilPtr, true},
		{"nil map", nilMap, true},
		{"func", func(int) error { return nil }, false},
		{"pointer", &one, false},
		{"int", 0, false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotNil("test", "fn", tt.value)

			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("test", "name", ""); err == nil {
		t.Error("expected error for empty string")
	}
	if err := ValidateNotEmpty("test", "name", "search"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateEdges(t *testing.T) {
	tests := []struct {
		leading, trailing bool
		wantError         bool
	}{
		{true, true, false},
		{true, false, false},
		{false, true, false},
		{false, false, true},
	}

	for _, tt := range tests {
		err := ValidateEdges("test", tt.leading, tt.trailing)
		if (err != nil) != tt.wantError {
			t.Errorf("ValidateEdges(%v, %v) error = %v, wantError %v", tt.leading, tt.trailing, err, tt.wantError)
		}
	}
}

func TestValidateCronSpec(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantError bool
	}{
		{"descriptor", "@hourly", false},
		{"every duration", "@every 30s", false},
		{"five fields", "*/5 * * * *", false},
		{"six fields", "0 */5 * * * *", false},
		{"empty", "", true},
		{"garbage", "not a cron", true},
		{"out of range", "61 * * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSpec("test", "schedule", tt.spec)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateCronSpec(%q) error = %v, wantError %v", tt.spec, err, tt.wantError)
			}
			if err != nil && !errors.IsValidationError(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

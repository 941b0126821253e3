package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// number constrains the generic amount rules.
type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ValidationError represents a single validation error with translation support.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ErrorMap collapses the collection to one message per field, keeping the
// first message recorded for each field.
func (ve ValidationErrors) ErrorMap() ErrorMap {
	out := make(ErrorMap, len(ve))
	for _, err := range ve {
		if _, ok := out[err.Field]; !ok {
			out[err.Field] = err.Message
		}
	}
	return out
}

// Rule represents a single eagerly-bound validation rule.
// Use it for checks that span several fields; per-field checks belong in a RuleSet.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply executes multiple validation rules and returns any validation errors.
func Apply(rules ...Rule) error {
	var errs ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}

	if errs.IsEmpty() {
		return nil
	}

	return errs
}

// Merge joins several validation results into one ValidationErrors value.
// Non-validation errors are returned as-is, first one wins.
func Merge(errs ...error) error {
	var merged ValidationErrors
	for _, err := range errs {
		if err == nil {
			continue
		}
		verrs := ExtractValidationErrors(err)
		if verrs == nil {
			return err
		}
		merged = append(merged, verrs...)
	}
	if merged.IsEmpty() {
		return nil
	}
	return merged
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

// toValidationErrors converts a field-keyed map into a field-sorted slice so the
// resulting error string is stable.
func toValidationErrors(failed map[string]FieldRule) ValidationErrors {
	if len(failed) == 0 {
		return nil
	}

	fields := make([]string, 0, len(failed))
	for field := range failed {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make(ValidationErrors, 0, len(fields))
	for _, field := range fields {
		rule := failed[field]
		values := map[string]any{"field": field}
		for k, v := range rule.TranslationValues {
			values[k] = v
		}
		out = append(out, ValidationError{
			Field:             field,
			Message:           rule.Message,
			TranslationKey:    rule.TranslationKey,
			TranslationValues: values,
		})
	}
	return out
}

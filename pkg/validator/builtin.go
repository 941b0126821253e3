package validator

import (
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@.]+$`)

// Required fails on nil, blank strings and empty collections.
func Required(label string) FieldRule {
	return FieldRule{
		Name: "required",
		Check: func(value any) bool {
			return !isEmpty(value)
		},
		Message:           label + " is required",
		TranslationKey:    "validation.required",
		TranslationValues: map[string]any{"label": label},
	}
}

// Email fails unless the value looks like local@domain.tld.
func Email() FieldRule {
	return FieldRule{
		Name: "email",
		Check: func(value any) bool {
			s, ok := toString(value)
			return ok && emailRegex.MatchString(s)
		},
		Message:        "Please enter a valid email address",
		TranslationKey: "validation.email",
	}
}

// MinLength fails when the value is not string-like or has fewer than n characters.
func MinLength(n int) FieldRule {
	return FieldRule{
		Name: "min_length",
		Check: func(value any) bool {
			s, ok := toString(value)
			return ok && utf8.RuneCountInString(s) >= n
		},
		Message:           fmt.Sprintf("Must be at least %d characters", n),
		TranslationKey:    "validation.min_length",
		TranslationValues: map[string]any{"min": n},
	}
}

// MaxLength fails when the value is not string-like or has more than n characters.
func MaxLength(n int) FieldRule {
	return FieldRule{
		Name: "max_length",
		Check: func(value any) bool {
			s, ok := toString(value)
			return ok && utf8.RuneCountInString(s) <= n
		},
		Message:           fmt.Sprintf("Must be no more than %d characters", n),
		TranslationKey:    "validation.max_length",
		TranslationValues: map[string]any{"max": n},
	}
}

// Numeric fails unless the value parses as a finite number.
func Numeric() FieldRule {
	return FieldRule{
		Name: "numeric",
		Check: func(value any) bool {
			_, ok := toNumber(value)
			return ok
		},
		Message:        "Must be a valid number",
		TranslationKey: "validation.numeric",
	}
}

// PositiveNumber fails unless the value parses as a number strictly greater than zero.
func PositiveNumber() FieldRule {
	return FieldRule{
		Name: "positive_number",
		Check: func(value any) bool {
			n, ok := toNumber(value)
			return ok && n > 0
		},
		Message:        "Must be a positive number",
		TranslationKey: "validation.positive_number",
	}
}

// MinValue fails unless the value is numeric and at least min.
func MinValue(min float64) FieldRule {
	return FieldRule{
		Name: "min_value",
		Check: func(value any) bool {
			n, ok := toNumber(value)
			return ok && n >= min
		},
		Message:           "Must be at least " + formatBound(min),
		TranslationKey:    "validation.min_value",
		TranslationValues: map[string]any{"min": min},
	}
}

// MaxValue fails unless the value is numeric and at most max.
func MaxValue(max float64) FieldRule {
	return FieldRule{
		Name: "max_value",
		Check: func(value any) bool {
			n, ok := toNumber(value)
			return ok && n <= max
		},
		Message:           "Must be no more than " + formatBound(max),
		TranslationKey:    "validation.max_value",
		TranslationValues: map[string]any{"max": max},
	}
}

// OneOf fails unless the string form of the value is one of allowed.
func OneOf(allowed ...string) FieldRule {
	return FieldRule{
		Name: "one_of",
		Check: func(value any) bool {
			s, ok := toString(value)
			return ok && slices.Contains(allowed, s)
		},
		Message:           "Please select a valid option",
		TranslationKey:    "validation.one_of",
		TranslationValues: map[string]any{"allowed": allowed},
	}
}

// Pattern fails unless the value is a string matching re.
func Pattern(re *regexp.Regexp, message string) FieldRule {
	return FieldRule{
		Name: "pattern",
		Check: func(value any) bool {
			s, ok := toString(value)
			return ok && re.MatchString(s)
		},
		Message:           message,
		TranslationKey:    "validation.pattern",
		TranslationValues: map[string]any{"pattern": re.String()},
	}
}

// Optional wraps rule so that empty values pass.
func Optional(rule FieldRule) FieldRule {
	inner := rule
	rule.Check = func(value any) bool {
		if isEmpty(value) {
			return true
		}
		return inner.Test(value)
	}
	return rule
}

// Custom builds a rule from an arbitrary predicate.
func Custom(name string, check Predicate, message string) FieldRule {
	return FieldRule{
		Name:           name,
		Check:          check,
		Message:        message,
		TranslationKey: "validation." + name,
	}
}

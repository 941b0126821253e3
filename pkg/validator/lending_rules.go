package validator

import "fmt"

// PositiveAmount validates that a monetary amount is strictly greater than zero.
func PositiveAmount[T number](field string, value T) Rule {
	return Rule{
		Check: func() bool {
			return value > 0
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Must be a positive number",
			TranslationKey: "validation.positive_amount",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// AmountWithin validates that an offered amount does not exceed the requested one.
func AmountWithin[T number](field string, offered, requested T) Rule {
	return Rule{
		Check: func() bool {
			return offered <= requested
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("Must not exceed the requested amount of %v", requested),
			TranslationKey: "validation.amount_within",
			TranslationValues: map[string]any{
				"field":     field,
				"requested": requested,
			},
		},
	}
}

// InterestRate validates an annual percentage rate between 0 and maxRate inclusive.
func InterestRate(field string, value float64, maxRate float64) Rule {
	return Rule{
		Check: func() bool {
			return value >= 0 && value <= maxRate
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("Interest rate must be between 0%% and %.2f%%", maxRate),
			TranslationKey: "validation.interest_rate",
			TranslationValues: map[string]any{
				"field":    field,
				"max_rate": maxRate,
			},
		},
	}
}

// TermWithin validates a repayment term in months against an inclusive range.
func TermWithin(field string, months, min, max int) Rule {
	return Rule{
		Check: func() bool {
			return months >= min && months <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("Term must be between %d and %d months", min, max),
			TranslationKey: "validation.term_within",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
				"max":   max,
			},
		},
	}
}

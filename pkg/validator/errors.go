package validator

import "errors"

var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownRule is returned when a declarative rule set names a rule that does not exist.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrInvalidRuleArgs is returned when a declarative rule is missing or has malformed arguments.
	ErrInvalidRuleArgs = errors.New("invalid validation rule arguments")

	// ErrInvalidRuleFile is returned when a rule set document cannot be decoded.
	ErrInvalidRuleFile = errors.New("invalid rule set document")
)

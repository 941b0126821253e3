// Package validator provides rule-based validation for form records and a set
// of eagerly bound helper rules for cross-field checks.
//
// The central type is Engine. It is configured with a RuleSet that maps field
// names to ordered FieldRule lists. Validate evaluates every field named in the
// rule set against a Record (absent fields are read as nil) and keeps, for each
// failing field, the message of the first rule that failed. Fields that pass
// every rule are absent from the resulting ErrorMap. Each Validate call
// replaces the map wholesale; ClearErrors empties it.
//
// # Usage
//
//	rules := validator.RuleSet{
//	    "email":  {validator.Required("Email"), validator.Email()},
//	    "amount": {validator.Required("Loan amount"), validator.PositiveNumber()},
//	}
//
//	form := validator.New(rules)
//	if !form.Validate(validator.Record{"email": "a@b.com", "amount": "0"}) {
//	    errs := form.Errors() // {"amount": "Must be a positive number"}
//	}
//
// Rule sets can also be declared in YAML and loaded with ParseRuleSets.
//
// # Error Handling
//
// A predicate that panics is treated as a failing rule. Engine.Err and CheckErr
// expose the current errors as ValidationErrors, which implements error and is
// recognised by ExtractValidationErrors and IsValidationError.
//
// Rule and Apply cover checks that depend on more than one field:
//
//	err := validator.Apply(
//	    validator.AmountWithin("amount", offered, requested),
//	    validator.InterestRate("interest_rate", rate, 60),
//	)
package validator

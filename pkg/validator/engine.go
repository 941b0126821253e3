package validator

import "maps"

// Predicate reports whether a single field value is acceptable.
// Predicates must be pure; absent fields are passed as nil.
type Predicate func(value any) bool

// FieldRule pairs a predicate with the message shown when it fails.
type FieldRule struct {
	Name              string
	Check             Predicate
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// WithMessage returns a copy of the rule reporting msg on failure.
func (r FieldRule) WithMessage(msg string) FieldRule {
	r.Message = msg
	return r
}

// Test evaluates the rule against value. A predicate that panics counts as a failure.
func (r FieldRule) Test(value any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return r.Check(value)
}

// RuleSet maps field names to ordered rule lists.
// The first failing rule of a field decides that field's error.
type RuleSet map[string][]FieldRule

// Fields returns the number of fields covered by the rule set.
func (rs RuleSet) Fields() int {
	return len(rs)
}

// Record holds the values of one form submission keyed by field name.
type Record map[string]any

// ErrorMap maps a failing field to its single error message.
// Fields that pass every rule are absent.
type ErrorMap map[string]string

// Has reports whether field has an error.
func (m ErrorMap) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// Get returns the error message for field, or an empty string.
func (m ErrorMap) Get(field string) string {
	return m[field]
}

// Engine validates records against a rule set and keeps the error map of the
// last run. An Engine belongs to one form and is not safe for concurrent use.
type Engine struct {
	rules  RuleSet
	failed map[string]FieldRule
	errors ErrorMap
}

// New returns an engine configured with rules.
func New(rules RuleSet) *Engine {
	e := &Engine{errors: ErrorMap{}}
	e.Configure(rules)
	return e
}

// Configure replaces the rule set. The rule set itself is not validated and
// the current error map is left untouched.
func (e *Engine) Configure(rules RuleSet) {
	e.rules = rules
}

// Validate evaluates every field named in the rule set against record and
// replaces the error map with the result. It reports whether the record is valid.
func (e *Engine) Validate(record Record) bool {
	failed := evaluate(e.rules, record)

	errs := make(ErrorMap, len(failed))
	for field, rule := range failed {
		errs[field] = rule.Message
	}

	e.failed = failed
	e.errors = errs
	return len(errs) == 0
}

// ClearErrors empties the error map.
func (e *Engine) ClearErrors() {
	e.failed = nil
	e.errors = ErrorMap{}
}

// Errors returns a copy of the error map from the last Validate or ClearErrors call.
func (e *Engine) Errors() ErrorMap {
	return maps.Clone(e.errors)
}

// Valid reports whether the current error map is empty.
func (e *Engine) Valid() bool {
	return len(e.errors) == 0
}

// Err returns the current errors as ValidationErrors sorted by field, or nil.
func (e *Engine) Err() error {
	if errs := toValidationErrors(e.failed); errs != nil {
		return errs
	}
	return nil
}

// Check runs rules against record without keeping state.
func Check(rules RuleSet, record Record) ErrorMap {
	failed := evaluate(rules, record)
	out := make(ErrorMap, len(failed))
	for field, rule := range failed {
		out[field] = rule.Message
	}
	return out
}

// CheckErr runs rules against record and returns ValidationErrors, or nil when valid.
func CheckErr(rules RuleSet, record Record) error {
	if errs := toValidationErrors(evaluate(rules, record)); errs != nil {
		return errs
	}
	return nil
}

func evaluate(rules RuleSet, record Record) map[string]FieldRule {
	failed := make(map[string]FieldRule)
	for field, fieldRules := range rules {
		value := record[field]
		for _, rule := range fieldRules {
			if !rule.Test(value) {
				failed[field] = rule
				break
			}
		}
	}
	return failed
}

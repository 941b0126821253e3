package loans

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/microfin-hq/microfin/pkg/validator"
)

// Form names, as used in rules.yaml and the /api/validate/{form} endpoint.
const (
	FormLogin           = "login"
	FormRegister        = "register"
	FormLoanApplication = "loan_application"
	FormBusinessProfile = "business_profile"
	FormLenderTerms     = "lender_terms"
)

//go:embed rules.yaml
var rulesYAML []byte

var defaultRuleSets = sync.OnceValues(func() (map[string]validator.RuleSet, error) {
	return validator.ParseRuleSets(rulesYAML)
})

// DefaultRuleSets returns the built-in form rule sets.
func DefaultRuleSets() (map[string]validator.RuleSet, error) {
	sets, err := defaultRuleSets()
	if err != nil {
		return nil, fmt.Errorf("loans: embedded rules: %w", err)
	}
	return sets, nil
}

// Forms lists the names of the known forms in sorted order.
func (s *Service) Forms() []string {
	names := make([]string, 0, len(s.rules))
	for name := range s.rules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Rules returns the rule set of form.
func (s *Service) Rules(form string) (validator.RuleSet, error) {
	rs, ok := s.rules[form]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, form)
	}
	return rs, nil
}

// Validate checks rec against form and reports the outcome to the metrics
// observer. An empty map means the record is valid.
func (s *Service) Validate(form string, rec validator.Record) (validator.ErrorMap, error) {
	rs, err := s.Rules(form)
	if err != nil {
		return nil, err
	}
	engine := validator.New(rs)
	valid := engine.Validate(rec)
	s.observer.ObserveValidation(form, valid)
	return engine.Errors(), nil
}

// check validates rec against form and returns the failures as an error.
func (s *Service) check(form string, rec validator.Record) error {
	rs, err := s.Rules(form)
	if err != nil {
		return err
	}
	engine := validator.New(rs)
	valid := engine.Validate(rec)
	s.observer.ObserveValidation(form, valid)
	return engine.Err()
}

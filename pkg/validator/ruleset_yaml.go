package validator

import (
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// RuleSpec is the declarative form of a single FieldRule.
type RuleSpec struct {
	Rule    string   `yaml:"rule"`
	Label   string   `yaml:"label,omitempty"`
	Value   *float64 `yaml:"value,omitempty"`
	Values  []string `yaml:"values,omitempty"`
	Pattern string   `yaml:"pattern,omitempty"`
	Message string   `yaml:"message,omitempty"`

	// Optional lets empty values pass the rule.
	Optional bool `yaml:"optional,omitempty"`
}

// Build turns the declaration into a FieldRule.
func (s RuleSpec) Build() (FieldRule, error) {
	var rule FieldRule

	switch s.Rule {
	case "required":
		if s.Label == "" {
			return FieldRule{}, fmt.Errorf("%w: required needs a label", ErrInvalidRuleArgs)
		}
		rule = Required(s.Label)
	case "email":
		rule = Email()
	case "numeric":
		rule = Numeric()
	case "positive_number":
		rule = PositiveNumber()
	case "min_length", "max_length":
		if s.Value == nil || *s.Value < 0 || *s.Value != float64(int(*s.Value)) {
			return FieldRule{}, fmt.Errorf("%w: %s needs a non-negative integer value", ErrInvalidRuleArgs, s.Rule)
		}
		if s.Rule == "min_length" {
			rule = MinLength(int(*s.Value))
		} else {
			rule = MaxLength(int(*s.Value))
		}
	case "min_value", "max_value":
		if s.Value == nil {
			return FieldRule{}, fmt.Errorf("%w: %s needs a value", ErrInvalidRuleArgs, s.Rule)
		}
		if s.Rule == "min_value" {
			rule = MinValue(*s.Value)
		} else {
			rule = MaxValue(*s.Value)
		}
	case "one_of":
		if len(s.Values) == 0 {
			return FieldRule{}, fmt.Errorf("%w: one_of needs values", ErrInvalidRuleArgs)
		}
		rule = OneOf(s.Values...)
	case "pattern":
		if s.Pattern == "" || s.Message == "" {
			return FieldRule{}, fmt.Errorf("%w: pattern needs pattern and message", ErrInvalidRuleArgs)
		}
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return FieldRule{}, errors.Join(ErrInvalidRuleArgs, err)
		}
		rule = Pattern(re, s.Message)
	default:
		return FieldRule{}, fmt.Errorf("%w: %q", ErrUnknownRule, s.Rule)
	}

	if s.Message != "" {
		rule = rule.WithMessage(s.Message)
	}
	if s.Optional {
		rule = Optional(rule)
	}
	return rule, nil
}

// ParseRuleSets decodes named rule sets from a YAML document of the form
// form -> field -> [rule specs].
func ParseRuleSets(data []byte) (map[string]RuleSet, error) {
	var doc map[string]map[string][]RuleSpec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidRuleFile, err)
	}

	out := make(map[string]RuleSet, len(doc))
	for form, fields := range doc {
		rs := make(RuleSet, len(fields))
		for field, specs := range fields {
			rules := make([]FieldRule, 0, len(specs))
			for i, spec := range specs {
				rule, err := spec.Build()
				if err != nil {
					return nil, fmt.Errorf("%s.%s[%d]: %w", form, field, i, err)
				}
				rules = append(rules, rule)
			}
			rs[field] = rules
		}
		out[form] = rs
	}
	return out, nil
}

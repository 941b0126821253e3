package config

import (
	"fmt"
	"strings"
)

// Environment names the deployment stage the process runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// ParseEnvironment accepts the full names and the short aliases dev, stage and prod.
// An empty string means Development.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dev", string(Development):
		return Development, nil
	case "stage", string(Staging):
		return Staging, nil
	case "prod", string(Production):
		return Production, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, s)
	}
}

// UnmarshalText lets env-tagged fields hold an Environment directly.
func (e *Environment) UnmarshalText(text []byte) error {
	parsed, err := ParseEnvironment(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func (e Environment) IsProduction() bool  { return e == Production }
func (e Environment) IsDevelopment() bool { return e == Development }

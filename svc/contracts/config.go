package contracts

import "time"

// Config bounds the in-memory analysis store and explanation cache.
type Config struct {
	MaxAnalyses      int           `env:"CONTRACTS_MAX_ANALYSES" envDefault:"200"`
	MaxTextLength    int           `env:"CONTRACTS_MAX_TEXT_LENGTH" envDefault:"50000"`
	ExplanationCache int           `env:"CONTRACTS_EXPLANATION_CACHE" envDefault:"1000"`
	ExplanationTTL   time.Duration `env:"CONTRACTS_EXPLANATION_TTL" envDefault:"1h"`
}

func (c Config) withDefaults() Config {
	if c.MaxAnalyses <= 0 {
		c.MaxAnalyses = 200
	}
	if c.MaxTextLength <= 0 {
		c.MaxTextLength = 50000
	}
	if c.ExplanationCache <= 0 {
		c.ExplanationCache = 1000
	}
	return c
}

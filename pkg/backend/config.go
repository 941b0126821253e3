package backend

import "time"

// Config is the environment form of the client settings.
type Config struct {
	BaseURL    string        `env:"BACKEND_URL,required"`
	Timeout    time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
	MaxRetries uint64        `env:"BACKEND_MAX_RETRIES" envDefault:"2"`
	RetryBase  time.Duration `env:"BACKEND_RETRY_BASE" envDefault:"100ms"`
}

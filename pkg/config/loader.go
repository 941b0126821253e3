package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache holds one parsed copy per configuration type.
type cache struct {
	mu     sync.RWMutex
	values map[reflect.Type]any
}

var (
	loaded = &cache{values: make(map[reflect.Type]any)}

	dotenvOnce sync.Once
)

// Load parses environment variables into v. The first call of the process
// also reads a .env file from the working directory when one exists.
// Each configuration type is parsed once; later calls get the cached copy.
//
//	type BackendConfig struct {
//		URL     string        `env:"BACKEND_URL,required"`
//		Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg BackendConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := reflect.TypeFor[T]()

	loaded.mu.RLock()
	cached, ok := loaded.values[key]
	loaded.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	if cached, ok := loaded.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	loaded.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad is Load that panics on failure. Use it for settings the process
// cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration so the next Load parses again.
func Reset() {
	loaded.mu.Lock()
	loaded.values = make(map[reflect.Type]any)
	loaded.mu.Unlock()
}

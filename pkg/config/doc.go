// Package config loads typed application settings from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct-tag parsing and
// github.com/joho/godotenv for optional .env files. Every configuration type is
// parsed once per process and cached; Reset clears the cache in tests.
//
//	type ServerConfig struct {
//		Addr string             `env:"HTTP_ADDR" envDefault:":8080"`
//		Env  config.Environment `env:"APP_ENV" envDefault:"development"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
//
// Environment understands development, staging and production along with the
// dev, stage and prod aliases.
package config

package session

import (
	"strings"
	"time"
)

// Config holds session settings.
type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"mf_sid"`
	// Secrets is a comma separated list; the first one encrypts new cookies.
	Secrets         string        `env:"SESSION_SECRETS,required"`
	IdleTimeout     time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"2h"`
	MaxLifetime     time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"168h"`
	TouchThreshold  time.Duration `env:"SESSION_TOUCH_THRESHOLD" envDefault:"5m"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`
	SecureCookies   bool          `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
	LoginPath       string        `env:"SESSION_LOGIN_PATH" envDefault:"/login"`
}

// SecretList splits Secrets on commas.
func (c Config) SecretList() []string {
	var out []string
	for _, s := range strings.Split(c.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c Config) withDefaults() Config {
	if c.CookieName == "" {
		c.CookieName = "mf_sid"
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 2 * time.Hour
	}
	if c.MaxLifetime <= 0 {
		c.MaxLifetime = 7 * 24 * time.Hour
	}
	if c.LoginPath == "" {
		c.LoginPath = "/login"
	}
	return c
}

package httpserver

import (
	"context"
	"log/slog"
	"time"
)

// Option configures the HTTP server.
type Option func(*options)

// WithAddr sets the listen address. Use ":0" for a random port.
func WithAddr(addr string) Option {
	return func(o *options) {
		if addr != "" {
			o.addr = addr
		}
	}
}

// WithTimeouts sets the read, write and idle timeouts. Zero values leave the
// net/http default in place.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(o *options) {
		o.readTimeout, o.writeTimeout, o.idleTimeout = read, write, idle
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStartHook runs h after the listener is bound and before serving.
func WithStartHook(h func(context.Context) error) Option {
	return func(o *options) {
		if h != nil {
			o.startHooks = append(o.startHooks, h)
		}
	}
}

// WithStopHook runs h after the server has shut down.
func WithStopHook(h func(context.Context) error) Option {
	return func(o *options) {
		if h != nil {
			o.stopHooks = append(o.stopHooks, h)
		}
	}
}

// Command server runs the microfinance marketplace web application.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/microfin-hq/microfin/modules/marketplace"
	"github.com/microfin-hq/microfin/pkg/backend"
	"github.com/microfin-hq/microfin/pkg/clientip"
	"github.com/microfin-hq/microfin/pkg/config"
	"github.com/microfin-hq/microfin/pkg/httpserver"
	"github.com/microfin-hq/microfin/pkg/logger"
	"github.com/microfin-hq/microfin/pkg/metrics"
	"github.com/microfin-hq/microfin/pkg/ratelimiter"
	"github.com/microfin-hq/microfin/pkg/requestid"
	"github.com/microfin-hq/microfin/pkg/session"
	"github.com/microfin-hq/microfin/svc/contracts"
	"github.com/microfin-hq/microfin/svc/loans"
)

type appConfig struct {
	Name string             `env:"APP_NAME" envDefault:"microfin"`
	Env  config.Environment `env:"APP_ENV" envDefault:"development"`
}

type settings struct {
	app       appConfig
	server    httpserver.Config
	backend   backend.Config
	session   session.Config
	metrics   metrics.Config
	contracts contracts.Config
	claude    contracts.ClaudeConfig
	rateLimit ratelimiter.Config
}

func loadSettings() (settings, error) {
	var s settings
	err := errors.Join(
		config.Load(&s.app),
		config.Load(&s.server),
		config.Load(&s.backend),
		config.Load(&s.session),
		config.Load(&s.metrics),
		config.Load(&s.contracts),
		config.Load(&s.claude),
		config.Load(&s.rateLimit),
	)
	return s, err
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.app.Env, cfg.app.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), session.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var collector *metrics.Collector
	if cfg.metrics.Enabled {
		collector = metrics.New(cfg.metrics)
	}

	client, err := backend.New(cfg.backend,
		backend.WithLogger(log),
		backend.WithObserver(collector),
	)
	if err != nil {
		return err
	}

	sessions, err := session.New(cfg.session, session.WithLogger(log))
	if err != nil {
		return err
	}

	loanSvc, err := loans.NewService(loans.FromClient(client),
		loans.WithObserver(collector),
		loans.WithLogger(log),
	)
	if err != nil {
		return err
	}

	var provider contracts.Provider = contracts.NewBackendProvider(client)
	if cfg.claude.Enabled() {
		provider = contracts.NewClaude(cfg.claude)
	}
	contractSvc := contracts.NewService(provider, cfg.contracts,
		contracts.WithObserver(collector),
		contracts.WithLogger(log),
	)
	log.InfoContext(ctx, "contract analysis configured", slog.String("provider", provider.Name()))

	ips := clientip.New(cfg.server.TrustedProxyHeaders...)
	limits := ratelimiter.NewMemoryStore()
	limiter, err := ratelimiter.NewBucket(limits, cfg.rateLimit)
	if err != nil {
		return err
	}

	mod := marketplace.New(loanSvc, contractSvc, sessions,
		marketplace.WithLogger(log),
		marketplace.WithLimiter(limiter, ratelimiter.ByPrincipal(ips.Key)),
	)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		middleware.Recoverer,
		httpserver.AccessLog(log, ips, "/health/live", "/health/ready", "/metrics"),
		collector.Middleware,
	)
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, client.Ping))
	r.Handle("/metrics", collector.Handler())
	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)
		r.Mount("/", mod.Handle())
	})

	srv := httpserver.NewFromConfig(cfg.server,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(context.Context) error {
			return errors.Join(sessions.Close(), limits.Close())
		}),
	)
	return srv.Run(ctx, r)
}

// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run binds the listener, runs start hooks, serves until the context is
// cancelled or SIGINT/SIGTERM arrives, then calls Shutdown with the configured
// deadline and runs stop hooks. LivenessHandler and ReadinessHandler back the
// /healthz and /readyz probes.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(context.Context) error { return sessions.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver

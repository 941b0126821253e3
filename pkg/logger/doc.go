// Package logger builds *slog.Logger values with functional options and a
// handler decorator that copies request-scoped values from context.Context
// into every record.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "microfin"),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), session.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "loan application submitted",
//		logger.Form("loan_application"),
//		logger.ApplicationID(app.ID),
//	)
//
// The helpers in attr.go keep attribute keys consistent across packages.
// Helpers taking optional values return an empty slog.Attr for zero input,
// which slog drops.
package logger

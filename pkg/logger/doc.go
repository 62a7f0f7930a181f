// Package logger builds configured slog.Logger instances with automatic
// context attribute injection.
//
// The factory wraps the chosen slog handler in a ContextHandler that runs
// registered extractors on every record, so request-scoped data such as
// the tenant id and environment appears on log lines without each call
// site passing it explicitly:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "saasbase"),
//		logger.WithContextExtractors(
//			tenant.LoggerExtractor(),
//			environment.LoggerExtractor(),
//		),
//	)
package logger

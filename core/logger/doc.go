// Package logger builds the zap logger used by the CLI and the HTTP server.
//
// New picks zap's development config for the debug level and the production
// config otherwise, then applies the configured level and encoding (json or
// console). An unknown level is an error rather than a silent fallback.
//
// WithRayID returns a child logger carrying the ray id stored by the rayid
// middleware, so that every line logged while serving a request can be
// correlated:
//
//	log, _ := logger.New(&cfg.Log)
//	l := logger.WithRayID(log, c)
//	l.Warn("Comparison rejected", zap.Error(err))
package logger

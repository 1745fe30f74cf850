// Package logging provides the small logging facade used across trsa.
//
// Logger wraps a subset of log/slog with context-aware methods so applications can plug in
// their own implementation. New(nil) binds to slog.Default(). FromSettings builds a console
// or rotating-file logger from config.LoggerSettings.
//
// Never log private exponents. Use Redacted to record that a value was deliberately left out:
//
//	logger.Info(ctx, "key pair generated", "key_id", pub.ID(), logging.Redacted("private_exponent"))
package logging

// Package logger wraps zap with a console encoder, a swappable global logger,
// and helpers that pull the logger out of a context.
//
// The TUI owns the terminal, so cmd points the sink at a log file there; the
// headless watch command logs to stderr.
package logger

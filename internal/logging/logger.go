// Package logging defines the structured-logging interface used across the
// notes client. The only implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request classified", "path", path, "class", class)
type Logger interface {
	// Debug logs per-request chatter (gateway traffic, guard decisions).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs session transitions and other user-relevant events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs failures the client recovers from on its own.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures that abort an operation.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

package schema_registry

import (
	"context"
	"time"
)

// DefaultTimeout bounds each registry HTTP request when Config.Timeout is unset.
const DefaultTimeout = 10 * time.Second

// Config holds configuration for the schema registry client.
type Config struct {
	// URL is the schema registry endpoint (e.g., "http://localhost:8081").
	URL string

	// Username for basic auth (optional).
	Username string

	// Password for basic auth (optional).
	Password string

	// Timeout bounds each HTTP request to the registry. A request that
	// exceeds it fails with ErrRegistryUnreachable. Defaults to
	// DefaultTimeout.
	Timeout time.Duration
}

// SerializerConfig holds configuration for the Serializer.
type SerializerConfig struct {
	// AlwaysFetchLatest forces every Encode call to ask the registry for
	// the subject's latest schema instead of reusing the cached latest id.
	// This trades registry load for freshness; the cached id can otherwise
	// lag behind a newly registered version until Invalidate is called.
	AlwaysFetchLatest bool
}

// Logger is an interface that matches the v1/logger.Logger surface used by
// this package. It provides context-aware structured logging with optional
// error and field parameters.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

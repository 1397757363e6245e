// Package contextkeys provides centralized context key definitions
//
// IMPORTANT: All context keys used across the application must be defined here.
// This prevents typos, documents dependencies, and makes key usage discoverable.
//
// USAGE PATTERN:
//   import "github.com/platinummonkey/quill/pkg/contextkeys"
//   ctx = contextkeys.WithIdentity(ctx, user)
//   raw := contextkeys.IdentityValue(ctx)
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// IdentityKey contains the *auth.User resolved for the current request,
	// or nothing when the request is anonymous.
	// Set by: middleware.Auth (pkg/middleware/auth.go)
	// Required by: post handlers, visibility policy decisions
	// Type: *auth.User
	IdentityKey Key = "identity"

	// RequestIDKey contains request ID string (UUID)
	// Set by: middleware.RequestID
	// Used by: Logger, request tracing
	// Type: string
	RequestIDKey Key = "request_id"

	// LoggerKey contains *observability.Logger
	// Set by: middleware.Logging
	// Used by: Handlers that need structured logging with request context
	// Type: *observability.Logger
	LoggerKey Key = "logger"
)

// Identity is stored as an untyped value to avoid an import cycle with
// pkg/auth; callers go through the typed helpers in pkg/auth instead of
// touching these directly.

// WithIdentity binds the resolved identity to the request context. The
// binding lives only as long as the request's context, so it can never
// leak into another request.
func WithIdentity(ctx context.Context, user interface{}) context.Context {
	return context.WithValue(ctx, IdentityKey, user)
}

// IdentityValue retrieves the raw identity value from context
func IdentityValue(ctx context.Context) interface{} {
	return ctx.Value(IdentityKey)
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger interface{}) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// LoggerValue retrieves the raw logger value from context
func LoggerValue(ctx context.Context) interface{} {
	return ctx.Value(LoggerKey)
}

// Package config loads application configuration from QUILL_* environment
// variables with sensible defaults, and validates the combination before
// the service starts.
package config

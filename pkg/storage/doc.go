// Package storage defines the typed error vocabulary and configuration for
// the relational store backing the Quill API.
//
// The store itself is implemented by pkg/storage/sqlstore against the
// interface the consuming packages declare (posts.Store, auth.UserSource).
// Services translate the errors defined here 1:1 to HTTP status codes:
// ErrNotFound becomes 404 and *ValidationError becomes 422. Nothing is
// swallowed silently.
package storage

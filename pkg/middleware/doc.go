// Package middleware provides the HTTP middleware chain: identity
// resolution, request ids, structured request logging, metrics and panic
// recovery.
//
// Identity resolution runs on every wrapped route and binds the result to
// the request context only; there is no process-wide current-user state, so
// identities cannot leak between concurrent requests.
package middleware

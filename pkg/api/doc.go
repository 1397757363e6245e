// Package api assembles the HTTP server: routes, middleware chain and the
// operational endpoints (/health, /readyz, /metrics).
package api

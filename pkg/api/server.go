package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/quill/pkg/httputil"
	"github.com/platinummonkey/quill/pkg/middleware"
	"github.com/platinummonkey/quill/pkg/observability"
	"github.com/platinummonkey/quill/pkg/posts"
)

// Server is the assembled HTTP API
type Server struct {
	router *mux.Router
}

// NewServer wires routes and the middleware chain. health and metrics may
// be nil (e.g. in tests); their endpoints are then not registered.
func NewServer(
	postHandlers *posts.Handlers,
	authMW *middleware.Auth,
	health *observability.HealthChecker,
	metrics *observability.Metrics,
	logger *observability.Logger,
) *Server {
	router := mux.NewRouter()

	router.Use(mux.MiddlewareFunc(middleware.RequestID))
	router.Use(mux.MiddlewareFunc(middleware.Logging(logger)))
	if metrics != nil {
		router.Use(mux.MiddlewareFunc(middleware.Metrics(metrics)))
	}
	router.Use(mux.MiddlewareFunc(middleware.Recovery(logger)))

	// Public health contract: a flat body, no dependency detail
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteSuccess(w, map[string]string{"api": "OK"})
	}).Methods("GET")

	if health != nil {
		router.HandleFunc("/readyz", health.Readiness).Methods("GET")
	}
	if metrics != nil {
		router.Handle("/metrics", metrics.Handler()).Methods("GET")
	}

	postHandlers.RegisterRoutes(router, authMW.Optional, authMW.Required)

	return &Server{router: router}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

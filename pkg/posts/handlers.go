package posts

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/quill/pkg/auth"
	"github.com/platinummonkey/quill/pkg/httputil"
	"github.com/platinummonkey/quill/pkg/observability"
	"github.com/platinummonkey/quill/pkg/storage"
)

// Handlers exposes the post service over HTTP
type Handlers struct {
	service *Service
}

// NewHandlers creates the HTTP handlers for posts
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// Middleware wraps a handler, e.g. with authentication
type Middleware func(http.Handler) http.Handler

// RegisterRoutes attaches the post routes to the router. Read routes get
// optional authentication (anonymous allowed), write routes require it.
func (h *Handlers) RegisterRoutes(router *mux.Router, optionalAuth, requireAuth Middleware) {
	router.Handle("/posts", optionalAuth(http.HandlerFunc(h.index))).Methods("GET")
	router.Handle("/posts/{id:[0-9]+}", optionalAuth(http.HandlerFunc(h.show))).Methods("GET")
	router.Handle("/posts", requireAuth(http.HandlerFunc(h.create))).Methods("POST")
	router.Handle("/posts/{id:[0-9]+}", requireAuth(http.HandlerFunc(h.update))).Methods("PUT")
	router.Handle("/posts/{id:[0-9]+}/report", requireAuth(http.HandlerFunc(h.requestReport))).Methods("POST")
}

// GET /posts?search=
func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	query := r.URL.Query().Get("search")

	list, err := h.service.Index(r.Context(), query, identity)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, list)
}

// GET /posts/{id}
func (h *Handlers) show(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParsePathInt64(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	identity, _ := auth.IdentityFromContext(r.Context())
	post, err := h.service.Show(r.Context(), id, identity)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, post)
}

// POST /posts
func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httputil.ParseJSON(r, &req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	identity, _ := auth.IdentityFromContext(r.Context())
	post, err := h.service.Create(r.Context(), req, identity)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteCreated(w, post)
}

// PUT /posts/{id}
func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParsePathInt64(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	var req UpdateRequest
	if err := httputil.ParseJSON(r, &req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	identity, _ := auth.IdentityFromContext(r.Context())
	post, err := h.service.Update(r.Context(), id, req, identity)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, post)
}

// POST /posts/{id}/report
func (h *Handlers) requestReport(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParsePathInt64(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	identity, _ := auth.IdentityFromContext(r.Context())
	if err := h.service.RequestReport(r.Context(), id, identity); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteAccepted(w, map[string]string{"status": "queued"})
}

// writeServiceError translates service errors to HTTP responses. Anything
// unclassified is logged and surfaced as a generic 500.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *storage.ValidationError
	switch {
	case errors.Is(err, ErrUnauthorized):
		httputil.WriteUnauthorized(w, "Unauthorized")
	case errors.Is(err, storage.ErrNotFound):
		httputil.WriteNotFound(w, "Post Not Found")
	case errors.As(err, &ve):
		httputil.WriteUnprocessableEntity(w, ve.Error())
	case errors.Is(err, ErrReportUnavailable):
		httputil.WriteServiceUnavailable(w, "Report generation unavailable, try again later")
	default:
		observability.FromContext(r.Context()).WithError(err).Error("request failed")
		httputil.WriteInternalError(w)
	}
}

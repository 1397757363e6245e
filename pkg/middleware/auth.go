package middleware

import (
	"net/http"

	"github.com/platinummonkey/quill/pkg/auth"
	"github.com/platinummonkey/quill/pkg/httputil"
	"github.com/platinummonkey/quill/pkg/observability"
)

// Auth resolves the bearer identity for incoming requests
type Auth struct {
	resolver *auth.Resolver
}

// NewAuth creates the authentication middleware
func NewAuth(resolver *auth.Resolver) *Auth {
	return &Auth{resolver: resolver}
}

// Optional resolves the identity when a valid token is presented and passes
// anonymous requests through. Read endpoints use this so drafts can be
// shown to their author.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			observability.FromContext(r.Context()).WithError(err).Error("identity resolution failed")
			httputil.WriteInternalError(w)
			return
		}
		if user != nil {
			r = r.WithContext(auth.WithIdentity(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// Required rejects requests that do not resolve to a user with 401. A
// malformed header and an unknown token get the same response.
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			observability.FromContext(r.Context()).WithError(err).Error("identity resolution failed")
			httputil.WriteInternalError(w)
			return
		}
		if user == nil {
			httputil.WriteUnauthorized(w, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), user)))
	})
}

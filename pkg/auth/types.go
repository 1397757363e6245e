package auth

import (
	"context"
	"time"

	"github.com/platinummonkey/quill/pkg/contextkeys"
)

// User is an account that owns posts. AuthToken is the opaque bearer
// credential matched against the Authorization header; it is immutable after
// creation and never serialized in API responses.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AuthToken string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WithIdentity binds the resolved user to the request context
func WithIdentity(ctx context.Context, user *User) context.Context {
	return contextkeys.WithIdentity(ctx, user)
}

// IdentityFromContext returns the user bound to the request context.
// ok is false for anonymous requests.
func IdentityFromContext(ctx context.Context) (*User, bool) {
	user, ok := contextkeys.IdentityValue(ctx).(*User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

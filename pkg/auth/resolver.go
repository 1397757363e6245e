package auth

import (
	"context"
	"regexp"
)

// bearerPattern matches "Bearer <token>" where token is one or more word
// characters. Anything else is treated as no credential at all.
var bearerPattern = regexp.MustCompile(`^Bearer (\w+)$`)

// UserSource looks up users by their auth token.
//
// GetUserByToken returns (nil, nil) when no user owns the token: an unknown
// token is an anonymous caller, not a failure. A non-nil error means the
// lookup itself failed (storage unavailable).
type UserSource interface {
	GetUserByToken(ctx context.Context, token string) (*User, error)
}

// Resolver maps a raw Authorization header value to a user identity
type Resolver struct {
	users UserSource
}

// NewResolver creates a new identity resolver
func NewResolver(users UserSource) *Resolver {
	return &Resolver{users: users}
}

// Resolve extracts a bearer token from the header value and looks up its
// owner. A missing or malformed header, or a token matching no user, yields
// (nil, nil). Only a storage failure produces an error.
func (r *Resolver) Resolve(ctx context.Context, authorizationHeader string) (*User, error) {
	match := bearerPattern.FindStringSubmatch(authorizationHeader)
	if match == nil {
		return nil, nil
	}

	user, err := r.users.GetUserByToken(ctx, match[1])
	if err != nil {
		return nil, err
	}
	return user, nil
}

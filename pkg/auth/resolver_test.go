package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserSource maps tokens to users and optionally fails
type fakeUserSource struct {
	users map[string]*User
	err   error
}

func (f *fakeUserSource) GetUserByToken(_ context.Context, token string) (*User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[token], nil
}

func TestResolve_KnownToken(t *testing.T) {
	alice := &User{ID: 1, Email: "alice@example.com", Name: "Alice", AuthToken: "tok123"}
	resolver := NewResolver(&fakeUserSource{users: map[string]*User{"tok123": alice}})

	user, err := resolver.Resolve(context.Background(), "Bearer tok123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
}

func TestResolve_AnonymousCases(t *testing.T) {
	resolver := NewResolver(&fakeUserSource{users: map[string]*User{
		"tok123": {ID: 1},
	}})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"missing token", "Bearer "},
		{"token with invalid chars", "Bearer abc-!@#"},
		{"unknown token", "Bearer nosuchtoken"},
		{"trailing content", "Bearer tok123 extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := resolver.Resolve(context.Background(), tt.header)
			require.NoError(t, err, "anonymous access is never an error")
			assert.Nil(t, user)
		})
	}
}

func TestResolve_StorageFailure(t *testing.T) {
	resolver := NewResolver(&fakeUserSource{err: errors.New("connection refused")})

	user, err := resolver.Resolve(context.Background(), "Bearer tok123")
	assert.Error(t, err)
	assert.Nil(t, user)
}

func TestIdentityContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := IdentityFromContext(ctx)
	assert.False(t, ok, "fresh context has no identity")

	alice := &User{ID: 7}
	ctx = WithIdentity(ctx, alice)

	got, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, alice, got)
}

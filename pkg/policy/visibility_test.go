package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platinummonkey/quill/pkg/auth"
)

type testResource struct {
	published bool
	ownerID   int64
}

func (r testResource) IsPublished() bool { return r.published }
func (r testResource) OwnerID() int64    { return r.ownerID }

func TestVisibility(t *testing.T) {
	owner := &auth.User{ID: 1}
	other := &auth.User{ID: 2}

	tests := []struct {
		name     string
		resource testResource
		identity *auth.User
		canRead  bool
		canWrite bool
	}{
		{"published, anonymous", testResource{true, 1}, nil, true, false},
		{"published, owner", testResource{true, 1}, owner, true, true},
		{"published, other user", testResource{true, 1}, other, true, false},
		{"draft, anonymous", testResource{false, 1}, nil, false, false},
		{"draft, owner", testResource{false, 1}, owner, true, true},
		{"draft, other user", testResource{false, 1}, other, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canRead, CanRead(tt.resource, tt.identity), "CanRead")
			assert.Equal(t, tt.canWrite, CanWrite(tt.resource, tt.identity), "CanWrite")
		})
	}
}

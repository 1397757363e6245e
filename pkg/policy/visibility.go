package policy

import "github.com/platinummonkey/quill/pkg/auth"

// Resource is anything governed by the visibility rules
type Resource interface {
	// IsPublished reports whether the resource is publicly visible
	IsPublished() bool
	// OwnerID is the id of the owning user
	OwnerID() int64
}

// CanRead reports whether identity may read the resource: published
// resources are readable by anyone, drafts only by their owner.
func CanRead(r Resource, identity *auth.User) bool {
	if r.IsPublished() {
		return true
	}
	return CanWrite(r, identity)
}

// CanWrite reports whether identity may mutate the resource. Anonymous
// callers can never write.
func CanWrite(r Resource, identity *auth.User) bool {
	return identity != nil && identity.ID == r.OwnerID()
}

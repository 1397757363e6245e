package posts

import (
	"context"

	"github.com/platinummonkey/quill/pkg/auth"
)

// Store is the relational storage contract the post service depends on.
// Implementations return storage.ErrNotFound for missing records and
// *storage.ValidationError for invalid writes.
type Store interface {
	// CreatePost persists a new post, filling ID and timestamps
	CreatePost(ctx context.Context, post *Post) error
	// GetPost fetches a post by id regardless of visibility
	GetPost(ctx context.Context, id int64) (*Post, error)
	// GetPostOwned fetches a post only when authorID owns it. A post owned
	// by someone else is storage.ErrNotFound, same as a missing one.
	GetPostOwned(ctx context.Context, id, authorID int64) (*Post, error)
	// UpdatePost persists title, content and published for an existing post
	UpdatePost(ctx context.Context, post *Post) error
	// ListPublished returns all published posts, newest first
	ListPublished(ctx context.Context) ([]*Post, error)
	// ListPublishedByIDs returns the published posts among ids, newest first
	ListPublishedByIDs(ctx context.Context, ids []int64) ([]*Post, error)
	// SearchPublishedIDs returns ids of published posts whose title contains
	// query as a case-sensitive substring
	SearchPublishedIDs(ctx context.Context, query string) ([]int64, error)

	// GetUser fetches a user by id
	GetUser(ctx context.Context, id int64) (*auth.User, error)
	// GetUsersByIDs batch-loads users, keyed by id. Missing ids are simply
	// absent from the map.
	GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*auth.User, error)
}

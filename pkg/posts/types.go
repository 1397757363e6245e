package posts

import (
	"time"
)

// Post is a user-owned article. AuthorID is immutable after creation and
// Published defaults to false (draft).
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPublished implements policy.Resource
func (p *Post) IsPublished() bool { return p.Published }

// OwnerID implements policy.Resource
func (p *Post) OwnerID() int64 { return p.AuthorID }

// Author is the owner summary embedded in API responses
type Author struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PostResponse is the wire representation of a post
type PostResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
	Author    Author `json:"author"`
}

// CreateRequest carries the writable fields for post creation
type CreateRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// UpdateRequest carries the writable fields for post updates. Nil fields are
// left untouched.
type UpdateRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

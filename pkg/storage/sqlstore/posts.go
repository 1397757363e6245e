package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/platinummonkey/quill/pkg/posts"
	"github.com/platinummonkey/quill/pkg/storage"
)

func validatePost(post *posts.Post) error {
	if post.Title == "" {
		return storage.NewValidationError("title", "Title can't be blank")
	}
	if post.Content == "" {
		return storage.NewValidationError("content", "Content can't be blank")
	}
	return nil
}

const postColumns = "id, title, content, published, author_id, created_at, updated_at"

func scanPost(row interface{ Scan(...interface{}) error }) (*posts.Post, error) {
	post := &posts.Post{}
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.Published,
		&post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost persists a new post, filling ID and timestamps
func (s *SQLStore) CreatePost(ctx context.Context, post *posts.Post) error {
	if err := validatePost(post); err != nil {
		return err
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO posts (title, content, published, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Published, post.AuthorID, now, now,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	post.CreatedAt = now
	post.UpdatedAt = now
	return nil
}

// GetPost fetches a post by id regardless of visibility
func (s *SQLStore) GetPost(ctx context.Context, id int64) (*posts.Post, error) {
	query := fmt.Sprintf("SELECT %s FROM posts WHERE id = $1", postColumns)
	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// GetPostOwned fetches a post only when authorID owns it. The ownership
// predicate is part of the query, so a foreign post is indistinguishable
// from a missing one.
func (s *SQLStore) GetPostOwned(ctx context.Context, id, authorID int64) (*posts.Post, error) {
	query := fmt.Sprintf("SELECT %s FROM posts WHERE id = $1 AND author_id = $2", postColumns)
	post, err := scanPost(s.db.QueryRowContext(ctx, query, id, authorID))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get owned post: %w", err)
	}
	return post, nil
}

// UpdatePost persists the writable fields of an existing post. Concurrent
// updates are last-write-wins.
func (s *SQLStore) UpdatePost(ctx context.Context, post *posts.Post) error {
	if err := validatePost(post); err != nil {
		return err
	}

	now := time.Now().UTC()
	query := `
		UPDATE posts SET title = $1, content = $2, published = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		post.Title, post.Content, post.Published, now, post.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	post.UpdatedAt = now
	return nil
}

// ListPublished returns all published posts, newest first
func (s *SQLStore) ListPublished(ctx context.Context) ([]*posts.Post, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM posts WHERE published = TRUE ORDER BY created_at DESC, id DESC",
		postColumns,
	)
	return s.queryPosts(ctx, query)
}

// ListPublishedByIDs returns the published posts among ids, newest first.
// Ids that are missing or unpublished by now simply drop out, which is how
// stale cached search results converge.
func (s *SQLStore) ListPublishedByIDs(ctx context.Context, ids []int64) ([]*posts.Post, error) {
	if len(ids) == 0 {
		return []*posts.Post{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(
		"SELECT %s FROM posts WHERE published = TRUE AND id IN (%s) ORDER BY created_at DESC, id DESC",
		postColumns, strings.Join(placeholders, ", "),
	)
	return s.queryPosts(ctx, query, args...)
}

// SearchPublishedIDs returns ids of published posts whose title contains
// query as a case-sensitive substring. LIKE metacharacters in the query are
// escaped so they match literally.
func (s *SQLStore) SearchPublishedIDs(ctx context.Context, query string) ([]int64, error) {
	pattern := "%" + escapeLike(query) + "%"
	stmt := `
		SELECT id FROM posts
		WHERE published = TRUE AND title LIKE $1 ESCAPE '\'
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, stmt, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan post id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate post ids: %w", err)
	}
	return ids, nil
}

func (s *SQLStore) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*posts.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	result := []*posts.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return result, nil
}

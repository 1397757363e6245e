package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/platinummonkey/quill/pkg/auth"
	"github.com/platinummonkey/quill/pkg/storage"
)

func validateUser(user *auth.User) error {
	if user.Email == "" {
		return storage.NewValidationError("email", "Email can't be blank")
	}
	if user.Name == "" {
		return storage.NewValidationError("name", "Name can't be blank")
	}
	if user.AuthToken == "" {
		return storage.NewValidationError("auth_token", "Auth token can't be blank")
	}
	return nil
}

// CreateUser persists a new user. The auth token must already be generated;
// a duplicate token surfaces as a validation error.
func (s *SQLStore) CreateUser(ctx context.Context, user *auth.User) error {
	if err := validateUser(user); err != nil {
		return err
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO users (email, name, auth_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		user.Email, user.Name, user.AuthToken, now, now,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.NewValidationError("auth_token", "Auth token has already been taken")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetUser fetches a user by id
func (s *SQLStore) GetUser(ctx context.Context, id int64) (*auth.User, error) {
	query := `
		SELECT id, email, name, auth_token, created_at, updated_at
		FROM users WHERE id = $1
	`
	user := &auth.User{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.AuthToken,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByToken fetches the user owning an auth token. Returns (nil, nil)
// when no user matches: an unknown token is an anonymous caller, not an
// error (auth.UserSource contract).
func (s *SQLStore) GetUserByToken(ctx context.Context, token string) (*auth.User, error) {
	query := `
		SELECT id, email, name, auth_token, created_at, updated_at
		FROM users WHERE auth_token = $1
	`
	user := &auth.User{}
	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&user.ID, &user.Email, &user.Name, &user.AuthToken,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}
	return user, nil
}

// GetUsersByIDs batch-loads users for author summaries. Ids with no user
// are absent from the returned map.
func (s *SQLStore) GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*auth.User, error) {
	users := make(map[int64]*auth.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, email, name, auth_token, created_at, updated_at
		FROM users WHERE id IN (%s)
	`, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to batch-load users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user := &auth.User{}
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Name, &user.AuthToken,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

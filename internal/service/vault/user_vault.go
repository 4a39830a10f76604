package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"culturevault/internal/models"
)

// Login resolves a username to a user record, creating one on first sight.
// The lookup is case-insensitive; the stored username keeps its original
// casing. A non-empty location overwrites the stored one (last write wins),
// an empty location leaves the stored value untouched.
func (s *Service) Login(ctx context.Context, username, location string) (*models.User, error) {
	username = strings.TrimSpace(username)
	location = strings.TrimSpace(location)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	var (
		user   models.User
		stored sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, location, created_at FROM users WHERE lower(username) = lower(?)`,
		username,
	).Scan(&user.ID, &user.Username, &stored, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		now := time.Now().UTC()
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO users (username, location, created_at) VALUES (?, ?, ?)`,
			username, location, now,
		)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("user id: %w", err)
		}
		return &models.User{ID: id, Username: username, Location: location, CreatedAt: now}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	user.Location = stored.String
	if location != "" && location != user.Location {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE users SET location = ? WHERE id = ?`,
			location, user.ID,
		); err != nil {
			return nil, fmt.Errorf("update location: %w", err)
		}
		user.Location = location
	}
	return &user, nil
}

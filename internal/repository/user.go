package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")

func (r *Repository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = $1", strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (email, password_hash, display_name, role, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.DisplayName,
		user.Role,
		user.ContactEmail,
		user.ContactPhone,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil && strings.Contains(err.Error(), "users_email_key") {
		return ErrEmailTaken
	}
	return err
}

func (r *Repository) UpdateUserProfile(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET
			display_name = $2,
			contact_email = $3,
			contact_phone = $4,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.DisplayName,
		user.ContactEmail,
		user.ContactPhone,
	)
	return err
}

func (r *Repository) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	var users []model.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT * FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	return users, err
}

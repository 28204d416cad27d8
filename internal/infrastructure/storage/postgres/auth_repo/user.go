// Package auth_repo provides PostgreSQL implementations for auth
// repositories.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/id"
	"dukapos/internal/domain/auth"
	"dukapos/internal/infrastructure/storage/postgres"
)

const userCols = `id, email, password_hash, full_name, role,
	is_active, last_login_at, failed_login_attempts, locked_until,
	created_at, updated_at, version`

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	txm *postgres.TxManager
}

var _ auth.UserRepository = (*UserRepo)(nil)

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, full_name, role,
			is_active, created_at, updated_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.txm.GetQuerier(ctx).Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Role,
		user.IsActive, user.CreatedAt, user.UpdatedAt, user.Version,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanUser(row pgx.Row) (*auth.User, error) {
	var user auth.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role,
		&user.IsActive, &user.LastLoginAt, &user.FailedLoginAttempts, &user.LockedUntil,
		&user.CreatedAt, &user.UpdatedAt, &user.Version,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	query := `SELECT ` + userCols + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.txm.GetQuerier(ctx).QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("user", userID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `SELECT ` + userCols + ` FROM users WHERE lower(email) = lower($1)`

	user, err := r.scanUser(r.txm.GetQuerier(ctx).QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("user", email)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

// Update updates user data with optimistic locking.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	query := `
		UPDATE users SET
			email = $2, password_hash = $3, full_name = $4, role = $5,
			is_active = $6, last_login_at = $7, failed_login_attempts = $8,
			locked_until = $9, updated_at = NOW(), version = version + 1
		WHERE id = $1 AND version = $10
	`

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Role,
		user.IsActive, user.LastLoginAt, user.FailedLoginAttempts,
		user.LockedUntil, user.Version,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("user", user.ID)
	}
	user.Version++
	return nil
}

// Exists checks if the email is already registered.
func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	query := `SELECT 1 FROM users WHERE lower(email) = lower($1) LIMIT 1`

	var exists int
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, query, email).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return true, nil
}

// Count returns the number of accounts, including inactive ones.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

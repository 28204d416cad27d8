package auth

import (
	"context"

	"dukapos/internal/core/id"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error

	// Exists checks if the email is already registered.
	Exists(ctx context.Context, email string) (bool, error)

	// Count returns the number of accounts, including inactive ones.
	Count(ctx context.Context) (int, error)
}

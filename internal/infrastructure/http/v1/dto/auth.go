package dto

import (
	"time"

	"dukapos/internal/domain/auth"
)

// RegisterRequest is the request body for registering a user.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the response body for a user.
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"fullName,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// FromUser creates a response DTO from a domain entity.
func FromUser(u *auth.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLoginAt,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse carries the issued token and the user.
type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	User        *UserResponse `json:"user"`
}

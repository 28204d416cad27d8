// Package appctx carries request-scoped identity and trace data.
package appctx

import (
	"context"
)

// Role names known to the platform.
const (
	RoleAdmin     = "admin"
	RoleInventory = "inventory"
	RoleSales     = "sales"
)

// UserContext holds the authenticated user's identity for the request.
type UserContext struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the user carries the admin role.
func (u *UserContext) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageStock reports whether the user may restock products.
// Mirrors the admin-or-inventory gate on stock endpoints.
func (u *UserContext) CanManageStock() bool {
	return u.Role == RoleAdmin || u.Role == RoleInventory
}

type userKey struct{}

// WithUser returns a context carrying the user identity.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns the user identity from context, or nil.
func GetUser(ctx context.Context) *UserContext {
	if u, ok := ctx.Value(userKey{}).(*UserContext); ok {
		return u
	}
	return nil
}

// UserID returns the authenticated user's id, or "" when anonymous.
func UserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

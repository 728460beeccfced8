// Package auth carries the caller identity asserted by the external identity
// provider. The core never reads ambient request state: handlers resolve the
// identity once and pass it to services as an explicit parameter.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Role is the access role asserted by the identity provider.
type Role string

// Known roles.
const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Identity is an authenticated caller.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsCustomer reports whether the caller holds the customer role.
func (i Identity) IsCustomer() bool {
	return i.Role == RoleCustomer
}

type contextKey struct{}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, ident)
}

// FromContext extracts the caller identity set by the auth middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(contextKey{}).(Identity)
	return ident, ok
}

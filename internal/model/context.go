package model

import "context"

// Identity is the caller decoded from a bearer token.
type Identity struct {
	ID    string
	Email string
	Role  Role
}

// ContextManager stores and retrieves the caller identity on a request context.
type ContextManager interface {
	SetIdentityToContext(ctx context.Context, identity Identity) context.Context
	GetIdentityFromContext(ctx context.Context) (Identity, bool)
}

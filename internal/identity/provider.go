// Package identity defines the identity-provider contract the auth module
// delegates credential handling to, together with a database-backed
// implementation.
package identity

import (
	"context"
	"errors"
)

// Provider errors. Callers must not forward more detail than these carry.
var (
	// ErrBadCredentials covers every sign-in rejection, whatever the cause.
	ErrBadCredentials = errors.New("identity: invalid credentials")
	// ErrUserExists indicates the email is already registered.
	ErrUserExists = errors.New("identity: user already exists")
	// ErrUserNotFound indicates no identity matches the given id.
	ErrUserNotFound = errors.New("identity: user not found")
)

// User is the provider's view of an identity.
type User struct {
	ID    string // Provider user id.
	Email string // Login address.
}

// SignInResult carries the outcome of a successful sign-in.
type SignInResult struct {
	User  User   // The authenticated identity.
	Token string // Opaque provider-session token for later provider calls.
}

// Provider verifies credentials and manages identities. Administrative
// capability is decided elsewhere; the provider only answers "who is this".
type Provider interface {
	// SignInWithPassword verifies email/password and opens a provider session.
	// Any rejection is reported as ErrBadCredentials.
	SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error)
	// SignOut invalidates the provider session identified by token.
	SignOut(ctx context.Context, token string) error
	// CreateUser provisions a new identity.
	CreateUser(ctx context.Context, email, password string, emailConfirm bool) (*User, error)
	// DeleteUser removes an identity, used to compensate failed provisioning.
	DeleteUser(ctx context.Context, userID string) error
}

// Package usecase authenticates API callers against the configured token hashes.
package usecase

import (
	"context"

	authDomain "github.com/allisson/chatcrypt/internal/auth/domain"
)

// TokenUseCase issues and verifies bearer tokens.
type TokenUseCase interface {
	// Enabled reports whether any token hash is configured. When it is false
	// every request is allowed.
	Enabled() bool

	// Authenticate verifies plainToken and returns the caller.
	Authenticate(ctx context.Context, plainToken string) (*authDomain.Principal, error)

	// IssueToken generates a token and the hash to add to AUTH_TOKEN_HASHES.
	IssueToken(ctx context.Context) (*authDomain.IssuedToken, error)
}

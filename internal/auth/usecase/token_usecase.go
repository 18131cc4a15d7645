package usecase

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	authDomain "github.com/allisson/chatcrypt/internal/auth/domain"
	authService "github.com/allisson/chatcrypt/internal/auth/service"
	"github.com/allisson/chatcrypt/internal/errors"
)

// verifiedCacheSize bounds the number of distinct tokens remembered as valid.
const verifiedCacheSize = 1024

type tokenUseCase struct {
	hashes        []string
	secretService authService.SecretService
	tokenService  authService.TokenService
	// verified maps the SHA-256 of a token that passed Argon2id verification
	// to its principal, so the slow hash runs once per token.
	verified *lru.Cache[string, *authDomain.Principal]
}

// NewTokenUseCase creates a TokenUseCase accepting tokens whose Argon2id hash
// is listed in hashes.
func NewTokenUseCase(
	hashes []string,
	secretService authService.SecretService,
	tokenService authService.TokenService,
) (TokenUseCase, error) {
	verified, err := lru.New[string, *authDomain.Principal](verifiedCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create verified token cache")
	}
	return &tokenUseCase{
		hashes:        hashes,
		secretService: secretService,
		tokenService:  tokenService,
		verified:      verified,
	}, nil
}

func (t *tokenUseCase) Enabled() bool {
	return len(t.hashes) > 0
}

func (t *tokenUseCase) Authenticate(ctx context.Context, plainToken string) (*authDomain.Principal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if plainToken == "" {
		return nil, authDomain.ErrInvalidToken
	}

	tokenHash := t.tokenService.HashToken(plainToken)
	if principal, ok := t.verified.Get(tokenHash); ok {
		return principal, nil
	}

	for _, hash := range t.hashes {
		if t.secretService.CompareSecret(plainToken, hash) {
			principal := authDomain.NewPrincipal(tokenHash)
			t.verified.Add(tokenHash, principal)
			return principal, nil
		}
	}
	return nil, authDomain.ErrInvalidToken
}

func (t *tokenUseCase) IssueToken(ctx context.Context) (*authDomain.IssuedToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	token, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}
	hash, err := t.secretService.HashSecret(token)
	if err != nil {
		return nil, err
	}
	return &authDomain.IssuedToken{Token: token, Hash: hash}, nil
}

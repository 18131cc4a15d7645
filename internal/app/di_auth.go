package app

import (
	"fmt"
	"sync"

	authService "github.com/allisson/chatcrypt/internal/auth/service"
	authUseCase "github.com/allisson/chatcrypt/internal/auth/usecase"
)

type authComponents struct {
	secretService authService.SecretService
	tokenService  authService.TokenService
	tokenUseCase  authUseCase.TokenUseCase

	secretServiceInit sync.Once
	tokenServiceInit  sync.Once
	tokenUseCaseInit  sync.Once
}

// SecretService returns the Argon2id hashing service.
func (c *Container) SecretService() authService.SecretService {
	c.auth.secretServiceInit.Do(func() {
		c.auth.secretService = authService.NewSecretService()
	})
	return c.auth.secretService
}

// TokenService returns the bearer token generator.
func (c *Container) TokenService() authService.TokenService {
	c.auth.tokenServiceInit.Do(func() {
		c.auth.tokenService = authService.NewTokenService()
	})
	return c.auth.tokenService
}

// TokenUseCase returns the bearer token use case configured with AUTH_TOKEN_HASHES.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	return resolve(c, &c.auth.tokenUseCaseInit, "tokenUseCase", &c.auth.tokenUseCase,
		func() (authUseCase.TokenUseCase, error) {
			useCase, err := authUseCase.NewTokenUseCase(
				c.config.AuthTokenHashes, c.SecretService(), c.TokenService(),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create token use case: %w", err)
			}
			if !useCase.Enabled() {
				c.Logger().Warn("no AUTH_TOKEN_HASHES configured, api authentication disabled")
			}
			return withMetrics(c, useCase, authUseCase.NewTokenUseCaseWithMetrics)
		})
}

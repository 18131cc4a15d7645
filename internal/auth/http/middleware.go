package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/chatcrypt/internal/auth/usecase"
	apperrors "github.com/allisson/chatcrypt/internal/errors"
	"github.com/allisson/chatcrypt/internal/httputil"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware validates the "Authorization: Bearer <token>" header
// and stores the resulting principal in the request context.
//
// When no token hashes are configured the middleware is a passthrough.
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Token matching no configured hash → 401 Unauthorized
//   - Other errors → 500 Internal Server Error
func AuthenticationMiddleware(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !tokenUseCase.Enabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		principal, err := tokenUseCase.Authenticate(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		logger.Debug("authentication successful", slog.String("principal", principal.Fingerprint))

		c.Next()
	}
}

package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/chatcrypt/internal/auth/domain"
	"github.com/allisson/chatcrypt/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{next: useCase, metrics: m}
}

func (t *tokenUseCaseWithMetrics) Enabled() bool {
	return t.next.Enabled()
}

func (t *tokenUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	plainToken string,
) (*authDomain.Principal, error) {
	start := time.Now()
	principal, err := t.next.Authenticate(ctx, plainToken)
	t.record(ctx, "token_authenticate", start, err)
	return principal, err
}

func (t *tokenUseCaseWithMetrics) IssueToken(ctx context.Context) (*authDomain.IssuedToken, error) {
	start := time.Now()
	issued, err := t.next.IssueToken(ctx)
	t.record(ctx, "token_issue", start, err)
	return issued, err
}

func (t *tokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, t.metrics, "auth", operation, start, err)
}

// Package retry retries temporary failures with exponential backoff.
// Whether a failure is temporary is decided by the client's error
// taxonomy: transport failures, timeouts and 5xx APIErrors retry, a 4xx
// APIError is permanent since resubmitting the same input cannot
// succeed. The middleware is opt-in: no default client chain includes
// it, so the default failure behavior stays "propagate the error to the
// caller".
package retry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	clientErrors "github.com/clubhub/clubhub-go/pkg/client/errors"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/client/middleware"
)

// RetryMiddleware retries HTTP requests with exponential backoff.
type RetryMiddleware struct {
	maxAttempts     uint64
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          logger.Logger
}

// New creates a new RetryMiddleware instance.
func New(maxAttempts uint64, initialInterval, maxInterval time.Duration) *RetryMiddleware {
	return &RetryMiddleware{
		maxAttempts:     maxAttempts,
		initialInterval: initialInterval,
		maxInterval:     maxInterval,
		logger:          &logger.NoOpLogger{},
	}
}

// Process applies retry logic before passing the request to the next middleware.
func (m *RetryMiddleware) Process(ctx context.Context, httpClient *http.Client, req *http.Request, next middleware.NextFunc) (*http.Response, error) {
	m.logger.Debug("Processing request with retry middleware")

	var resp *http.Response
	var attempt int

	retryErr := backoff.RetryNotify(
		func() error {
			attempt++
			var err error
			resp, err = next(ctx, httpClient, req)
			return m.classify(err)
		},
		m.newStrategy(ctx),
		func(err error, wait time.Duration) {
			m.logger.WithFields(
				logger.Int("attempt", attempt),
				logger.String("error", err.Error()),
				logger.Duration("retry_in", wait),
			).Warn("Retrying request")
		},
	)
	if retryErr != nil {
		return nil, fmt.Errorf("%w: %w", clientErrors.ErrRetryFailed, retryErr)
	}

	return resp, nil
}

// newStrategy builds a fresh context-aware backoff for one request.
// Strategies are stateful, so they cannot be shared across requests.
func (m *RetryMiddleware) newStrategy(ctx context.Context) backoff.BackOffContext {
	return backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(m.initialInterval),
		backoff.WithMaxInterval(m.maxInterval),
	), m.maxAttempts), ctx)
}

// classify marks permanent failures so backoff stops immediately and
// leaves temporary ones retryable.
func (m *RetryMiddleware) classify(err error) error {
	switch {
	case err == nil:
		return nil
	case clientErrors.IsTemporary(err):
		return err
	default:
		return backoff.Permanent(err)
	}
}

// SetLogger sets the logger for the middleware.
func (m *RetryMiddleware) SetLogger(l logger.Logger) {
	m.logger = l
}

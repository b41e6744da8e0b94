// Package ratelimit throttles outgoing requests with a token bucket.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"

	clientErrors "github.com/clubhub/clubhub-go/pkg/client/errors"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/client/middleware"
	"golang.org/x/time/rate"
)

// RateLimiterMiddleware implements a rate limiting middleware for HTTP requests.
type RateLimiterMiddleware struct {
	limiter *rate.Limiter
	logger  logger.Logger
}

// New creates a new RateLimiterMiddleware instance.
func New(requestsPerSecond float64, burst int) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		logger:  &logger.NoOpLogger{},
	}
}

// Process applies rate limiting before passing the request to the next middleware.
func (m *RateLimiterMiddleware) Process(ctx context.Context, httpClient *http.Client, req *http.Request, next middleware.NextFunc) (*http.Response, error) {
	m.logger.Debug("Processing request with rate limiter middleware")

	// Wait for rate limiter permission
	if err := m.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", clientErrors.ErrTimeout, ctx.Err())
		}
		// Wait refuses up front when the required delay cannot fit
		// within the context deadline.
		return nil, fmt.Errorf("%w: %w", clientErrors.ErrRateLimitExceeded, err)
	}

	// Execute the next middleware in the chain
	return next(ctx, httpClient, req)
}

// SetLogger sets the logger for the middleware.
func (m *RateLimiterMiddleware) SetLogger(l logger.Logger) {
	m.logger = l
}

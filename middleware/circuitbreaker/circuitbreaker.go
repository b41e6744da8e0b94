// Package circuitbreaker stops hammering a failing backend by tripping
// open after a run of failures.
package circuitbreaker

import (
	"context"
	"fmt"
	"net/http"
	"time"

	clientErrors "github.com/clubhub/clubhub-go/pkg/client/errors"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/client/middleware"
	"github.com/sony/gobreaker"
)

// CircuitBreakerMiddleware implements the circuit breaker pattern to prevent cascading failures.
type CircuitBreakerMiddleware struct {
	breaker *gobreaker.CircuitBreaker
	logger  logger.Logger
}

// New creates a new CircuitBreakerMiddleware instance.
func New(maxRequests uint32, interval, timeout time.Duration) *CircuitBreakerMiddleware {
	m := &CircuitBreakerMiddleware{
		breaker: nil,
		logger:  &logger.NoOpLogger{},
	}

	m.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "HTTPCircuitBreaker",
		MaxRequests: maxRequests,
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			m.logger.WithFields(
				logger.String("name", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			).Warn("Circuit breaker state changed")
		},
		IsSuccessful: func(err error) bool {
			// A 4xx response is a healthy backend saying no; only
			// temporary failures count against the circuit.
			return err == nil || !clientErrors.IsTemporary(err)
		},
	})

	return m
}

// Process applies the circuit breaker before passing the request to the next middleware.
func (m *CircuitBreakerMiddleware) Process(ctx context.Context, httpClient *http.Client, req *http.Request, next middleware.NextFunc) (*http.Response, error) {
	m.logger.Debug("Processing request with circuit breaker middleware")

	// Execute the request with the circuit breaker
	result, err := m.breaker.Execute(func() (interface{}, error) {
		return next(ctx, httpClient, req)
	})
	if err != nil {
		switch err {
		case gobreaker.ErrOpenState:
			return nil, fmt.Errorf("%w: %w", clientErrors.ErrCircuitOpen, err)
		case gobreaker.ErrTooManyRequests:
			return nil, fmt.Errorf("%w: %w", clientErrors.ErrCircuitExhausted, err)
		default:
			return nil, err
		}
	}

	// Type assertion to get the response
	resp, ok := result.(*http.Response)
	if !ok {
		return nil, clientErrors.ErrUnreachable
	}

	return resp, nil
}

// SetLogger sets the logger for the middleware.
func (m *CircuitBreakerMiddleware) SetLogger(l logger.Logger) {
	m.logger = l
}

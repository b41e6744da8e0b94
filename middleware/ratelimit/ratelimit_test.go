package ratelimit_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/clubhub/clubhub-go/middleware/ratelimit"
	clientErrors "github.com/clubhub/clubhub-go/pkg/client/errors"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterMiddleware(t *testing.T) {
	next := func(_ context.Context, _ *http.Client, _ *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK}, nil
	}

	t.Run("Requests within limit pass immediately", func(t *testing.T) {
		middleware := ratelimit.New(100, 2)
		middleware.SetLogger(logger.NewBasicLogger())

		req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
		resp, err := middleware.Process(context.Background(), &http.Client{}, req, next)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Requests beyond burst are delayed", func(t *testing.T) {
		middleware := ratelimit.New(10, 1)

		req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)

		start := time.Now()
		for i := 0; i < 3; i++ {
			_, err := middleware.Process(context.Background(), &http.Client{}, req, next)
			require.NoError(t, err)
		}

		// Two waits of ~100ms each after the initial burst token
		assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
	})

	t.Run("Deadline shorter than wait fails", func(t *testing.T) {
		middleware := ratelimit.New(0.1, 1)

		req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)

		// Consume the burst token
		_, err := middleware.Process(context.Background(), &http.Client{}, req, next)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err = middleware.Process(ctx, &http.Client{}, req, next)
		require.Error(t, err)
		assert.ErrorIs(t, err, clientErrors.ErrRateLimitExceeded)
	})
}

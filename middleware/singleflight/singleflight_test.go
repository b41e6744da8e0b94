package singleflight_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clubhub/clubhub-go/middleware/singleflight"
	"github.com/clubhub/clubhub-go/pkg/client"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/clubs"
	"github.com/clubhub/clubhub-go/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleFlightMiddleware(t *testing.T) {
	t.Run("Concurrent identical GETs share one round trip", func(t *testing.T) {
		middleware := singleflight.New()
		middleware.SetLogger(logger.NewBasicLogger())

		var calls int32
		next := func(_ context.Context, _ *http.Client, _ *http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(50 * time.Millisecond)
			return &http.Response{StatusCode: http.StatusOK}, nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				req, _ := http.NewRequest(http.MethodGet, "http://example.com/api/clubs", nil)
				resp, err := middleware.Process(context.Background(), &http.Client{}, req, next)
				assert.NoError(t, err)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Merged callers each get an independent body", func(t *testing.T) {
		middleware := singleflight.New()

		const payload = `{"content":[{"id":1,"name":"Chess Club"}]}`

		var calls int32
		release := make(chan struct{})
		next := func(_ context.Context, _ *http.Client, _ *http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(payload)),
			}, nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				req, _ := http.NewRequest(http.MethodGet, "http://example.com/api/clubs", nil)
				resp, err := middleware.Process(context.Background(), &http.Client{}, req, next)
				require.NoError(t, err)

				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, payload, string(body))
				assert.NoError(t, resp.Body.Close())
			}()
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Different URLs do not share", func(t *testing.T) {
		middleware := singleflight.New()

		var calls int32
		next := func(_ context.Context, _ *http.Client, _ *http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			return &http.Response{StatusCode: http.StatusOK}, nil
		}

		for _, url := range []string{"http://example.com/a", "http://example.com/b"} {
			req, _ := http.NewRequest(http.MethodGet, url, nil)
			_, err := middleware.Process(context.Background(), &http.Client{}, req, next)
			require.NoError(t, err)
		}

		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("Authorization header does not split the flight key", func(t *testing.T) {
		middleware := singleflight.New()

		var calls int32
		release := make(chan struct{})
		next := func(_ context.Context, _ *http.Client, _ *http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return &http.Response{StatusCode: http.StatusOK}, nil
		}

		var wg sync.WaitGroup
		for _, token := range []string{"Bearer a", "Bearer b"} {
			wg.Add(1)
			go func(token string) {
				defer wg.Done()
				req, _ := http.NewRequest(http.MethodGet, "http://example.com/api/clubs", nil)
				req.Header.Set("Authorization", token)
				_, err := middleware.Process(context.Background(), &http.Client{}, req, next)
				assert.NoError(t, err)
			}(token)
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Concurrent list calls through a client all decode", func(t *testing.T) {
		var hits int32
		arrived := make(chan struct{})
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&hits, 1) == 1 {
				close(arrived)
			}
			<-release
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"content":[{"id":1,"name":"Chess Club"}],"number":0,"totalPages":1,"totalElements":1}`))
		}))
		defer server.Close()

		c := client.NewClient(
			client.WithBaseURL(server.URL),
			client.WithMiddleware(singleflight.New()),
		)
		svc := clubs.NewService(c, nil)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				list, _, err := svc.List(context.Background(), pagination.Request{})
				require.NoError(t, err)
				require.Len(t, list, 1)
				assert.Equal(t, "Chess Club", list[0].Name)
			}()
		}

		<-arrived
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()
	})

	t.Run("Non-GET requests are never de-duplicated", func(t *testing.T) {
		middleware := singleflight.New()

		var calls int32
		next := func(_ context.Context, _ *http.Client, _ *http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			return &http.Response{StatusCode: http.StatusOK}, nil
		}

		for i := 0; i < 2; i++ {
			req, _ := http.NewRequest(http.MethodPost, "http://example.com/api/orders", nil)
			_, err := middleware.Process(context.Background(), &http.Client{}, req, next)
			require.NoError(t, err)
		}

		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}

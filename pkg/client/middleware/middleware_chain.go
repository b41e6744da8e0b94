package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/clubhub/clubhub-go/pkg/client/errors"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
)

// maxErrorBody caps how much of a failed response body is read while
// looking for a backend error message.
const maxErrorBody = 64 << 10

// Chain represents a chain of middleware.
type Chain struct {
	middlewares []Middleware
	logger      logger.Logger
}

// NewChain creates a new middleware chain.
func NewChain(logger logger.Logger, middlewares ...Middleware) *Chain {
	return &Chain{
		middlewares: middlewares,
		logger:      logger,
	}
}

// Len returns the number of middlewares in the chain.
func (c *Chain) Len() int {
	return len(c.middlewares)
}

// Middlewares returns the slice of middlewares.
func (c *Chain) Middlewares() []Middleware {
	return c.middlewares
}

// Then adds middleware to the chain, replacing any existing middleware
// of the same type in place. Registration order determines execution
// order and stays stable across replacements.
func (c *Chain) Then(middlewares ...Middleware) {
	for _, m := range middlewares {
		m.SetLogger(c.logger)

		replaced := false
		for i, existing := range c.middlewares {
			if reflect.TypeOf(existing) == reflect.TypeOf(m) {
				c.middlewares[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			c.middlewares = append(c.middlewares, m)
		}
	}
}

// Process runs the request through all middleware in the chain.
func (c *Chain) Process(ctx context.Context, httpClient *http.Client, req *http.Request) (*http.Response, error) {
	// If no middlewares are defined, perform the request immediately
	if len(c.middlewares) == 0 {
		return c.performRequest(ctx, httpClient, req)
	}

	c.logMiddlewareChain()
	return c.processMiddleware(ctx, httpClient, req, 0)
}

// logMiddlewareChain logs the available middleware in the chain.
func (c *Chain) logMiddlewareChain() {
	for i, m := range c.middlewares {
		c.logger.WithFields(
			logger.Int("index", i),
			logger.String("type", reflect.TypeOf(m).String()),
		).Debug("Middleware in chain")
	}
}

// processMiddleware recursively applies each middleware in the chain.
func (c *Chain) processMiddleware(ctx context.Context, httpClient *http.Client, req *http.Request, index int) (*http.Response, error) {
	// If we've reached the end of the middleware chain, perform the request
	if index == len(c.middlewares) {
		return c.performRequest(ctx, httpClient, req)
	}

	// Otherwise, apply the middleware and continue
	return c.middlewares[index].Process(ctx, httpClient, req, func(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
		return c.processMiddleware(ctx, client, req, index+1)
	})
}

// performRequest executes the actual HTTP request.
func (c *Chain) performRequest(ctx context.Context, httpClient *http.Client, req *http.Request) (*http.Response, error) {
	// Log the request details
	c.logger.WithFields(
		logger.String("method", req.Method),
		logger.String("url", req.URL.String()),
		logger.Int("len_headers", len(req.Header)),
	).Debug("Request")

	// Send the request
	resp, err := httpClient.Do(req.WithContext(ctx))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", errors.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", errors.ErrNetwork, err)
	}

	// Normalize non-2xx responses into an APIError carrying the status
	// code and the backend's error message when one was sent
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, c.normalizeError(resp)
	}

	// Log the response details
	c.logger.WithFields(
		logger.Int("status", resp.StatusCode),
		logger.Int("len_headers", len(resp.Header)),
	).Debug("Response")

	return resp, nil
}

// normalizeError builds an APIError from a failed response, parsing a
// JSON {"message": ...} error body when present. The body is restored
// so callers can still inspect it.
func (c *Chain) normalizeError(resp *http.Response) error {
	apiErr := errors.NewAPIError(resp.StatusCode, "")

	if resp.Body != nil {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err == nil {
			resp.Body.Close()
			resp.Body = io.NopCloser(bytes.NewReader(body))

			var payload struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(body, &payload) == nil {
				apiErr.Message = payload.Message
			}
		}
	}

	c.logger.WithFields(
		logger.Int("status", apiErr.StatusCode),
		logger.String("message", apiErr.Message),
	).Debug("Backend returned an error response")

	return apiErr
}

// SetLogger updates the logger for all middleware in the chain.
func (c *Chain) SetLogger(l logger.Logger) {
	for _, m := range c.middlewares {
		m.SetLogger(l)
	}
	c.logger = l
}

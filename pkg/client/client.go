// package client provides HTTP request handling functionality with various middleware options.
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/client/middleware"
)

// Client manages HTTP requests with various middleware options.
type Client struct {
	middlewareChain *middleware.Chain
	httpClient      *http.Client
	baseURL         string
	marshalFunc     MarshalFunc
	unmarshalFunc   UnmarshalFunc
}

// NewClient creates a new Client instance with default settings.
func NewClient(opts ...Option) *Client {
	client := &Client{
		middlewareChain: middleware.NewChain(&logger.NoOpLogger{}),
		httpClient: &http.Client{
			Transport:     http.DefaultTransport,
			CheckRedirect: nil,
			Jar:           nil,
			Timeout:       0,
		},
		baseURL:       "",
		marshalFunc:   json.Marshal,
		unmarshalFunc: json.Unmarshal,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do performs an HTTP request with the specified options.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.middlewareChain.Process(ctx, c.httpClient, req)
}

// resolveURL joins a relative path with the client's base URL.
// Absolute URLs pass through unchanged.
func (c *Client) resolveURL(u string) string {
	if c.baseURL == "" || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return strings.TrimSuffix(c.baseURL, "/") + "/" + strings.TrimPrefix(u, "/")
}

// Package auth injects bearer tokens into outgoing requests from an
// explicitly injected credential provider. There is no ambient global
// token: the provider is passed in when the client is constructed.
package auth

import (
	"context"
	"net/http"
	"sync"

	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/client/middleware"
)

// TokenProvider supplies the current credential. An empty string means
// no credential is available and the request goes out unauthenticated.
type TokenProvider interface {
	Token() string
}

// AuthMiddleware adds an Authorization header to HTTP requests.
type AuthMiddleware struct {
	provider TokenProvider
	logger   logger.Logger
}

// New creates a new AuthMiddleware instance.
func New(provider TokenProvider) *AuthMiddleware {
	return &AuthMiddleware{
		provider: provider,
		logger:   &logger.NoOpLogger{},
	}
}

// Process sets the bearer token before passing the request to the next middleware.
func (m *AuthMiddleware) Process(ctx context.Context, httpClient *http.Client, req *http.Request, next middleware.NextFunc) (*http.Response, error) {
	token := m.provider.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		m.logger.Debug("No credential available, sending request unauthenticated")
	}
	return next(ctx, httpClient, req)
}

// SetLogger sets the logger for the middleware.
func (m *AuthMiddleware) SetLogger(l logger.Logger) {
	m.logger = l
}

// TokenStore is an in-memory TokenProvider safe for concurrent use.
// The auth service writes it on login and clears it on logout.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewTokenStore creates an empty TokenStore.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Token returns the stored credential, or "" when none is set.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set replaces the stored credential.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear removes the stored credential.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// StaticToken is a TokenProvider for a fixed credential, useful for
// service accounts and tests.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

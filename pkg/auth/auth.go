// Package auth wraps the authentication endpoints and manages the
// credential store the authenticated client reads from.
package auth

import (
	"context"
	"net/http"

	authmw "github.com/clubhub/clubhub-go/middleware/auth"
	"github.com/clubhub/clubhub-go/pkg/client"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/envelope"
)

// Profile is the stable internal shape of a user record.
type Profile struct {
	ID    int64
	Name  string
	Email string
	Major string
	Role  string
}

// Session is the result of a successful login.
type Session struct {
	Token string
	User  Profile
}

// ProfileFromRaw maps one backend record to a Profile.
func ProfileFromRaw(r envelope.RawRecord) Profile {
	return Profile{
		ID:    r.Int64("id"),
		Name:  r.String("name"),
		Email: r.String("email"),
		Major: r.StringOr("majorName", "-"),
		Role:  r.StringOr("role", "Member"),
	}
}

// Service exposes the authentication operations of the backend.
// Login and Signup go out on the public client; Logout and Me require
// the authenticated one.
type Service struct {
	public  *client.Client
	private *client.Client
	tokens  *authmw.TokenStore
	logger  logger.Logger
}

// NewService creates an auth service over both clients and the shared
// token store.
func NewService(public, private *client.Client, tokens *authmw.TokenStore, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Service{
		public:  public,
		private: private,
		tokens:  tokens,
		logger:  log,
	}
}

// LoginParams are the credentials for Login.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupParams are the fields accepted when registering an account.
type SignupParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	MajorID  int64  `json:"majorId,omitempty"`
}

// Login authenticates and stores the issued token so subsequent
// authenticated calls carry it.
func (s *Service) Login(ctx context.Context, params LoginParams) (Session, error) {
	var body any
	_, err := s.public.NewRequest().
		Method(http.MethodPost).
		URL("/auth/login").
		MarshalBody(params).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Session{}, err
	}

	item, fallback := envelope.Single(body)
	if fallback {
		s.logger.Warn("Unrecognized login response envelope")
	}

	session := Session{
		Token: item.String("token"),
		User:  ProfileFromRaw(item.Record("user")),
	}
	if session.Token != "" {
		s.tokens.Set(session.Token)
	}
	return session, nil
}

// Signup registers a new account. The caller still needs to Login.
func (s *Service) Signup(ctx context.Context, params SignupParams) (Profile, error) {
	var body any
	_, err := s.public.NewRequest().
		Method(http.MethodPost).
		URL("/auth/signup").
		MarshalBody(params).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Profile{}, err
	}

	item, _ := envelope.Single(body)
	return ProfileFromRaw(item), nil
}

// Me fetches the calling member's profile.
func (s *Service) Me(ctx context.Context) (Profile, error) {
	var body any
	_, err := s.private.NewRequest().
		Method(http.MethodGet).
		URL("/auth/me").
		Result(&body).
		Do(ctx)
	if err != nil {
		return Profile{}, err
	}

	item, _ := envelope.Single(body)
	return ProfileFromRaw(item), nil
}

// Logout tells the backend to invalidate the session and clears the
// locally stored credential. The local credential is cleared even when
// the backend call fails: the caller is logged out either way.
func (s *Service) Logout(ctx context.Context) error {
	_, err := s.private.NewRequest().
		Method(http.MethodPost).
		URL("/auth/logout").
		Do(ctx)

	s.tokens.Clear()
	return err
}

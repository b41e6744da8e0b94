// Package clubhub is the entry point of the SDK: it assembles the
// public and authenticated HTTP clients and one service per backend
// resource group.
package clubhub

import (
	"time"

	"github.com/bytedance/sonic"
	authmw "github.com/clubhub/clubhub-go/middleware/auth"
	"github.com/clubhub/clubhub-go/pkg/auth"
	"github.com/clubhub/clubhub-go/pkg/client"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/clubs"
	"github.com/clubhub/clubhub-go/pkg/events"
	"github.com/clubhub/clubhub-go/pkg/feedback"
	"github.com/clubhub/clubhub-go/pkg/memberships"
	"github.com/clubhub/clubhub-go/pkg/orders"
	"github.com/clubhub/clubhub-go/pkg/points"
	"github.com/clubhub/clubhub-go/pkg/tags"
)

// Config holds the settings for building a Client.
type Config struct {
	// BaseURL is the root of the backend, e.g. "https://api.campus.edu".
	BaseURL string

	// Logger receives client and service diagnostics. Defaults to no-op.
	Logger logger.Logger

	// Timeout bounds each request round trip. Zero means no timeout.
	Timeout time.Duration
}

// Client bundles one service per backend resource group. Services on
// Private carry the member's token; Auth spans both clients.
type Client struct {
	Public  *client.Client
	Private *client.Client
	Tokens  *authmw.TokenStore

	Auth        *auth.Service
	Clubs       *clubs.Service
	Events      *events.Service
	Feedback    *feedback.Service
	Memberships *memberships.Service
	Orders      *orders.Service
	Points      *points.Service
	Tags        *tags.Service
}

// New builds a Client. Extra options apply to both underlying HTTP
// clients, after the defaults.
func New(cfg Config, opts ...client.Option) *Client {
	log := cfg.Logger
	if log == nil {
		log = &logger.NoOpLogger{}
	}

	tokens := authmw.NewTokenStore()

	base := []client.Option{
		client.WithBaseURL(cfg.BaseURL),
		client.WithLogger(log),
		client.WithMarshalFunc(sonic.Marshal),
		client.WithUnmarshalFunc(sonic.Unmarshal),
	}
	if cfg.Timeout > 0 {
		base = append(base, client.WithTimeout(cfg.Timeout))
	}

	publicOpts := append([]client.Option{}, base...)
	publicOpts = append(publicOpts, opts...)
	public := client.NewClient(publicOpts...)

	// The authenticated client carries only the token middleware by
	// default. Concurrency behaviors such as de-duplication or retry
	// stay opt-in through the extra options.
	privateOpts := append([]client.Option{}, base...)
	privateOpts = append(privateOpts,
		client.WithMiddleware(authmw.New(tokens)),
	)
	privateOpts = append(privateOpts, opts...)
	private := client.NewClient(privateOpts...)

	return &Client{
		Public:  public,
		Private: private,
		Tokens:  tokens,

		Auth:        auth.NewService(public, private, tokens, log),
		Clubs:       clubs.NewService(private, log),
		Events:      events.NewService(private, log),
		Feedback:    feedback.NewService(private, log),
		Memberships: memberships.NewService(private, log),
		Orders:      orders.NewService(private, log),
		Points:      points.NewService(private, log),
		Tags:        tags.NewService(private, log),
	}
}

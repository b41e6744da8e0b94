package events

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clubhub/clubhub-go/pkg/client"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/envelope"
	"github.com/clubhub/clubhub-go/pkg/pagination"
)

const basePath = "/api/events"

// Service exposes the event operations of the backend.
type Service struct {
	client *client.Client
	logger logger.Logger
}

// NewService creates an event service on the given client.
func NewService(c *client.Client, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Service{client: c, logger: log}
}

// CreateParams are the fields accepted when creating an event.
type CreateParams struct {
	Title       string `json:"title"`
	ClubID      int64  `json:"clubId"`
	Location    string `json:"location,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
	Points      int    `json:"point,omitempty"`
	StartsAt    string `json:"startAt,omitempty"`
	EndsAt      string `json:"endAt,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateParams are the fields accepted when updating an event.
type UpdateParams struct {
	Title       string `json:"title,omitempty"`
	Location    string `json:"location,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
	Points      int    `json:"point,omitempty"`
	StartsAt    string `json:"startAt,omitempty"`
	EndsAt      string `json:"endAt,omitempty"`
	Description string `json:"description,omitempty"`
}

// List fetches a page of events across all clubs.
func (s *Service) List(ctx context.Context, page pagination.Request) ([]Event, envelope.PageMeta, error) {
	return s.list(ctx, basePath, page)
}

// ListByClub fetches a page of one club's events.
func (s *Service) ListByClub(ctx context.Context, clubID int64, page pagination.Request) ([]Event, envelope.PageMeta, error) {
	return s.list(ctx, fmt.Sprintf("/api/clubs/%d/events", clubID), page)
}

func (s *Service) list(ctx context.Context, path string, page pagination.Request) ([]Event, envelope.PageMeta, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodGet).
		URL(path).
		Queries(pagination.Query(page)).
		Result(&body).
		Do(ctx)
	if err != nil {
		return nil, envelope.PageMeta{}, err
	}

	items, meta, fallback := envelope.List(body)
	if fallback {
		s.warnFallback(path)
	}
	return FromRawList(items), meta, nil
}

// Get fetches a single event by id.
func (s *Service) Get(ctx context.Context, id int64) (Event, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodGet).
		URL(fmt.Sprintf("%s/%d", basePath, id)).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Event{}, err
	}

	item, fallback := envelope.Single(body)
	if fallback {
		s.warnFallback(basePath)
	}
	return FromRaw(item), nil
}

// Create registers a new event.
func (s *Service) Create(ctx context.Context, params CreateParams) (Event, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodPost).
		URL(basePath).
		MarshalBody(params).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Event{}, err
	}

	item, fallback := envelope.Single(body)
	if fallback {
		s.warnFallback(basePath)
	}
	return FromRaw(item), nil
}

// Update modifies an existing event.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (Event, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodPut).
		URL(fmt.Sprintf("%s/%d", basePath, id)).
		MarshalBody(params).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Event{}, err
	}

	item, fallback := envelope.Single(body)
	if fallback {
		s.warnFallback(basePath)
	}
	return FromRaw(item), nil
}

// Delete removes an event.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := s.client.NewRequest().
		Method(http.MethodDelete).
		URL(fmt.Sprintf("%s/%d", basePath, id)).
		Do(ctx)
	return err
}

// Attend checks the calling member in to an event.
func (s *Service) Attend(ctx context.Context, id int64) error {
	_, err := s.client.NewRequest().
		Method(http.MethodPost).
		URL(fmt.Sprintf("%s/%d/attend", basePath, id)).
		Do(ctx)
	return err
}

func (s *Service) warnFallback(path string) {
	s.logger.WithFields(
		logger.String("path", path),
	).Warn("Unrecognized response envelope, using empty fallback")
}

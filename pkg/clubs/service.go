package clubs

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clubhub/clubhub-go/pkg/client"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/envelope"
	"github.com/clubhub/clubhub-go/pkg/pagination"
)

const basePath = "/api/clubs"

// Service exposes the club operations of the backend.
type Service struct {
	client *client.Client
	logger logger.Logger
}

// NewService creates a club service on the given client.
func NewService(c *client.Client, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Service{client: c, logger: log}
}

// CreateParams are the fields accepted when creating a club.
type CreateParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MajorID     int64  `json:"majorId,omitempty"`
}

// UpdateParams are the fields accepted when updating a club.
type UpdateParams struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	MajorID     int64  `json:"majorId,omitempty"`
}

// List fetches a page of clubs. Pagination metadata is returned
// alongside; most callers only need the slice.
func (s *Service) List(ctx context.Context, page pagination.Request) ([]Club, envelope.PageMeta, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodGet).
		URL(basePath).
		Queries(pagination.Query(page)).
		Result(&body).
		Do(ctx)
	if err != nil {
		return nil, envelope.PageMeta{}, err
	}

	items, meta, fallback := envelope.List(body)
	if fallback {
		s.warnFallback(basePath)
	}
	return FromRawList(items), meta, nil
}

// Get fetches a single club by id.
func (s *Service) Get(ctx context.Context, id int64) (Club, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodGet).
		URL(fmt.Sprintf("%s/%d", basePath, id)).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Club{}, err
	}

	item, fallback := envelope.Single(body)
	if fallback {
		s.warnFallback(basePath)
	}
	return FromRaw(item), nil
}

// Create registers a new club and returns it as the backend stored it.
func (s *Service) Create(ctx context.Context, params CreateParams) (Club, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodPost).
		URL(basePath).
		MarshalBody(params).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Club{}, err
	}

	item, fallback := envelope.Single(body)
	if fallback {
		s.warnFallback(basePath)
	}
	return FromRaw(item), nil
}

// Update modifies an existing club.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (Club, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodPut).
		URL(fmt.Sprintf("%s/%d", basePath, id)).
		MarshalBody(params).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Club{}, err
	}

	item, fallback := envelope.Single(body)
	if fallback {
		s.warnFallback(basePath)
	}
	return FromRaw(item), nil
}

// Delete removes a club.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := s.client.NewRequest().
		Method(http.MethodDelete).
		URL(fmt.Sprintf("%s/%d", basePath, id)).
		Do(ctx)
	return err
}

func (s *Service) warnFallback(path string) {
	s.logger.WithFields(
		logger.String("path", path),
	).Warn("Unrecognized response envelope, using empty fallback")
}

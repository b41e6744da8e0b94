// Package tags wraps the event tag resource group of the backend.
package tags

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clubhub/clubhub-go/pkg/client"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/envelope"
)

const basePath = "/api/tags"

// Tag is the stable internal shape of a tag record.
type Tag struct {
	ID    int64
	Name  string
	Color string
	Uses  int
}

// FromRaw maps one backend record to a Tag.
func FromRaw(r envelope.RawRecord) Tag {
	return Tag{
		ID:    r.Int64("id"),
		Name:  r.String("name"),
		Color: r.StringOr("color", "-"),
		Uses:  r.Count("usageCount"),
	}
}

// FromRawList maps a list of records.
func FromRawList(records []envelope.RawRecord) []Tag {
	out := make([]Tag, 0, len(records))
	for _, r := range records {
		out = append(out, FromRaw(r))
	}
	return out
}

// Service exposes the tag operations of the backend.
type Service struct {
	client *client.Client
	logger logger.Logger
}

// NewService creates a tag service on the given client.
func NewService(c *client.Client, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Service{client: c, logger: log}
}

// CreateParams are the fields accepted when creating a tag.
type CreateParams struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// List fetches all tags. The tag set is small; the backend does not
// page this endpoint.
func (s *Service) List(ctx context.Context) ([]Tag, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodGet).
		URL(basePath).
		Result(&body).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	items, _, fallback := envelope.List(body)
	if fallback {
		s.logger.WithFields(
			logger.String("path", basePath),
		).Warn("Unrecognized response envelope, using empty fallback")
	}
	return FromRawList(items), nil
}

// Create registers a new tag.
func (s *Service) Create(ctx context.Context, params CreateParams) (Tag, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodPost).
		URL(basePath).
		MarshalBody(params).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Tag{}, err
	}

	item, _ := envelope.Single(body)
	return FromRaw(item), nil
}

// Delete removes a tag.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := s.client.NewRequest().
		Method(http.MethodDelete).
		URL(fmt.Sprintf("%s/%d", basePath, id)).
		Do(ctx)
	return err
}

// AttachToEvent labels an event with a tag.
func (s *Service) AttachToEvent(ctx context.Context, eventID, tagID int64) error {
	_, err := s.client.NewRequest().
		Method(http.MethodPost).
		URL(fmt.Sprintf("/api/events/%d/tags/%d", eventID, tagID)).
		Do(ctx)
	return err
}

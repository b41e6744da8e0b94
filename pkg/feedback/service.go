package feedback

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clubhub/clubhub-go/pkg/client"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/envelope"
	"github.com/clubhub/clubhub-go/pkg/pagination"
)

// Service exposes the feedback operations of the backend.
type Service struct {
	client *client.Client
	logger logger.Logger
}

// NewService creates a feedback service on the given client.
func NewService(c *client.Client, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Service{client: c, logger: log}
}

// SubmitParams are the fields accepted when submitting feedback.
type SubmitParams struct {
	EventID int64  `json:"eventId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// ListByEvent fetches a page of one event's feedback.
func (s *Service) ListByEvent(ctx context.Context, eventID int64, page pagination.Request) ([]Feedback, envelope.PageMeta, error) {
	path := fmt.Sprintf("/api/events/%d/feedbacks", eventID)

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
		s.logger.WithFields(
			logger.String("path", path),
		).Warn("Unrecognized response envelope, using empty fallback")
	}
	return FromRawList(items), meta, nil
}

// Submit posts feedback for an event.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (Feedback, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodPost).
		URL(fmt.Sprintf("/api/events/%d/feedbacks", params.EventID)).
		MarshalBody(params).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Feedback{}, err
	}

	item, _ := envelope.Single(body)
	return FromRaw(item), nil
}

// Delete removes a feedback entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := s.client.NewRequest().
		Method(http.MethodDelete).
		URL(fmt.Sprintf("/api/feedbacks/%d", id)).
		Do(ctx)
	return err
}

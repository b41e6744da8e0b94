package points

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clubhub/clubhub-go/pkg/client"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/envelope"
	"github.com/clubhub/clubhub-go/pkg/pagination"
)

const basePath = "/api/point-requests"

// Service exposes the point request operations of the backend.
type Service struct {
	client *client.Client
	logger logger.Logger
}

// NewService creates a point request service on the given client.
func NewService(c *client.Client, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Service{client: c, logger: log}
}

// RequestParams are the fields accepted when requesting points.
type RequestParams struct {
	Points int    `json:"point"`
	Reason string `json:"reason"`
}

// List fetches a page of point requests.
func (s *Service) List(ctx context.Context, page pagination.Request) ([]PointRequest, envelope.PageMeta, error) {
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
		s.logger.WithFields(
			logger.String("path", basePath),
		).Warn("Unrecognized response envelope, using empty fallback")
	}
	return FromRawList(items), meta, nil
}

// Request submits a point request for the calling member.
func (s *Service) Request(ctx context.Context, params RequestParams) (PointRequest, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodPost).
		URL(basePath).
		MarshalBody(params).
		Result(&body).
		Do(ctx)
	if err != nil {
		return PointRequest{}, err
	}

	item, _ := envelope.Single(body)
	return FromRaw(item), nil
}

// Approve grants a pending point request. Staff only.
func (s *Service) Approve(ctx context.Context, id int64) error {
	return s.transition(ctx, id, "approve")
}

// Reject declines a pending point request. Staff only.
func (s *Service) Reject(ctx context.Context, id int64) error {
	return s.transition(ctx, id, "reject")
}

func (s *Service) transition(ctx context.Context, id int64, action string) error {
	_, err := s.client.NewRequest().
		Method(http.MethodPut).
		URL(fmt.Sprintf("%s/%d/%s", basePath, id, action)).
		Do(ctx)
	return err
}

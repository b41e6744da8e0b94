package orders

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clubhub/clubhub-go/pkg/client"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/envelope"
	"github.com/clubhub/clubhub-go/pkg/pagination"
)

const basePath = "/api/orders"

// Service exposes the redemption order operations of the backend.
type Service struct {
	client *client.Client
	logger logger.Logger
}

// NewService creates an order service on the given client.
func NewService(c *client.Client, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Service{client: c, logger: log}
}

// PlaceParams are the fields accepted when placing an order.
type PlaceParams struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

// List fetches a page of the calling member's orders.
func (s *Service) List(ctx context.Context, page pagination.Request) ([]Order, envelope.PageMeta, error) {
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

// Place redeems points for an item.
func (s *Service) Place(ctx context.Context, params PlaceParams) (Order, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodPost).
		URL(basePath).
		MarshalBody(params).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Order{}, err
	}

	item, _ := envelope.Single(body)
	return FromRaw(item), nil
}

// Approve marks an order as fulfilled. Staff only.
func (s *Service) Approve(ctx context.Context, id int64) error {
	_, err := s.client.NewRequest().
		Method(http.MethodPut).
		URL(fmt.Sprintf("%s/%d/approve", basePath, id)).
		Do(ctx)
	return err
}

// Cancel withdraws a pending order and refunds the points.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	_, err := s.client.NewRequest().
		Method(http.MethodDelete).
		URL(fmt.Sprintf("%s/%d", basePath, id)).
		Do(ctx)
	return err
}

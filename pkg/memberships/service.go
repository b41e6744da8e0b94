package memberships

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clubhub/clubhub-go/pkg/client"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/envelope"
	"github.com/clubhub/clubhub-go/pkg/pagination"
)

// Service exposes the membership operations of the backend.
type Service struct {
	client *client.Client
	logger logger.Logger
}

// NewService creates a membership service on the given client.
func NewService(c *client.Client, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Service{client: c, logger: log}
}

// ListByClub fetches a page of one club's member roster.
func (s *Service) ListByClub(ctx context.Context, clubID int64, page pagination.Request) ([]Membership, envelope.PageMeta, error) {
	path := fmt.Sprintf("/api/clubs/%d/members", clubID)

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

// Apply submits a membership application to a club for the calling member.
func (s *Service) Apply(ctx context.Context, clubID int64) (Membership, error) {
	var body any
	_, err := s.client.NewRequest().
		Method(http.MethodPost).
		URL(fmt.Sprintf("/api/clubs/%d/members", clubID)).
		Result(&body).
		Do(ctx)
	if err != nil {
		return Membership{}, err
	}

	item, _ := envelope.Single(body)
	return FromRaw(item), nil
}

// Approve accepts a pending membership application. Staff only.
func (s *Service) Approve(ctx context.Context, id int64) error {
	return s.transition(ctx, id, "approve")
}

// Reject declines a pending membership application. Staff only.
func (s *Service) Reject(ctx context.Context, id int64) error {
	return s.transition(ctx, id, "reject")
}

func (s *Service) transition(ctx context.Context, id int64, action string) error {
	_, err := s.client.NewRequest().
		Method(http.MethodPut).
		URL(fmt.Sprintf("/api/members/%d/%s", id, action)).
		Do(ctx)
	return err
}

// Leave withdraws the calling member from a club.
func (s *Service) Leave(ctx context.Context, clubID int64) error {
	_, err := s.client.NewRequest().
		Method(http.MethodDelete).
		URL(fmt.Sprintf("/api/clubs/%d/members/me", clubID)).
		Do(ctx)
	return err
}

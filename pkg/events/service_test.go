package events_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubhub/clubhub-go/pkg/client"
	clientErrors "github.com/clubhub/clubhub-go/pkg/client/errors"
	"github.com/clubhub/clubhub-go/pkg/envelope"
	"github.com/clubhub/clubhub-go/pkg/events"
	"github.com/clubhub/clubhub-go/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, handler http.HandlerFunc) *events.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return events.NewService(client.NewClient(client.WithBaseURL(server.URL)), nil)
}

func TestFromRaw(t *testing.T) {
	t.Parallel()

	event := events.FromRaw(envelope.RawRecord{
		"id":            float64(4),
		"title":         "Hack Night",
		"clubName":      nil,
		"capacity":      float64(0),
		"attendeeCount": float64(12),
		"startAt":       "2026-03-01T18:00:00Z",
	})

	assert.Equal(t, int64(4), event.ID)
	assert.Equal(t, "Hack Night", event.Title)
	assert.Equal(t, "-", event.ClubName)
	assert.Equal(t, "-", event.Location)
	assert.Equal(t, 0, event.Capacity)
	assert.Equal(t, 12, event.Attendees)
	require.NotNil(t, event.StartsAt)
	assert.Equal(t, "2026-03-01T18:00:00Z", *event.StartsAt)
	assert.Nil(t, event.EndsAt)
	assert.Nil(t, event.Status)
}

func TestListByClub(t *testing.T) {
	t.Parallel()

	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clubs/5/events", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("page"))

		_, err := w.Write([]byte(`{"content":[{"id":1,"title":"Hack Night"}],"totalElements":1}`))
		assert.NoError(t, err)
	})

	out, meta, err := service.ListByClub(context.Background(), 5, pagination.Request{})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Hack Night", out[0].Title)
	assert.Equal(t, int64(1), meta.TotalElements)
}

func TestAttend(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		service := newService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/events/9/attend", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})

		require.NoError(t, service.Attend(context.Background(), 9))
	})

	t.Run("Full event rejects with message", func(t *testing.T) {
		t.Parallel()

		service := newService(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, err := w.Write([]byte(`{"message":"Event is full"}`))
			assert.NoError(t, err)
		})

		err := service.Attend(context.Background(), 9)

		require.Error(t, err)
		status, ok := clientErrors.StatusCode(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Event is full", clientErrors.ErrorMessage(err))
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/4", r.URL.Path)
		_, err := w.Write([]byte(`{"success":true,"message":"ok","data":{"id":4,"title":"Hack Night","status":"OPEN"}}`))
		assert.NoError(t, err)
	})

	event, err := service.Get(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, "Hack Night", event.Title)
	require.NotNil(t, event.Status)
	assert.Equal(t, "OPEN", *event.Status)
}

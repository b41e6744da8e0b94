package clubs_test

import (
	"testing"

	"github.com/clubhub/clubhub-go/pkg/clubs"
	"github.com/clubhub/clubhub-go/pkg/envelope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRaw(t *testing.T) {
	t.Parallel()

	t.Run("Defaulting rules hold exactly", func(t *testing.T) {
		t.Parallel()

		club := clubs.FromRaw(envelope.RawRecord{
			"id":              float64(1),
			"name":            "New Club",
			"majorName":       nil,
			"leaderName":      nil,
			"description":     nil,
			"majorPolicyName": nil,
			"memberCount":     float64(0),
			"eventCount":      float64(0),
		})

		assert.Equal(t, clubs.Club{
			ID:          1,
			Name:        "New Club",
			Category:    "-",
			LeaderName:  "No Leader",
			Members:     0,
			Policy:      "-",
			Events:      0,
			Description: nil,
			Status:      nil,
		}, club)
	})

	t.Run("Populated record passes through", func(t *testing.T) {
		t.Parallel()

		club := clubs.FromRaw(envelope.RawRecord{
			"id":              float64(7),
			"name":            "Chess Club",
			"majorName":       "Engineering",
			"leaderName":      "Dana",
			"memberCount":     float64(34),
			"majorPolicyName": "Open",
			"eventCount":      float64(5),
			"description":     "Weekly matches",
			"status":          "ACTIVE",
		})

		assert.Equal(t, int64(7), club.ID)
		assert.Equal(t, "Chess Club", club.Name)
		assert.Equal(t, "Engineering", club.Category)
		assert.Equal(t, "Dana", club.LeaderName)
		assert.Equal(t, 34, club.Members)
		assert.Equal(t, "Open", club.Policy)
		assert.Equal(t, 5, club.Events)
		require.NotNil(t, club.Description)
		assert.Equal(t, "Weekly matches", *club.Description)
		require.NotNil(t, club.Status)
		assert.Equal(t, "ACTIVE", *club.Status)
	})

	t.Run("A legitimate zero count stays zero, missing counts default", func(t *testing.T) {
		t.Parallel()

		club := clubs.FromRaw(envelope.RawRecord{
			"id":          float64(2),
			"name":        "Quiet Club",
			"memberCount": float64(0),
		})

		assert.Equal(t, 0, club.Members)
		assert.Equal(t, 0, club.Events)
	})

	t.Run("Null description stays null, empty description stays empty", func(t *testing.T) {
		t.Parallel()

		withNull := clubs.FromRaw(envelope.RawRecord{"id": float64(1), "name": "A", "description": nil})
		assert.Nil(t, withNull.Description)

		withEmpty := clubs.FromRaw(envelope.RawRecord{"id": float64(1), "name": "A", "description": ""})
		require.NotNil(t, withEmpty.Description)
		assert.Equal(t, "", *withEmpty.Description)
	})

	t.Run("Normalization is idempotent", func(t *testing.T) {
		t.Parallel()

		// Feed an already-normalized club back through the mapper:
		// defaulted values must not default further.
		first := clubs.FromRaw(envelope.RawRecord{
			"id":   float64(1),
			"name": "New Club",
		})

		second := clubs.FromRaw(envelope.RawRecord{
			"id":              float64(first.ID),
			"name":            first.Name,
			"majorName":       first.Category,
			"leaderName":      first.LeaderName,
			"memberCount":     float64(first.Members),
			"majorPolicyName": first.Policy,
			"eventCount":      float64(first.Events),
		})

		assert.Equal(t, first, second)
		assert.Equal(t, "-", second.Category)
		assert.Equal(t, "No Leader", second.LeaderName)
	})

	t.Run("Nil record maps to the zero club", func(t *testing.T) {
		t.Parallel()

		club := clubs.FromRaw(nil)

		assert.Equal(t, "-", club.Category)
		assert.Equal(t, "No Leader", club.LeaderName)
		assert.Zero(t, club.ID)
	})
}

func TestFromRawList(t *testing.T) {
	t.Parallel()

	out := clubs.FromRawList(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

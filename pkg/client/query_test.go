package client_test

import (
	"testing"

	"github.com/clubhub/clubhub-go/pkg/client"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("Get returns the first value", func(t *testing.T) {
		t.Parallel()

		q := client.Query{
			"category": []string{"Academic"},
			"sort":     []string{"name,asc", "id,desc"},
		}

		assert.Equal(t, "Academic", q.Get("category"))
		assert.Equal(t, "name,asc", q.Get("sort"))
		assert.Equal(t, "", q.Get("status"))
	})

	t.Run("Set replaces and drops empty values", func(t *testing.T) {
		t.Parallel()

		q := client.Query{}

		q.Set("sort", "name,asc")
		assert.Equal(t, []string{"name,asc"}, q["sort"])

		q.Set("sort", "memberCount,desc")
		assert.Equal(t, []string{"memberCount,desc"}, q["sort"])

		q.Set("status", "")
		_, exists := q["status"]
		assert.False(t, exists)
	})

	t.Run("SetInt keeps zero values", func(t *testing.T) {
		t.Parallel()

		q := client.Query{}

		q.SetInt("page", 0)
		assert.Equal(t, []string{"0"}, q["page"])

		q.SetInt("page", 2)
		assert.Equal(t, []string{"2"}, q["page"])
	})

	t.Run("Add appends and drops empty values", func(t *testing.T) {
		t.Parallel()

		q := client.Query{}

		q.Add("tag", "board-games")
		assert.Equal(t, []string{"board-games"}, q["tag"])

		q.Add("tag", "outdoors")
		assert.Equal(t, []string{"board-games", "outdoors"}, q["tag"])

		q.Add("status", "")
		_, exists := q["status"]
		assert.False(t, exists)
	})

	t.Run("Encode sorts keys and escapes values", func(t *testing.T) {
		t.Parallel()

		q := client.Query{
			"tag":      []string{"board-games", "outdoors"},
			"sort":     []string{"name,asc"},
			"q":        []string{"chess club"},
			"category": []string{"Arts & Culture"},
			"empty":    []string{},
		}

		encoded := q.Encode()
		assert.Equal(t,
			"category=Arts+%26+Culture&q=chess+club&sort=name%2Casc&tag=board-games&tag=outdoors",
			encoded)
	})

	t.Run("Encode empty query", func(t *testing.T) {
		t.Parallel()

		q := client.Query{}
		assert.Equal(t, "", q.Encode())
	})
}

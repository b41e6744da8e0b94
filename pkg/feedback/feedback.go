// Package feedback wraps event feedback: ratings and comments members
// leave after attending.
package feedback

import (
	"github.com/clubhub/clubhub-go/pkg/envelope"
)

// Feedback is the stable internal shape of a feedback record.
type Feedback struct {
	ID         int64
	EventID    int64
	AuthorName string
	Rating     int
	Comment    *string
	CreatedAt  *string
}

// FromRaw maps one backend record to a Feedback.
func FromRaw(r envelope.RawRecord) Feedback {
	return Feedback{
		ID:         r.Int64("id"),
		EventID:    r.Int64("eventId"),
		AuthorName: r.StringOr("authorName", "Anonymous"),
		Rating:     r.Count("rating"),
		Comment:    r.StringPtr("comment"),
		CreatedAt:  r.StringPtr("createdAt"),
	}
}

// FromRawList maps a list of records.
func FromRawList(records []envelope.RawRecord) []Feedback {
	out := make([]Feedback, 0, len(records))
	for _, r := range records {
		out = append(out, FromRaw(r))
	}
	return out
}

// AverageRating computes the mean rating of a feedback list, 0 for an
// empty list.
func AverageRating(items []Feedback) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0
	for _, f := range items {
		sum += f.Rating
	}
	return float64(sum) / float64(len(items))
}

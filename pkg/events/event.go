// Package events wraps the event resource group of the backend.
package events

import (
	"github.com/clubhub/clubhub-go/pkg/envelope"
)

// Event is the stable internal shape of an event record.
type Event struct {
	ID          int64
	Title       string
	ClubName    string
	Location    string
	Capacity    int
	Attendees   int
	Points      int
	StartsAt    *string
	EndsAt      *string
	Description *string
	Status      *string
}

// FromRaw maps one backend record to an Event.
func FromRaw(r envelope.RawRecord) Event {
	return Event{
		ID:          r.Int64("id"),
		Title:       r.String("title"),
		ClubName:    r.StringOr("clubName", "-"),
		Location:    r.StringOr("location", "-"),
		Capacity:    r.Count("capacity"),
		Attendees:   r.Count("attendeeCount"),
		Points:      r.Count("point"),
		StartsAt:    r.StringPtr("startAt"),
		EndsAt:      r.StringPtr("endAt"),
		Description: r.StringPtr("description"),
		Status:      r.StringPtr("status"),
	}
}

// FromRawList maps a list of records.
func FromRawList(records []envelope.RawRecord) []Event {
	out := make([]Event, 0, len(records))
	for _, r := range records {
		out = append(out, FromRaw(r))
	}
	return out
}

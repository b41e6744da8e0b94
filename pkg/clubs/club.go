// Package clubs wraps the club resource group of the backend.
package clubs

import (
	"github.com/clubhub/clubhub-go/pkg/envelope"
)

// Club is the stable internal shape of a club record. Label fields
// carry deterministic defaults; Description and Status stay verbatim,
// so a null description is distinguishable from a missing one.
type Club struct {
	ID          int64
	Name        string
	Category    string
	LeaderName  string
	Members     int
	Policy      string
	Events      int
	Description *string
	Status      *string
}

// FromRaw maps one backend record to a Club. Pure and total: every
// record maps to a Club no matter which optional fields are missing.
func FromRaw(r envelope.RawRecord) Club {
	return Club{
		ID:          r.Int64("id"),
		Name:        r.String("name"),
		Category:    r.StringOr("majorName", "-"),
		LeaderName:  r.StringOr("leaderName", "No Leader"),
		Members:     r.Count("memberCount"),
		Policy:      r.StringOr("majorPolicyName", "-"),
		Events:      r.Count("eventCount"),
		Description: r.StringPtr("description"),
		Status:      r.StringPtr("status"),
	}
}

// FromRawList maps a list of records, yielding an empty slice for an
// empty input rather than nil.
func FromRawList(records []envelope.RawRecord) []Club {
	out := make([]Club, 0, len(records))
	for _, r := range records {
		out = append(out, FromRaw(r))
	}
	return out
}

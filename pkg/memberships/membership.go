// Package memberships wraps club membership: applications, approvals
// and the member roster.
package memberships

import (
	"github.com/clubhub/clubhub-go/pkg/envelope"
)

// Membership is the stable internal shape of a membership record.
type Membership struct {
	ID         int64
	ClubID     int64
	MemberName string
	Major      string
	Role       string
	Points     int
	Status     *string
	JoinedAt   *string
}

// FromRaw maps one backend record to a Membership.
func FromRaw(r envelope.RawRecord) Membership {
	return Membership{
		ID:         r.Int64("id"),
		ClubID:     r.Int64("clubId"),
		MemberName: r.String("memberName"),
		Major:      r.StringOr("majorName", "-"),
		Role:       r.StringOr("role", "Member"),
		Points:     r.Count("point"),
		Status:     r.StringPtr("status"),
		JoinedAt:   r.StringPtr("joinedAt"),
	}
}

// FromRawList maps a list of records.
func FromRawList(records []envelope.RawRecord) []Membership {
	out := make([]Membership, 0, len(records))
	for _, r := range records {
		out = append(out, FromRaw(r))
	}
	return out
}

// GroupByMajor buckets a roster by major. Order within a bucket
// follows the input order.
func GroupByMajor(items []Membership) map[string][]Membership {
	out := make(map[string][]Membership)
	for _, m := range items {
		out[m.Major] = append(out[m.Major], m)
	}
	return out
}

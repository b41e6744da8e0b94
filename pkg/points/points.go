// Package points wraps point requests: members ask for activity points
// and staff approve or reject them.
package points

import (
	"github.com/clubhub/clubhub-go/pkg/envelope"
)

// PointRequest is the stable internal shape of a point request record.
type PointRequest struct {
	ID         int64
	MemberName string
	Points     int
	Reason     *string
	Status     *string
	CreatedAt  *string
}

// FromRaw maps one backend record to a PointRequest.
func FromRaw(r envelope.RawRecord) PointRequest {
	return PointRequest{
		ID:         r.Int64("id"),
		MemberName: r.StringOr("memberName", "-"),
		Points:     r.Count("point"),
		Reason:     r.StringPtr("reason"),
		Status:     r.StringPtr("status"),
		CreatedAt:  r.StringPtr("createdAt"),
	}
}

// FromRawList maps a list of records.
func FromRawList(records []envelope.RawRecord) []PointRequest {
	out := make([]PointRequest, 0, len(records))
	for _, r := range records {
		out = append(out, FromRaw(r))
	}
	return out
}

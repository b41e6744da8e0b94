// Package orders wraps reward redemption: members spend earned points
// on items from the club store.
package orders

import (
	"github.com/clubhub/clubhub-go/pkg/envelope"
)

// Order is the stable internal shape of a redemption order record.
type Order struct {
	ID         int64
	ItemName   string
	MemberName string
	Cost       int
	Quantity   int
	Status     *string
	CreatedAt  *string
}

// FromRaw maps one backend record to an Order.
func FromRaw(r envelope.RawRecord) Order {
	return Order{
		ID:         r.Int64("id"),
		ItemName:   r.String("itemName"),
		MemberName: r.StringOr("memberName", "-"),
		Cost:       r.Count("cost"),
		Quantity:   r.Count("quantity"),
		Status:     r.StringPtr("status"),
		CreatedAt:  r.StringPtr("createdAt"),
	}
}

// FromRawList maps a list of records.
func FromRawList(records []envelope.RawRecord) []Order {
	out := make([]Order, 0, len(records))
	for _, r := range records {
		out = append(out, FromRaw(r))
	}
	return out
}

// Package pagination translates a caller's pagination intent into the
// query-parameter shape the backend expects.
package pagination

import (
	"strings"

	"github.com/clubhub/clubhub-go/pkg/client"
)

const (
	DefaultPage = 0
	DefaultSize = 20
)

// DefaultSort is the sort applied when the caller specifies none.
var DefaultSort = []string{"name"}

// Request is the caller's pagination intent. The zero value asks for
// the first page with default size and sort.
type Request struct {
	Page int
	Size int
	Sort []string
}

// Params is the wire shape of the pagination parameters. The sort
// list is serialized as a single comma-joined string, e.g.
// ["name","asc"] becomes "name,asc".
type Params struct {
	Page int
	Size int
	Sort string
}

// Build applies defaults and serializes the sort list. No range
// validation is performed; out-of-range values pass through to the
// backend, which is the authority on bounds. A zero size means unset
// and takes the default.
func Build(req Request) Params {
	size := req.Size
	if size == 0 {
		size = DefaultSize
	}

	sort := req.Sort
	if len(sort) == 0 {
		sort = DefaultSort
	}

	return Params{
		Page: req.Page,
		Size: size,
		Sort: strings.Join(sort, ","),
	}
}

// Apply writes the parameters into a query map.
func (p Params) Apply(q client.Query) {
	q.SetInt("page", p.Page)
	q.SetInt("size", p.Size)
	q.Set("sort", p.Sort)
}

// Query builds a ready-to-use query map for the request.
func Query(req Request) client.Query {
	q := make(client.Query)
	Build(req).Apply(q)
	return q
}

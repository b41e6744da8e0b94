// Package singleflight de-duplicates concurrent identical requests so
// that several screens fetching the same resource share one round trip.
package singleflight

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash"
	clientErrors "github.com/clubhub/clubhub-go/pkg/client/errors"
	"github.com/clubhub/clubhub-go/pkg/client/logger"
	"github.com/clubhub/clubhub-go/pkg/client/middleware"
	"golang.org/x/sync/singleflight"
)

// SingleFlightMiddleware implements the singleflight pattern to deduplicate concurrent identical requests.
type SingleFlightMiddleware struct {
	sfGroup *singleflight.Group
	logger  logger.Logger
}

// New creates a new SingleFlightMiddleware instance.
func New() *SingleFlightMiddleware {
	return &SingleFlightMiddleware{
		sfGroup: &singleflight.Group{},
		logger:  &logger.NoOpLogger{},
	}
}

// flightResult is what one round trip leaves behind for every merged
// caller: the response metadata and its fully read body.
type flightResult struct {
	resp *http.Response
	body []byte
}

// Process applies the singleflight pattern before passing the request to the next middleware.
// Requests with a body are never de-duplicated: two identical POSTs are
// two intended writes.
func (m *SingleFlightMiddleware) Process(ctx context.Context, httpClient *http.Client, req *http.Request, next middleware.NextFunc) (*http.Response, error) {
	m.logger.Debug("Processing request with singleflight middleware")

	if req.Body != nil || req.Method != http.MethodGet {
		return next(ctx, httpClient, req)
	}

	// Generate a unique key for the request
	key := m.generateRequestKey(req)

	// The body is read once inside the flight: handing the raw response
	// to every merged caller would have them racing on one shared body.
	result, err, shared := m.sfGroup.Do(key, func() (interface{}, error) {
		resp, err := next(ctx, httpClient, req)
		if err != nil {
			return nil, err
		}

		var body []byte
		if resp.Body != nil {
			body, err = io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, err
			}
		}
		return &flightResult{resp: resp, body: body}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", clientErrors.ErrSingleFlight, err)
	}

	if shared {
		m.logger.WithFields(logger.String("key", key)).Debug("Request shared with concurrent caller")
	}

	fr, ok := result.(*flightResult)
	if !ok {
		return nil, clientErrors.ErrUnreachable
	}

	// Each caller gets its own copy so closing or reading one body
	// cannot affect another merged caller.
	resp := new(http.Response)
	*resp = *fr.resp
	resp.Body = io.NopCloser(bytes.NewReader(fr.body))
	return resp, nil
}

// generateRequestKey hashes the method, URL and headers into a request
// identity. The Authorization header is excluded so token rotation
// between identical in-flight reads does not split the flight.
func (m *SingleFlightMiddleware) generateRequestKey(req *http.Request) string {
	h := xxhash.New()

	_, _ = io.WriteString(h, req.Method+req.URL.String())

	for key, values := range req.Header {
		if key != "Authorization" {
			_, _ = io.WriteString(h, key+fmt.Sprint(values))
		}
	}

	return strconv.FormatUint(h.Sum64(), 16)
}

// SetLogger sets the logger for the middleware.
func (m *SingleFlightMiddleware) SetLogger(l logger.Logger) {
	m.logger = l
}

package source

import (
	"context"
	"fmt"
	"strings"
)

// Router dispatches a location to the fetcher registered for its scheme.
// Locations without a scheme are local paths.
type Router struct {
	fetchers map[string]Fetcher
}

func NewRouter() *Router {
	return &Router{fetchers: make(map[string]Fetcher)}
}

// Register binds a fetcher to one or more schemes, replacing earlier bindings.
func (r *Router) Register(f Fetcher, schemes ...string) *Router {
	for _, scheme := range schemes {
		r.fetchers[strings.ToLower(scheme)] = f
	}
	return r
}

func (r *Router) Fetch(ctx context.Context, location string) (*Blob, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("empty location")
	}

	scheme := "file"
	if idx := strings.Index(location, "://"); idx > 0 {
		scheme = strings.ToLower(location[:idx])
	}

	f, ok := r.fetchers[scheme]
	if !ok {
		return nil, fmt.Errorf("unsupported location scheme %q", scheme)
	}

	return f.Fetch(ctx, location)
}

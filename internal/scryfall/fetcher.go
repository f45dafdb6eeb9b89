package scryfall

import "context"

// Result holds the output of a single fetcher.
type Result struct {
	Name  string
	Data  any
	Error error
}

// Fetcher is implemented by every Scryfall request that can run unattended,
// e.g. inside the aggregator.
type Fetcher interface {
	// Name returns a human-readable label for the request.
	Name() string
	// Fetch performs the request and returns the unwrapped payload.
	Fetch(ctx context.Context) (any, error)
}

// Package digest collects the data for a watchlist digest: the size of the
// card-name catalog plus one fuzzy lookup per watched card.
package digest

import (
	"context"
	"strings"

	"github.com/janiskrasemann/scryfetch/internal/aggregator"
	"github.com/janiskrasemann/scryfetch/internal/scryfall"
)

type Job struct {
	catalog   scryfall.Fetcher
	lookup    *scryfall.CardLookup
	watchlist []string
}

// New builds a job. Blank watchlist entries are dropped and repeated ones
// (compared case-insensitively) are looked up once.
func New(catalog scryfall.Fetcher, lookup *scryfall.CardLookup, watchlist []string) *Job {
	seen := make(map[string]bool)
	var queries []string
	for _, q := range watchlist {
		q = strings.TrimSpace(q)
		key := strings.ToLower(q)
		if q == "" || seen[key] {
			continue
		}
		seen[key] = true
		queries = append(queries, q)
	}
	return &Job{catalog: catalog, lookup: lookup, watchlist: queries}
}

// Watchlist returns the queries that will be looked up.
func (j *Job) Watchlist() []string { return j.watchlist }

// Fetchers returns the catalog fetcher (if any) followed by one bound
// lookup per watchlist entry.
func (j *Job) Fetchers() []scryfall.Fetcher {
	var fetchers []scryfall.Fetcher
	if j.catalog != nil {
		fetchers = append(fetchers, j.catalog)
	}
	if j.lookup != nil {
		for _, q := range j.watchlist {
			fetchers = append(fetchers, j.lookup.For(q))
		}
	}
	return fetchers
}

// Collect runs every fetcher concurrently.
func (j *Job) Collect(ctx context.Context) []scryfall.Result {
	return aggregator.New(j.Fetchers()...).FetchAll(ctx)
}

// Summary counts successful and failed results.
func Summary(results []scryfall.Result) (ok, failed int) {
	for _, r := range results {
		if r.Error != nil {
			failed++
		} else {
			ok++
		}
	}
	return ok, failed
}

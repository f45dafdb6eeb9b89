package aggregator

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/janiskrasemann/scryfetch/internal/scryfall"
)

// Aggregator runs independent Scryfall requests side by side. Each fetcher
// writes only its own result slot, so nothing is shared between them.
type Aggregator struct {
	fetchers []scryfall.Fetcher
}

func New(fetchers ...scryfall.Fetcher) *Aggregator {
	return &Aggregator{fetchers: fetchers}
}

// Len reports how many fetchers FetchAll will run.
func (a *Aggregator) Len() int { return len(a.fetchers) }

// FetchAll returns one result per fetcher, in registration order.
func (a *Aggregator) FetchAll(ctx context.Context) []scryfall.Result {
	results := make([]scryfall.Result, len(a.fetchers))
	var wg sync.WaitGroup

	for i, f := range a.fetchers {
		wg.Add(1)
		go func(idx int, ft scryfall.Fetcher) {
			defer wg.Done()
			start := time.Now()
			data, err := ft.Fetch(ctx)
			if err != nil {
				log.Printf("Error fetching %s: %v", ft.Name(), err)
			} else {
				log.Printf("Fetched %s in %s", ft.Name(), time.Since(start).Round(time.Millisecond))
			}
			results[idx] = scryfall.Result{
				Name:  ft.Name(),
				Data:  data,
				Error: err,
			}
		}(i, f)
	}

	wg.Wait()
	return results
}

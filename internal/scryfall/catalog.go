package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// NameCatalog retrieves the full list of known card names.
type NameCatalog struct {
	req     requester
	baseURL string
}

func NewNameCatalog(client *http.Client, cfg Config) *NameCatalog {
	cfg = cfg.withDefaults()
	return &NameCatalog{req: newRequester(client, cfg), baseURL: cfg.CatalogURL}
}

func (c *NameCatalog) Name() string { return "Card names" }

func (c *NameCatalog) Fetch(ctx context.Context) (any, error) {
	names, err := c.FetchNames(ctx)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// FetchNames returns the catalog in the order Scryfall delivers it.
func (c *NameCatalog) FetchNames(ctx context.Context) ([]string, error) {
	data, err := c.req.getData(ctx, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetching card names: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("fetching card names: %w", &ParseError{URL: c.baseURL, Err: err})
	}

	return names, nil
}

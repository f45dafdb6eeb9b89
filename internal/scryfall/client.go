package scryfall

import (
	"net/http"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

const (
	DefaultCatalogURL = "https://api.scryfall.com/catalog/card-names"
	DefaultNamedURL   = "https://api.scryfall.com/cards/named"
)

// Config holds the endpoints and request headers used by the fetchers.
// Zero fields fall back to the defaults.
type Config struct {
	CatalogURL string
	NamedURL   string
	UserAgent  string
	Accept     string
}

// DefaultConfig points at the public Scryfall API and sends no extra headers.
func DefaultConfig() Config {
	return Config{
		CatalogURL: DefaultCatalogURL,
		NamedURL:   DefaultNamedURL,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.CatalogURL == "" {
		c.CatalogURL = def.CatalogURL
	}
	if c.NamedURL == "" {
		c.NamedURL = def.NamedURL
	}
	return c
}

// NewHTTPClient returns a pooled client that does not share state with
// http.DefaultClient. A zero timeout leaves latency to the caller's context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	return client
}

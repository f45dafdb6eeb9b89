package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type Card struct {
	Object          string            `json:"object"`
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Lang            string            `json:"lang"`
	ManaCost        string            `json:"mana_cost"`
	CMC             float64           `json:"cmc"`
	TypeLine        string            `json:"type_line"`
	OracleText      string            `json:"oracle_text"`
	SetCode         string            `json:"set"`
	SetName         string            `json:"set_name"`
	CollectorNumber string            `json:"collector_number"`
	Rarity          string            `json:"rarity"`
	Reserved        bool              `json:"reserved"`
	ScryfallURI     string            `json:"scryfall_uri"`
	ImageURIs       map[string]string `json:"image_uris"`
	Prices          map[string]string `json:"prices"`

	// Raw is the data payload exactly as received.
	Raw json.RawMessage `json:"-"`
}

// ImageURL returns the normal-size image, or "" if Scryfall sent none.
func (c Card) ImageURL() string {
	return c.ImageURIs["normal"]
}

// CardLookup retrieves a single card by fuzzy name match.
type CardLookup struct {
	req     requester
	baseURL string
}

func NewCardLookup(client *http.Client, cfg Config) *CardLookup {
	cfg = cfg.withDefaults()
	return &CardLookup{req: newRequester(client, cfg), baseURL: cfg.NamedURL}
}

// FetchCard looks up query with fuzzy=<query>. The query is sent as given,
// including the empty string.
func (l *CardLookup) FetchCard(ctx context.Context, query string) (Card, error) {
	endpoint, err := l.endpoint(query)
	if err != nil {
		return Card{}, err
	}

	data, err := l.req.getData(ctx, endpoint)
	if err != nil {
		return Card{}, fmt.Errorf("fetching card %q: %w", query, err)
	}

	var card Card
	if err := json.Unmarshal(data, &card); err != nil {
		return Card{}, fmt.Errorf("fetching card %q: %w", query, &ParseError{URL: endpoint, Err: err})
	}
	card.Raw = data

	return card, nil
}

func (l *CardLookup) endpoint(query string) (string, error) {
	u, err := url.Parse(l.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing named endpoint: %w", err)
	}
	q := u.Query()
	q.Set("fuzzy", query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// For binds query to the lookup so it can run as a Fetcher.
func (l *CardLookup) For(query string) Fetcher {
	return boundLookup{lookup: l, query: query}
}

type boundLookup struct {
	lookup *CardLookup
	query  string
}

func (b boundLookup) Name() string { return "Card: " + b.query }

func (b boundLookup) Fetch(ctx context.Context) (any, error) {
	card, err := b.lookup.FetchCard(ctx, b.query)
	if err != nil {
		return nil, err
	}
	return card, nil
}

package scryfall

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

var errInvalidJSON = errors.New("body is not valid JSON")

// envelope is the wrapper Scryfall puts around list and catalog payloads.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// requester performs a GET and unwraps the envelope's data field. It is
// shared by NameCatalog and CardLookup and holds no per-call state.
type requester struct {
	client    *http.Client
	userAgent string
	accept    string
}

func newRequester(client *http.Client, cfg Config) requester {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return requester{client: client, userAgent: cfg.UserAgent, accept: cfg.Accept}
}

// getData fetches url and returns the raw bytes of its "data" field.
// The status code is not checked when data is present.
func (r requester) getData(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	if r.accept != "" {
		req.Header.Set("Accept", r.accept)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if !json.Valid(body) {
		perr := &ParseError{URL: url, Err: errInvalidJSON}
		if !ok {
			return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Err: perr}
		}
		return nil, perr
	}

	// Valid JSON that is not an object ([], "x", 42) has no data field either.
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		env.Data = nil
	}

	if isAbsent(env.Data) {
		if !ok {
			return nil, &StatusError{
				URL:        url,
				StatusCode: resp.StatusCode,
				API:        decodeAPIError(body),
				Err:        ErrMissingData,
			}
		}
		return nil, fmt.Errorf("%s: %w", url, ErrMissingData)
	}

	if !ok {
		log.Printf("scryfall: %s returned status %d with data, using it", url, resp.StatusCode)
	}

	return env.Data, nil
}

func isAbsent(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeAPIError(body []byte) *APIError {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Object != "error" {
		return nil
	}
	return &apiErr
}

package scryfall

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T, status int, body string) *NameCatalog {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return NewNameCatalog(server.Client(), Config{CatalogURL: server.URL})
}

func TestFetchNamesPreservesOrder(t *testing.T) {
	catalog := newCatalogServer(t, http.StatusOK, `{
		"object": "catalog",
		"total_values": 4,
		"data": ["Zur the Enchanter", "Abundance", "Lightning Bolt", "Abundance"]
	}`)

	names, err := catalog.FetchNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Zur the Enchanter", "Abundance", "Lightning Bolt", "Abundance"}, names)
}

func TestFetchNamesEmptyCatalog(t *testing.T) {
	catalog := newCatalogServer(t, http.StatusOK, `{"data": []}`)

	names, err := catalog.FetchNames(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestFetchNamesMissingData(t *testing.T) {
	bodies := []string{
		`{"object": "catalog"}`,
		`{"data": null}`,
		`[]`,
		`"x"`,
		`42`,
		`null`,
	}
	for _, body := range bodies {
		catalog := newCatalogServer(t, http.StatusOK, body)

		names, err := catalog.FetchNames(context.Background())
		assert.Nil(t, names)
		assert.ErrorIs(t, err, ErrMissingData, "body %s", body)

		var parseErr *ParseError
		assert.False(t, errors.As(err, &parseErr), "body %s", body)
	}
}

func TestFetchNamesNonObjectWithBadStatus(t *testing.T) {
	for _, body := range []string{`[]`, `"x"`, `42`} {
		catalog := newCatalogServer(t, http.StatusInternalServerError, body)

		_, err := catalog.FetchNames(context.Background())
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr), "body %s", body)
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
		assert.Nil(t, statusErr.API)
		assert.ErrorIs(t, err, ErrMissingData, "body %s", body)
	}
}

func TestFetchNamesIgnoresStatusWhenDataPresent(t *testing.T) {
	catalog := newCatalogServer(t, http.StatusServiceUnavailable, `{"data": ["Island"]}`)

	names, err := catalog.FetchNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Island"}, names)
}

func TestFetchNamesAPIError(t *testing.T) {
	catalog := newCatalogServer(t, http.StatusNotFound, `{
		"object": "error",
		"code": "not_found",
		"status": 404,
		"details": "No catalog found."
	}`)

	_, err := catalog.FetchNames(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	require.NotNil(t, statusErr.API)
	assert.Equal(t, "not_found", statusErr.API.Code)
	assert.Equal(t, "No catalog found.", statusErr.API.Details)
	assert.ErrorIs(t, err, ErrMissingData)
}

func TestFetchNamesMalformedJSON(t *testing.T) {
	for _, body := range []string{`<html>nope</html>`, ``, `{"data": [`} {
		catalog := newCatalogServer(t, http.StatusOK, body)

		_, err := catalog.FetchNames(context.Background())
		var parseErr *ParseError
		assert.True(t, errors.As(err, &parseErr), "body %q", body)
		assert.NotErrorIs(t, err, ErrMissingData)
	}
}

func TestFetchNamesMalformedJSONWithBadStatus(t *testing.T) {
	catalog := newCatalogServer(t, http.StatusBadGateway, `upstream down`)

	_, err := catalog.FetchNames(context.Background())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Nil(t, statusErr.API)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestFetchNamesWrongDataShape(t *testing.T) {
	catalog := newCatalogServer(t, http.StatusOK, `{"data": {"name": "Island"}}`)

	_, err := catalog.FetchNames(context.Background())
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestFetchNamesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	catalog := NewNameCatalog(nil, Config{CatalogURL: url})

	_, err := catalog.FetchNames(context.Background())
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, url, transportErr.URL)
}

func TestFetchNamesCanceledContext(t *testing.T) {
	catalog := newCatalogServer(t, http.StatusOK, `{"data": []}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := catalog.FetchNames(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchNamesHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "scryfetch-test/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"data": ["Forest"]}`))
	}))
	defer server.Close()

	catalog := NewNameCatalog(server.Client(), Config{
		CatalogURL: server.URL,
		UserAgent:  "scryfetch-test/1.0",
		Accept:     "application/json",
	})

	names, err := catalog.FetchNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Forest"}, names)
}

func TestNameCatalogDefaults(t *testing.T) {
	catalog := NewNameCatalog(nil, Config{})
	assert.Equal(t, DefaultCatalogURL, catalog.baseURL)
	assert.Equal(t, "Card names", catalog.Name())
	assert.NotNil(t, catalog.req.client)
}

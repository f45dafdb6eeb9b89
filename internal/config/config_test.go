package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/janiskrasemann/scryfetch/internal/scryfall"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scryfetch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
schedule: "30 6 * * 1"
edition: 4
scryfall:
  catalog_url: "http://localhost:9000/catalog/card-names"
  named_url: "http://localhost:9000/cards/named"
  user_agent: "scryfetch-test/0.1"
  timeout: 5s
watchlist:
  - Black Lotus
  - "Jace, the Mind Sculptor"
email:
  from: "scryfetch@localhost"
  to: "you@localhost"
  resend_api_key: "re_test123"
server:
  addr: "127.0.0.1:9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "30 6 * * 1", cfg.Schedule)
	assert.Equal(t, 4, cfg.Edition)
	assert.Equal(t, "http://localhost:9000/cards/named", cfg.Scryfall.NamedURL)
	assert.Equal(t, 5*time.Second, cfg.Scryfall.Timeout)
	assert.Equal(t, "application/json", cfg.Scryfall.Accept)
	assert.Equal(t, []string{"Black Lotus", "Jace, the Mind Sculptor"}, cfg.Watchlist)
	assert.Equal(t, "re_test123", cfg.Email.ResendAPIKey)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "watchlist: [Counterspell]\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, scryfall.DefaultCatalogURL, cfg.Scryfall.CatalogURL)
	assert.Equal(t, scryfall.DefaultNamedURL, cfg.Scryfall.NamedURL)
	assert.Equal(t, "0 7 * * *", cfg.Schedule)
	assert.Equal(t, 30*time.Second, cfg.Scryfall.Timeout)
}

func TestLoadEnvExpansion(t *testing.T) {
	path := writeConfig(t, `
email:
  resend_api_key: "${TEST_SCRYFETCH_KEY}"
scryfall:
  user_agent: "${TEST_SCRYFETCH_UA:-scryfetch/dev}"
  named_url: "${TEST_SCRYFETCH_UNSET}"
`)
	t.Setenv("TEST_SCRYFETCH_KEY", "secret-123")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret-123", cfg.Email.ResendAPIKey)
	assert.Equal(t, "scryfetch/dev", cfg.Scryfall.UserAgent)
	assert.Equal(t, "${TEST_SCRYFETCH_UNSET}", cfg.Scryfall.NamedURL, "unset reference is kept verbatim")
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, scryfall.DefaultCatalogURL, cfg.Scryfall.CatalogURL)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "watchlist: [unterminated\n")
	_, err := LoadOrDefault(path)
	assert.Error(t, err)
}

func TestEndpoints(t *testing.T) {
	s := ScryfallConfig{CatalogURL: "a", NamedURL: "b", UserAgent: "c", Accept: "d"}
	want := scryfall.Config{CatalogURL: "a", NamedURL: "b", UserAgent: "c", Accept: "d"}
	assert.Equal(t, want, s.Endpoints())
}

func TestIncrementEdition(t *testing.T) {
	path := writeConfig(t, "schedule: \"0 7 * * *\"\nedition: 2\nemail:\n  resend_api_key: \"${RESEND_API_KEY}\"\n")

	require.NoError(t, IncrementEdition(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "edition: 3")
	assert.Contains(t, string(data), "${RESEND_API_KEY}", "env reference must survive")
}

func TestIncrementEditionInsertsAfterSchedule(t *testing.T) {
	path := writeConfig(t, "schedule: \"0 7 * * *\"\nwatchlist: [Island]\n")

	require.NoError(t, IncrementEdition(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Edition)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Equal(t, "edition: 1", lines[1])
}

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/janiskrasemann/scryfetch/internal/scryfall"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Schedule  string         `yaml:"schedule"`
	Edition   int            `yaml:"edition"`
	Scryfall  ScryfallConfig `yaml:"scryfall"`
	Watchlist []string       `yaml:"watchlist"`
	Email     EmailConfig    `yaml:"email"`
	Server    ServerConfig   `yaml:"server"`
}

type ScryfallConfig struct {
	CatalogURL string        `yaml:"catalog_url"`
	NamedURL   string        `yaml:"named_url"`
	UserAgent  string        `yaml:"user_agent"`
	Accept     string        `yaml:"accept"`
	Timeout    time.Duration `yaml:"timeout"`
}

type EmailConfig struct {
	From         string `yaml:"from"`
	To           string `yaml:"to"`
	ResendAPIKey string `yaml:"resend_api_key"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Endpoints converts the scryfall section into the fetchers' config.
func (s ScryfallConfig) Endpoints() scryfall.Config {
	return scryfall.Config{
		CatalogURL: s.CatalogURL,
		NamedURL:   s.NamedURL,
		UserAgent:  s.UserAgent,
		Accept:     s.Accept,
	}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Schedule: "0 7 * * *",
		Scryfall: ScryfallConfig{
			CatalogURL: scryfall.DefaultCatalogURL,
			NamedURL:   scryfall.DefaultNamedURL,
			UserAgent:  "scryfetch/1.0",
			Accept:     "application/json",
			Timeout:    30 * time.Second,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Schedule == "" {
		c.Schedule = def.Schedule
	}
	if c.Scryfall.CatalogURL == "" {
		c.Scryfall.CatalogURL = def.Scryfall.CatalogURL
	}
	if c.Scryfall.NamedURL == "" {
		c.Scryfall.NamedURL = def.Scryfall.NamedURL
	}
	if c.Scryfall.UserAgent == "" {
		c.Scryfall.UserAgent = def.Scryfall.UserAgent
	}
	if c.Scryfall.Accept == "" {
		c.Scryfall.Accept = def.Scryfall.Accept
	}
	if c.Scryfall.Timeout == 0 {
		c.Scryfall.Timeout = def.Scryfall.Timeout
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := strings.TrimSuffix(strings.TrimPrefix(string(match), "${"), "}")

		// Support ${VAR:-default} syntax
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		if val, ok := os.LookupEnv(varName); ok {
			return []byte(val)
		}
		if hasDefault {
			return []byte(defaultVal)
		}
		return match
	})
}

// IncrementEdition bumps the digest edition counter and writes it back to the config file.
func IncrementEdition(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// Edit the raw YAML so env references like ${RESEND_API_KEY} survive
	lines := strings.Split(string(data), "\n")
	found := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "edition:") {
			var current int
			fmt.Sscanf(trimmed, "edition: %d", &current)
			lines[i] = fmt.Sprintf("edition: %d", current+1)
			found = true
			break
		}
	}
	if !found {
		inserted := false
		for i, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "schedule:") {
				newLines := make([]string, 0, len(lines)+1)
				newLines = append(newLines, lines[:i+1]...)
				newLines = append(newLines, "edition: 1")
				newLines = append(newLines, lines[i+1:]...)
				lines = newLines
				inserted = true
				break
			}
		}
		if !inserted {
			lines = append([]string{"edition: 1"}, lines...)
		}
	}

	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

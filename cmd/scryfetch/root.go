package main

import (
	"github.com/janiskrasemann/scryfetch/internal/config"
	"github.com/janiskrasemann/scryfetch/internal/scryfall"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "scryfetch",
	Short: "Fetch card names and card records from Scryfall",
	Long: `scryfetch talks to the Scryfall card database. It can list every known
card name, look up a single card by fuzzy name, email a digest of a card
watchlist on a schedule, and serve both lookups over a small JSON API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "scryfetch.yaml", "path to config file (defaults are used if it does not exist)")
}

// setup loads the config and builds both fetchers on one shared client.
func setup() (*config.Config, *scryfall.NameCatalog, *scryfall.CardLookup, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	client := scryfall.NewHTTPClient(cfg.Scryfall.Timeout)
	endpoints := cfg.Scryfall.Endpoints()

	return cfg, scryfall.NewNameCatalog(client, endpoints), scryfall.NewCardLookup(client, endpoints), nil
}

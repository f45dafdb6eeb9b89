package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/janiskrasemann/scryfetch/internal/scryfall"
	"github.com/spf13/cobra"
)

var cardCmd = &cobra.Command{
	Use:   "card <query...>",
	Short: "Look up a single card by fuzzy name",
	Long: `Card asks Scryfall for the card whose name best matches the query.
All arguments are joined with spaces, so quoting is optional.

Examples:
  scryfetch card bolt
  scryfetch card jace mind sculptor
  scryfetch card --json "Black Lotus"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		query := strings.Join(args, " ")

		_, _, lookup, err := setup()
		if err != nil {
			return err
		}

		card, err := lookup.FetchCard(cmd.Context(), query)
		if err != nil {
			return err
		}

		if asJSON {
			fmt.Fprintln(cmd.OutOrStdout(), string(card.Raw))
			return nil
		}
		printCard(cmd.OutOrStdout(), card)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cardCmd)

	cardCmd.Flags().Bool("json", false, "print the card's raw JSON as returned by Scryfall")
}

var (
	titleColor  = color.New(color.FgHiWhite, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
	rarityColor = map[string]*color.Color{
		"common":   color.New(color.FgWhite),
		"uncommon": color.New(color.FgCyan),
		"rare":     color.New(color.FgYellow),
		"mythic":   color.New(color.FgRed),
	}
)

func printCard(w io.Writer, c scryfall.Card) {
	titleColor.Fprint(w, c.Name)
	if c.ManaCost != "" {
		fmt.Fprintf(w, "  %s", c.ManaCost)
	}
	fmt.Fprintln(w)

	if c.TypeLine != "" {
		fmt.Fprintln(w, c.TypeLine)
	}
	if c.OracleText != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, c.OracleText)
	}
	fmt.Fprintln(w)

	rc, ok := rarityColor[c.Rarity]
	if !ok {
		rc = dimColor
	}
	if c.SetName != "" {
		fmt.Fprintf(w, "%s (%s #%s) ", c.SetName, strings.ToUpper(c.SetCode), c.CollectorNumber)
	}
	rc.Fprintln(w, c.Rarity)

	if usd := c.Prices["usd"]; usd != "" {
		fmt.Fprintf(w, "$%s\n", usd)
	}
	if c.Reserved {
		dimColor.Fprintln(w, "Part of the Reserved List")
	}
	if c.ScryfallURI != "" {
		dimColor.Fprintln(w, c.ScryfallURI)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Print every card name Scryfall knows, one per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		count, _ := cmd.Flags().GetBool("count")

		_, catalog, _, err := setup()
		if err != nil {
			return err
		}

		names, err := catalog.FetchNames(cmd.Context())
		if err != nil {
			return err
		}

		if count {
			fmt.Fprintln(cmd.OutOrStdout(), len(names))
			return nil
		}

		if limit > 0 && limit < len(names) {
			names = names[:limit]
		}
		out := cmd.OutOrStdout()
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(namesCmd)

	namesCmd.Flags().IntP("limit", "n", 0, "print at most this many names")
	namesCmd.Flags().Bool("count", false, "print only the number of names")
}

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/phonebook/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all entries sorted by last name",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		snap := a.book.Load(cmd.Context())

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap.Entries)
		}

		output := tui.EntriesMarkdown(snap.Entries)
		if rendered, err := tui.NewRenderer()(output); err == nil {
			output = rendered
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(output, "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("json", false, "Print entries as JSON")
}

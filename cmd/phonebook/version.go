package main

import (
	"fmt"

	"github.com/aretw0/phonebook"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of phonebook",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "phonebook version %s\n", phonebook.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

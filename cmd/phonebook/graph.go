package main

import (
	"fmt"

	"github.com/aretw0/phonebook/internal/presentation/graph"
	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Visualize the state machine as a Mermaid diagram",
	Long: `Prints the transition table as a Mermaid flowchart.
With --current the given state is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		var overlay *graph.GraphOverlay
		if current, _ := cmd.Flags().GetString("current"); current != "" {
			overlay = &graph.GraphOverlay{CurrentState: domain.State(current)}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(a.book.Transitions(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("current", "", "State to highlight (idle, ready, running)")
}

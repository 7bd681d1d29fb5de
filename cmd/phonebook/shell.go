package main

import (
	"io"
	"os"

	"github.com/aretw0/phonebook"
	"github.com/aretw0/phonebook/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Drive the state machine interactively",
	Long: `Reads one command per line and dispatches it as an event.
Events that are not legal in the current state are reported and ignored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		runner := phonebook.NewRunner()
		runner.Input = cmd.InOrStdin()
		runner.Output = cmd.OutOrStdout()
		runner.AutoCommit, _ = cmd.Flags().GetBool("auto-commit")
		runner.Headless = !isTerminal(runner.Input)

		if !runner.Headless {
			tui.PrintBanner(runner.Output)
			runner.Renderer = tui.NewRenderer()
		}

		return runner.Run(cmd.Context(), a.book)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().Bool("auto-commit", false, "Run READ and FINISH around every mutation")
}

// isTerminal reports whether r is a terminal. Injected readers never are.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List completed interviews from the index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			entries, err := app.transcripts.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "No interviews recorded yet.")
				return nil
			}

			fmt.Fprintf(out, "interviews: %d\n\n", len(entries))
			for _, entry := range entries {
				fmt.Fprintf(out, "%s\n", entry.Model)
				fmt.Fprintf(out, "  completed: %s\n", entry.CompletedAt.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "  questions: %d, avg response: %.1fs, duration: %s\n",
					entry.Questions, entry.AverageLatency.Seconds(), entry.Duration)
				fmt.Fprintf(out, "  file: %s\n\n", filepath.Base(entry.File))
			}

			return nil
		},
	}
}

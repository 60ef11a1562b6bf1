package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProtocolCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "protocol",
		Short: "Print the embedded interview question protocol",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Interview protocol (%d questions)\n\n", len(app.protocol))
			for _, question := range app.protocol {
				fmt.Fprintf(out, "%2d. [%s]\n    %s\n\n", question.Ordinal, question.Section, question.Prompt)
			}

			return nil
		},
	}
}

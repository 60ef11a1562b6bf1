package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "iv",
		Short:         "Interview CLI (iv): run scripted interviews against local models",
		Long:          "iv drives a fixed question protocol through a local inference endpoint, writes a markdown transcript per model, and posts a completion summary to the configured Matrix room.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newInterviewCmd(app),
		newProtocolCmd(app),
		newHistoryCmd(app),
		newNotifyCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}

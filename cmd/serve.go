package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Manage the local GPU inference server",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Launch the inference server in the background",
			RunE: func(cmd *cobra.Command, _ []string) error {
				pid, err := app.launcher.Start()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Inference server started (pid %d) on %s:%d\n",
					pid, app.config.Server.Host, app.config.Server.Port)
				return nil
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop the running inference server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := app.launcher.Stop(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Inference server stopped")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show whether the inference server is running",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if pid := app.launcher.Running(); pid > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Inference server running (pid %d)\n", pid)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Inference server not running")
				return nil
			},
		},
	)

	return cmd
}

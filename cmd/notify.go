package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newNotifyCmd(app *app) *cobra.Command {
	var eventType string
	var check bool

	cmd := &cobra.Command{
		Use:   "notify [message]",
		Short: "Send a test notification to the configured Matrix room",
		Args: func(_ *cobra.Command, args []string) error {
			if check && len(args) == 0 {
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("notify requires a message argument")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.config.Matrix.Validate(); err != nil {
				return err
			}

			if check {
				if err := app.notifier.Check(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Homeserver reachable: %s\n", app.config.Matrix.Homeserver)
				if len(args) == 0 {
					return nil
				}
			}

			return runNotifySpinner(cmd.Context(), cmd.OutOrStdout(), "Sending notification...", func(ctx context.Context) error {
				eventID, err := app.notifier.SendEvent(ctx, eventType, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sent: %s\n", eventID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&eventType, "event-type", "Notification", "Event type label for the message")
	cmd.Flags().BoolVar(&check, "check", false, "Check homeserver reachability first")

	return cmd
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/probelab/interview-cli/internal/adapters/render/transcript"
	"github.com/probelab/interview-cli/internal/application"
	"github.com/probelab/interview-cli/internal/domain"
	"github.com/probelab/interview-cli/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInterviewCmd(app *app) *cobra.Command {
	var noNotify bool

	cmd := &cobra.Command{
		Use:   "interview <model-id>",
		Short: "Run the full interview protocol against a model",
		Long:  "interview asks every protocol question in order over one rolling conversation, writes the markdown transcript, records it in the interview index, and posts a summary to the configured Matrix room.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := args[0]

			// Credentials are checked before the first question so a
			// misconfigured room cannot waste a completed session.
			if !noNotify {
				if err := app.config.Matrix.Validate(); err != nil {
					return err
				}
			}

			driver := application.NewDriver(app.chat, app.clock)
			interviewer, err := application.NewInterviewer(
				driver,
				app.systemPrompt,
				app.protocol,
				app.clock,
				newProgressPrinter(cmd.OutOrStdout()),
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Starting interview: %s (%d questions)\n\n", model, len(app.protocol))

			result, err := interviewer.RunInterview(cmd.Context(), model)
			if err != nil {
				var aborted *domain.SessionAbortedError
				if errors.As(err, &aborted) {
					app.logger.Error("interview aborted",
						zap.String("model", model),
						zap.Int("ordinal", aborted.Ordinal),
						zap.Duration("elapsed", aborted.Elapsed),
						zap.Error(aborted.Err),
					)
				}
				return err
			}

			report := transcript.Render(result, transcript.RenderOptions{
				Interviewer:    app.config.Matrix.InstanceName,
				Infrastructure: app.config.Inference.BaseURL,
			})

			path, err := app.transcripts.SaveReport(cmd.Context(), model, report)
			if err != nil {
				return err
			}

			if err := app.transcripts.Record(cmd.Context(), ports.TranscriptEntry{
				Model:          model,
				Slug:           domain.Slug(model),
				File:           path,
				Questions:      len(result.Turns),
				TotalLatency:   result.TotalLatency(),
				AverageLatency: result.AverageLatency(),
				Duration:       result.Duration(),
				CompletedAt:    result.EndedAt,
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nInterview saved: %s\n", path)

			if !noNotify {
				summary := summaryMessage(result, path)
				notifyErr := runNotifySpinner(cmd.Context(), cmd.OutOrStdout(), "Posting summary to Matrix...", func(ctx context.Context) error {
					eventID, err := app.notifier.SendEvent(ctx, "Interview", summary)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Posted to Matrix: %s\n", eventID)
					return nil
				})
				if notifyErr != nil {
					// A completed interview is worth more than its
					// notification; report and move on.
					app.logger.Warn("matrix notification failed",
						zap.String("model", model),
						zap.Error(notifyErr),
					)
					fmt.Fprintf(cmd.OutOrStdout(), "Warning: summary notification failed: %v\n", notifyErr)
				}
			}

			duration := int(result.Duration().Seconds())
			fmt.Fprintf(cmd.OutOrStdout(), "Interview complete: %s (%dm %ds)\n", model, duration/60, duration%60)

			return nil
		},
	}

	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "Skip the Matrix summary notification")

	return cmd
}

func summaryMessage(result domain.SessionResult, path string) string {
	duration := int(result.Duration().Seconds())

	return fmt.Sprintf(
		"Interview complete!\n\nModel: %s\nDuration: %dm %ds\nQuestions: %d/%d completed\nAvg Response Time: %.1fs\nSaved: %s",
		result.Model,
		duration/60, duration%60,
		len(result.Turns), len(result.Turns),
		result.AverageLatency().Seconds(),
		path,
	)
}

func formatLatency(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

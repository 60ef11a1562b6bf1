// Package transcript renders a completed interview session into its markdown
// report. Rendering is pure: the same session result always produces the same
// bytes.
package transcript

import (
	"fmt"
	"strings"
	"time"

	"github.com/probelab/interview-cli/internal/domain"
)

type RenderOptions struct {
	Interviewer    string
	Infrastructure string
}

// Render builds the full markdown report: header, one section per turn in
// ordinal order, and a latency summary. Total duration comes from the session
// wall clock; per-turn latencies are measured independently and do not have
// to sum to it.
func Render(result domain.SessionResult, opts RenderOptions) string {
	var b strings.Builder

	duration := int(result.Duration().Seconds())

	fmt.Fprintf(&b, "# Interview: %s\n\n", result.Model)
	fmt.Fprintf(&b, "**Model:** %s\n", result.Model)
	fmt.Fprintf(&b, "**Date:** %s\n", result.StartedAt.Format("January 2, 2006"))
	if opts.Interviewer != "" {
		fmt.Fprintf(&b, "**Interviewer:** %s\n", opts.Interviewer)
	}
	if opts.Infrastructure != "" {
		fmt.Fprintf(&b, "**Infrastructure:** %s\n", opts.Infrastructure)
	}
	fmt.Fprintf(&b, "**Status:** Complete (%d/%d questions)\n", len(result.Turns), len(result.Turns))
	fmt.Fprintf(&b, "**Duration:** %d minutes %d seconds\n", duration/60, duration%60)
	b.WriteString("\n---\n\n")

	for _, turn := range result.Turns {
		fmt.Fprintf(&b, "## Question %d: %s\n\n", turn.Ordinal, turn.Section)
		fmt.Fprintf(&b, "**Q:** %q\n\n", turn.Prompt)
		fmt.Fprintf(&b, "**Response Time:** %s seconds\n\n", formatSeconds(turn.Latency))
		b.WriteString("**Response:**\n\n")
		b.WriteString(turn.Response)
		b.WriteString("\n\n---\n\n")
	}

	b.WriteString("## Interview Summary\n\n")
	fmt.Fprintf(&b, "**Completed:** %s\n", result.EndedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Total Questions:** %d\n", len(result.Turns))
	fmt.Fprintf(&b, "**Total Response Time:** %s seconds\n", formatSeconds(result.TotalLatency()))
	fmt.Fprintf(&b, "**Average Response Time:** %s seconds\n", formatSeconds(result.AverageLatency()))

	return b.String()
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1f", d.Seconds())
}

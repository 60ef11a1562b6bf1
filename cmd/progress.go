package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/probelab/interview-cli/internal/application"
	"github.com/probelab/interview-cli/internal/domain"
)

const excerptLength = 120

// progressPrinter streams per-turn output while the interview runs, in the
// spirit of watching the conversation scroll by.
type progressPrinter struct {
	out           io.Writer
	questionStyle lipgloss.Style
	answerStyle   lipgloss.Style
	latencyStyle  lipgloss.Style
}

var _ application.Progress = (*progressPrinter)(nil)

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{
		out:           out,
		questionStyle: lipgloss.NewStyle().Bold(true),
		answerStyle:   lipgloss.NewStyle().Faint(true),
		latencyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
	}
}

func (p *progressPrinter) TurnStarted(question domain.Question, total int) {
	fmt.Fprintln(p.out, p.questionStyle.Render(
		fmt.Sprintf("Question %d/%d: %s", question.Ordinal, total, question.Section)))
	fmt.Fprintf(p.out, "Q: %s\n", excerpt(question.Prompt))
}

func (p *progressPrinter) TurnCompleted(turn domain.TurnResult, _ int) {
	fmt.Fprintf(p.out, "A: %s\n", p.answerStyle.Render(excerpt(turn.Response)))
	fmt.Fprintf(p.out, "%s\n\n", p.latencyStyle.Render("Response time: "+formatLatency(turn.Latency)))
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}
	return string(runes[:excerptLength]) + "..."
}

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"shoebox.dev/cli/internal/application/services"
	"shoebox.dev/cli/internal/core/domain/plugin"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true)
	nameStyle        = lipgloss.NewStyle().Width(16)
	okStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	recoverableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	fatalStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle       = lipgloss.NewStyle().Faint(true)
)

func outcomeLabel(o plugin.Outcome) string {
	switch o {
	case plugin.OutcomeFatal:
		return fatalStyle.Render(o.String())
	case plugin.OutcomeRecoverable:
		return recoverableStyle.Render(o.String())
	default:
		return okStyle.Render(o.String())
	}
}

// printReport writes one line per plugin followed by the aggregate outcome
func printReport(w io.Writer, report services.Report) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s hooks", report.Hook)))
	if len(report.Results) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  no plugins loaded"))
	}
	for _, res := range report.Results {
		switch {
		case res.Skipped:
			fmt.Fprintf(w, "  %s %s\n", nameStyle.Render(res.Plugin), mutedStyle.Render("skipped"))
		case res.Err != nil:
			fmt.Fprintf(w, "  %s %s %v\n", nameStyle.Render(res.Plugin), outcomeLabel(res.Outcome), res.Err)
		default:
			fmt.Fprintf(w, "  %s %s\n", nameStyle.Render(res.Plugin), outcomeLabel(res.Outcome))
		}
	}
	fmt.Fprintf(w, "result: %s\n", outcomeLabel(report.Outcome))
}

// reportError turns a failed report into a command error
func reportError(report services.Report) error {
	if !report.Outcome.Failed() {
		return nil
	}
	return &OutcomeError{Outcome: report.Outcome}
}

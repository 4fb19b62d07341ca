package cli

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/progress"
	"github.com/agbru/bigcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for the running batch.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numJobs int, out io.Writer) {
	DisplayProgress(wg, progressChan, numJobs, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output: a table in normal mode, bare values in quiet mode.
type CLIResultPresenter struct{}

// JSONResultPresenter implements orchestration.ResultPresenter by writing a
// single JSON document.
type JSONResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ResultPresenter = JSONResultPresenter{}
)

// PresentResults writes one row per expression. Quiet mode prints only the
// values, one per line, and "error: ..." for failures so that line numbers
// still match the input.
func (CLIResultPresenter) PresentResults(results []orchestration.EvalResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(out, "error: %v\n", r.Err)
				continue
			}
			DisplayQuietResult(out, r.Value, opts.MaxDigits)
		}
		return
	}

	maxDigits := opts.MaxDigits
	if maxDigits == 0 && !opts.Verbose {
		maxDigits = TruncationLimit
	}

	fmt.Fprintf(out, "\n--- Results ---\n")
	// Colors would break tabwriter's width computation, so only the
	// trailing status column is colored.
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	header := "#\tExpression\tResult\tTime\t"
	if opts.Verbose {
		header = "#\tExpression\tResult\tDigits\tBits\tTime\t"
	}
	fmt.Fprintf(tw, "%sStatus\n", header)
	for _, r := range results {
		value, status := "-", fmt.Sprintf("%sOK%s", ui.ColorGreen(), ui.ColorReset())
		digits, bits := "-", "-"
		if r.Err != nil {
			status = fmt.Sprintf("%sFAILED: %v%s", ui.ColorRed(), errorCause(r.Err), ui.ColorReset())
		} else {
			value, _ = FormatValue(r.Value, maxDigits)
			digits = format.FormatCount(digitCount(r.Value))
			bits = format.FormatCount(r.Value.BitLen())
		}
		duration := format.FormatExecutionDuration(r.Duration)
		if opts.Verbose {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", r.Index+1, r.Expr, value, digits, bits, duration, status)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Index+1, r.Expr, value, duration, status)
		}
	}
	tw.Flush()
}

// PresentSummary prints the success count and total time. Nothing is printed
// in quiet mode.
func (CLIResultPresenter) PresentSummary(s orchestration.Summary, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		return
	}
	color := ui.ColorGreen()
	if s.Failed > 0 {
		color = ui.ColorRed()
	}
	fmt.Fprintf(out, "\n%s%s/%s succeeded%s in %s%s%s",
		color, format.FormatCount(s.Succeeded), format.FormatCount(s.Total), ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(s.Elapsed), ui.ColorReset())
	if s.Total > 1 && s.Slowest >= 0 {
		fmt.Fprintf(out, " (slowest: #%d)", s.Slowest+1)
	}
	fmt.Fprintln(out)
}

// PresentResults writes the JSON document.
func (JSONResultPresenter) PresentResults(results []orchestration.EvalResult, _ orchestration.PresentationOptions, out io.Writer) {
	if err := DisplayResultsJSON(out, results); err != nil {
		fmt.Fprintf(out, "{\"error\": %q}\n", err.Error())
	}
}

// PresentSummary does nothing; the summary is part of the JSON document.
func (JSONResultPresenter) PresentSummary(orchestration.Summary, orchestration.PresentationOptions, io.Writer) {
}

// errorCause strips the expression prefix that EvalError adds, since the
// table already shows the expression.
func errorCause(err error) error {
	if u, ok := err.(interface{ Unwrap() error }); ok && u.Unwrap() != nil {
		return u.Unwrap()
	}
	return err
}

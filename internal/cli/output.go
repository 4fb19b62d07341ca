// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatValue].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultsToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the results (empty for no file output).
	OutputFile string
	// Quiet prints bare values only.
	Quiet bool
	// Verbose adds digit count, bit length and duration.
	Verbose bool
	// MaxDigits truncates displayed values; 0 shows everything.
	MaxDigits int
}

// DisplayResult prints "expr = value" and, in verbose mode, the size and
// timing of the value.
//
// Parameters:
//   - out: The output writer.
//   - expr: The source text, or "" to print the value alone.
//   - value: The result.
//   - duration: The evaluation time.
//   - verbose: Whether to print the details line.
//   - maxDigits: The display truncation limit (0 = none).
func DisplayResult(out io.Writer, expr string, value *bigint.Int, duration time.Duration, verbose bool, maxDigits int) {
	text, truncated := FormatValue(value, maxDigits)
	if expr != "" {
		fmt.Fprintf(out, "%s%s%s = ", ui.ColorMagenta(), expr, ui.ColorReset())
	}
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorGreen(), text, ui.ColorReset())
	if truncated {
		fmt.Fprintf(out, "  %s(truncated to %d of %s digits)%s\n",
			ui.ColorDim(), maxDigits, format.FormatCount(digitCount(value)), ui.ColorReset())
	}
	if verbose {
		fmt.Fprintf(out, "  digits: %s%s%s  bits: %s%s%s  time: %s%s%s\n",
			ui.ColorCyan(), format.FormatCount(digitCount(value)), ui.ColorReset(),
			ui.ColorCyan(), format.FormatCount(value.BitLen()), ui.ColorReset(),
			ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
	}
}

// FormatQuietResult formats a value for quiet mode: the bare decimal, shortened
// only if maxDigits asks for it.
func FormatQuietResult(value *bigint.Int, maxDigits int) string {
	text, _ := FormatValue(value, maxDigits)
	return text
}

// DisplayQuietResult writes FormatQuietResult followed by a newline.
func DisplayQuietResult(out io.Writer, value *bigint.Int, maxDigits int) {
	fmt.Fprintln(out, FormatQuietResult(value, maxDigits))
}

// WriteResultsToFile writes a header and one "expr = value" line per
// successful result. Failures are written as comments. Values are never
// truncated in files.
//
// Parameters:
//   - path: The destination; parent directories are created.
//   - results: The batch results in input order.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultsToFile(path string, results []orchestration.EvalResult) (err error) {
	if path == "" {
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	summary := orchestration.Summarize(results)
	fmt.Fprintf(file, "# bigcalc results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Expressions: %d (%d failed)\n", summary.Total, summary.Failed)
	fmt.Fprintf(file, "\n")

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(file, "# %v\n", r.Err)
			continue
		}
		if _, err := fmt.Fprintf(file, "%s = %s\n", r.Expr, r.Value); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}
	return nil
}

// jsonResult is the JSON form of one batch entry.
type jsonResult struct {
	Index      int     `json:"index"`
	Expr       string  `json:"expr"`
	Result     *string `json:"result"`
	Digits     int     `json:"digits"`
	Bits       int     `json:"bits"`
	DurationMS float64 `json:"duration_ms"`
	Error      string  `json:"error,omitempty"`
}

type jsonSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type jsonDocument struct {
	Results []jsonResult `json:"results"`
	Summary jsonSummary  `json:"summary"`
}

// DisplayResultsJSON writes the batch as an indented JSON document. Values
// are always complete; result is null for failed entries.
func DisplayResultsJSON(out io.Writer, results []orchestration.EvalResult) error {
	doc := jsonDocument{Results: make([]jsonResult, 0, len(results))}
	for _, r := range results {
		jr := jsonResult{
			Index:      r.Index,
			Expr:       r.Expr,
			DurationMS: float64(r.Duration) / float64(time.Millisecond),
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		} else {
			s := r.Value.String()
			jr.Result = &s
			jr.Digits = digitCount(r.Value)
			jr.Bits = r.Value.BitLen()
		}
		doc.Results = append(doc.Results, jr)
	}
	s := orchestration.Summarize(results)
	doc.Summary = jsonSummary{Total: s.Total, Succeeded: s.Succeeded, Failed: s.Failed}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

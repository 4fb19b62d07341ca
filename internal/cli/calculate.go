package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
)

// PrintExecutionConfig displays the batch configuration before evaluation
// starts: batch size, worker count, timeout and environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - numExprs: The number of expressions in the batch.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, numExprs int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%s%s expression(s) on %s%d%s worker(s) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), format.FormatCount(numExprs), ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if len(cfg.Defines) > 0 {
		fmt.Fprintf(out, "Predefined variables: %s%d%s.\n", ui.ColorCyan(), len(cfg.Defines), ui.ColorReset())
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

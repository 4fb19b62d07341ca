package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/agbru/bigcalc/internal/cli"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// maxLineSize bounds a single line read from a batch file or stdin.
const maxLineSize = 16 * 1024 * 1024

// runBatch evaluates the expressions from --file, the command line or
// piped stdin. With none of those and an interactive stdin it falls back to
// the REPL.
func (a *Application) runBatch(ctx context.Context, env *expr.Env, out io.Writer) int {
	exprs, err := a.collectExpressions()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	if exprs == nil {
		return a.runREPL(ctx, env, out)
	}
	if len(exprs) == 0 {
		fmt.Fprintln(a.ErrWriter, "Error: no expressions to evaluate")
		return apperrors.ExitErrorConfig
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	if a.Config.Verbose && !a.Config.JSON {
		cli.PrintExecutionConfig(a.Config, len(exprs), out)
	}

	var reporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	progressOut := io.Discard
	if len(exprs) > 1 && !a.Config.Quiet && !a.Config.JSON {
		reporter, progressOut = cli.CLIProgressReporter{}, out
	}

	a.Logger.Debug("starting batch",
		logging.Int("expressions", len(exprs)),
		logging.Int("workers", a.Config.Workers))
	results := orchestration.ExecuteBatch(ctx,
		orchestration.NewEnvFactory(env, a.evalOptions()), exprs,
		orchestration.BatchOptions{Workers: a.Config.Workers, Logger: a.Logger},
		reporter, progressOut)

	code := a.presentResults(results, out)

	if a.Config.OutputFile != "" {
		if err := cli.WriteResultsToFile(a.Config.OutputFile, results); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		} else if !a.Config.Quiet && !a.Config.JSON {
			fmt.Fprintf(out, "Results written to %s\n", a.Config.OutputFile)
		}
	}
	return code
}

// presentResults prints the results and returns the exit code. A single
// expression is shown as "expr = value"; batches get a table.
func (a *Application) presentResults(results []orchestration.EvalResult, out io.Writer) int {
	opts := orchestration.PresentationOptions{
		Quiet:     a.Config.Quiet,
		Verbose:   a.Config.Verbose,
		MaxDigits: a.Config.MaxDigits,
	}
	if a.Config.JSON {
		return orchestration.AnalyzeResults(results, opts, cli.JSONResultPresenter{}, out)
	}
	if len(results) != 1 {
		return orchestration.AnalyzeResults(results, opts, cli.CLIResultPresenter{}, out)
	}

	r := results[0]
	switch {
	case r.Err != nil:
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", r.Err)
	case a.Config.Quiet:
		cli.DisplayQuietResult(out, r.Value, a.Config.MaxDigits)
	default:
		cli.DisplayResult(out, r.Expr, r.Value, r.Duration, a.Config.Verbose, a.Config.MaxDigits)
	}
	return apperrors.ExitCodeFor(r.Err)
}

// collectExpressions returns the batch input. A nil slice means there is
// nothing to read and stdin is a terminal.
func (a *Application) collectExpressions() ([]string, error) {
	switch {
	case a.Config.File == "-":
		return readExpressions(a.In)
	case a.Config.File != "":
		f, err := os.Open(a.Config.File)
		if err != nil {
			return nil, apperrors.NewConfigError("cannot open batch file: %v", err)
		}
		defer f.Close()
		return readExpressions(f)
	case len(a.Config.Exprs) > 0:
		return a.Config.Exprs, nil
	case isTerminal(a.In):
		return nil, nil
	default:
		return readExpressions(a.In)
	}
}

// readExpressions reads one expression per line, skipping blank lines and
// lines starting with '#'.
func readExpressions(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	exprs := []string{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.WrapError(err, "failed to read expressions")
	}
	return exprs, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

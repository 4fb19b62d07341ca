package orchestration

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/progress"
)

const tracerName = "github.com/agbru/bigcalc/internal/orchestration"

// BatchOptions controls ExecuteBatch.
type BatchOptions struct {
	// Workers is the maximum number of concurrent evaluations. Values below
	// one select runtime.NumCPU().
	Workers int
	// Logger receives per-job debug entries. Nil disables logging.
	Logger logging.Logger
}

// Summary aggregates a finished batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	// Elapsed is the sum of the per-expression durations.
	Elapsed time.Duration
	// Slowest is the index of the longest-running expression, or -1 for an
	// empty batch.
	Slowest int
}

// ExecuteBatch evaluates each expression with its own Evaluator, running at
// most opts.Workers evaluations at a time. A failing expression does not stop
// the others; cancelling ctx makes the remaining ones fail with the context
// error.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - factory: Produces one isolated Evaluator per expression.
//   - exprs: The expressions to evaluate.
//   - opts: Concurrency and logging options.
//   - reporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//
// Returns:
//   - []EvalResult: One result per expression, in input order.
func ExecuteBatch(ctx context.Context, factory EvaluatorFactory, exprs []string, opts BatchOptions, reporter ProgressReporter, out io.Writer) []EvalResult {
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "orchestration.ExecuteBatch")
	defer span.End()
	span.SetAttributes(
		attribute.Int("bigcalc.batch.size", len(exprs)),
		attribute.Int("bigcalc.batch.workers", workers),
	)

	results := make([]EvalResult, len(exprs))
	// Every job sends exactly one update, so this never blocks a worker.
	progressChan := make(chan progress.ProgressUpdate, len(exprs))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(exprs), out)

	var g errgroup.Group
	g.SetLimit(workers)
	for i, src := range exprs {
		g.Go(func() error {
			results[i] = evaluateOne(ctx, factory, i, src)
			if err := results[i].Err; err != nil {
				logger.Debug("expression failed", logging.Int("index", i), logging.Err(err))
			}
			progressChan <- progress.ProgressUpdate{Index: i, Value: 1}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	summary := Summarize(results)
	span.SetAttributes(attribute.Int("bigcalc.batch.failed", summary.Failed))
	if summary.Failed > 0 {
		span.SetStatus(codes.Error, "one or more expressions failed")
	}
	logger.Debug("batch finished",
		logging.Int("total", summary.Total),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed))
	return results
}

func evaluateOne(ctx context.Context, factory EvaluatorFactory, index int, src string) EvalResult {
	res := EvalResult{Index: index, Expr: src}
	if err := ctx.Err(); err != nil {
		res.Err = apperrors.EvalError{Expr: src, Cause: err}
		return res
	}
	start := time.Now()
	v, err := factory.NewEvaluator().Eval(ctx, src)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = apperrors.EvalError{Expr: src, Cause: err}
		return res
	}
	res.Value = v
	return res
}

// Summarize counts successes and failures and finds the slowest entry.
func Summarize(results []EvalResult) Summary {
	s := Summary{Total: len(results), Slowest: -1}
	var slowest time.Duration
	for i, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
		s.Elapsed += r.Duration
		if s.Slowest < 0 || r.Duration > slowest {
			s.Slowest, slowest = i, r.Duration
		}
	}
	return s
}

// AnalyzeResults presents the results and the summary, then derives the
// process exit status from the first failure.
//
// Parameters:
//   - results: The batch results in input order.
//   - opts: The presentation options.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: ExitSuccess, or the exit code of the first failure (a timeout
//     wins over an evaluation error).
func AnalyzeResults(results []EvalResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	presenter.PresentResults(results, opts, out)
	presenter.PresentSummary(Summarize(results), opts, out)

	var firstErr error
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if errors.Is(r.Err, context.DeadlineExceeded) || errors.Is(r.Err, context.Canceled) {
			return apperrors.ExitCodeFor(r.Err)
		}
		if firstErr == nil {
			firstErr = r.Err
		}
	}
	return apperrors.ExitCodeFor(firstErr)
}

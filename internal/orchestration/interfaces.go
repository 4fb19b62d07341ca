package orchestration

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/progress"
)

// EvalResult encapsulates the outcome of evaluating one batch entry.
// It serves as the shared domain type between orchestration and presentation layers.
type EvalResult struct {
	// Index is the position of the expression in the batch input.
	Index int
	// Expr is the source text that was evaluated.
	Expr string
	// Value is the result of the last statement. It is nil if an error occurred.
	Value *bigint.Int
	// Duration is the time taken to evaluate the expression.
	Duration time.Duration
	// Err contains any error that occurred, wrapped in an apperrors.EvalError.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Quiet     bool
	Verbose   bool
	MaxDigits int
}

// Evaluator evaluates source text to a single integer. *expr.Evaluator is
// the production implementation.
type Evaluator interface {
	Eval(ctx context.Context, src string) (*bigint.Int, error)
}

// EvaluatorFactory produces an independent Evaluator for each batch job so
// that assignments in one expression never leak into another.
type EvaluatorFactory interface {
	NewEvaluator() Evaluator
}

// EvaluatorFactoryFunc is a function adapter that implements EvaluatorFactory.
type EvaluatorFactoryFunc func() Evaluator

// NewEvaluator calls the underlying function.
func (f EvaluatorFactoryFunc) NewEvaluator() Evaluator { return f() }

// ProgressReporter defines the interface for displaying batch progress.
// Implementations handle the visual representation (spinners, progress
// bars) while the orchestration layer coordinates the evaluations.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed.
	// It should be called in a separate goroutine.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving one update per finished job.
	//   - numJobs: The number of jobs in the batch.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numJobs int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
// This allows passing a function directly where a ProgressReporter is expected.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numJobs int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numJobs int, out io.Writer) {
	f(wg, progressChan, numJobs, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting batch results,
// allowing different output formats (table, JSON, quiet) without modifying
// the orchestration logic.
type ResultPresenter interface {
	// PresentResults displays every result in input order.
	PresentResults(results []EvalResult, opts PresentationOptions, out io.Writer)

	// PresentSummary displays the aggregate counts and timings.
	PresentSummary(summary Summary, opts PresentationOptions, out io.Writer)
}

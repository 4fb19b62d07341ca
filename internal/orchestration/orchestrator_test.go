package orchestration_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/orchestration/mocks"
	"github.com/agbru/bigcalc/internal/progress"
)

// TestExecuteBatch verifies that each expression gets its own evaluator and
// that results keep input order.
func TestExecuteBatch(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	factory := mocks.NewMockEvaluatorFactory(ctrl)
	okEval := mocks.NewMockEvaluator(ctrl)
	failEval := mocks.NewMockEvaluator(ctrl)
	// One worker runs the jobs in input order.
	factory.EXPECT().NewEvaluator().Return(okEval)
	factory.EXPECT().NewEvaluator().Return(failEval)
	okEval.EXPECT().Eval(gomock.Any(), "1+1").Return(bigint.NewInt(2), nil)
	failEval.EXPECT().Eval(gomock.Any(), "1/0").Return(nil, bigint.ErrDivisionByZero)

	results := orchestration.ExecuteBatch(context.Background(), factory, []string{"1+1", "1/0"},
		orchestration.BatchOptions{Workers: 1}, orchestration.NullProgressReporter{}, io.Discard)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil || results[0].Value.String() != "2" || results[0].Index != 0 {
		t.Errorf("results[0] = %+v", results[0])
	}
	var evalErr apperrors.EvalError
	if !errors.As(results[1].Err, &evalErr) || evalErr.Expr != "1/0" {
		t.Errorf("results[1].Err = %v, want EvalError for 1/0", results[1].Err)
	}
	if !errors.Is(results[1].Err, bigint.ErrDivisionByZero) {
		t.Errorf("results[1].Err = %v, want ErrDivisionByZero in chain", results[1].Err)
	}
}

// TestExecuteBatchReportsProgress checks that the reporter sees one
// completion per expression before the channel closes.
func TestExecuteBatchReportsProgress(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	eval := mocks.NewMockEvaluator(ctrl)
	eval.EXPECT().Eval(gomock.Any(), gomock.Any()).Return(bigint.NewInt(1), nil).Times(5)
	factory := orchestration.EvaluatorFactoryFunc(func() orchestration.Evaluator { return eval })

	reporter := mocks.NewMockProgressReporter(ctrl)
	var seen []progress.ProgressUpdate
	reporter.EXPECT().DisplayProgress(gomock.Any(), gomock.Any(), 5, gomock.Any()).
		Do(func(wg *sync.WaitGroup, ch <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
			defer wg.Done()
			for u := range ch {
				seen = append(seen, u)
			}
		})

	orchestration.ExecuteBatch(context.Background(), factory, []string{"a", "b", "c", "d", "e"},
		orchestration.BatchOptions{Workers: 3}, reporter, io.Discard)

	if len(seen) != 5 {
		t.Fatalf("reporter saw %d updates, want 5", len(seen))
	}
	indices := make(map[int]bool)
	for _, u := range seen {
		if u.Value != 1 {
			t.Errorf("update %+v is not a completion", u)
		}
		indices[u.Index] = true
	}
	if len(indices) != 5 {
		t.Errorf("updates covered indices %v", indices)
	}
}

// TestAnalyzeResults verifies exit status selection and that both presenter
// hooks run.
func TestAnalyzeResults(t *testing.T) {
	t.Parallel()
	evalFail := apperrors.EvalError{Expr: "1/0", Cause: bigint.ErrDivisionByZero}
	timeout := apperrors.EvalError{Expr: "pow(9, 9999999)", Cause: context.DeadlineExceeded}
	tests := []struct {
		name           string
		results        []orchestration.EvalResult
		expectedStatus int
	}{
		{
			name: "All success",
			results: []orchestration.EvalResult{
				{Expr: "1", Value: bigint.NewInt(1), Duration: time.Millisecond},
				{Index: 1, Expr: "2", Value: bigint.NewInt(2), Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "One failure",
			results: []orchestration.EvalResult{
				{Expr: "1", Value: bigint.NewInt(1)},
				{Index: 1, Expr: "1/0", Err: evalFail},
			},
			expectedStatus: apperrors.ExitErrorEval,
		},
		{
			name: "Timeout wins over evaluation error",
			results: []orchestration.EvalResult{
				{Expr: "1/0", Err: evalFail},
				{Index: 1, Expr: "pow(9, 9999999)", Err: timeout},
			},
			expectedStatus: apperrors.ExitErrorTimeout,
		},
		{
			name:           "Empty batch",
			expectedStatus: apperrors.ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			presenter := mocks.NewMockResultPresenter(ctrl)
			opts := orchestration.PresentationOptions{Verbose: true}
			presenter.EXPECT().PresentResults(tt.results, opts, gomock.Any())
			presenter.EXPECT().PresentSummary(orchestration.Summarize(tt.results), opts, gomock.Any())

			status := orchestration.AnalyzeResults(tt.results, opts, presenter, io.Discard)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	s := orchestration.Summarize([]orchestration.EvalResult{
		{Duration: 3 * time.Millisecond},
		{Duration: 9 * time.Millisecond, Err: errors.New("x")},
		{Duration: 1 * time.Millisecond},
	})
	want := orchestration.Summary{Total: 3, Succeeded: 2, Failed: 1, Elapsed: 13 * time.Millisecond, Slowest: 1}
	if s != want {
		t.Errorf("Summarize = %+v, want %+v", s, want)
	}
	if empty := orchestration.Summarize(nil); empty.Slowest != -1 || empty.Total != 0 {
		t.Errorf("Summarize(nil) = %+v", empty)
	}
}

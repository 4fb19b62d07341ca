package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/metrics"
)

// EvalDoneMsg carries the outcome of one evaluation back to the model.
type EvalDoneMsg struct {
	Entry Entry
	// Vars is the variable count after the evaluation, read on the
	// evaluating goroutine so the model never touches the env concurrently.
	Vars int
}

// TickMsg triggers a status refresh.
type TickMsg time.Time

// MemStatsMsg carries a memory reading.
type MemStatsMsg metrics.MemorySnapshot

// ContextCancelledMsg is sent when the parent context ends.
type ContextCancelledMsg struct {
	Err error
}

// evalCmd evaluates src on a background goroutine. The model does not start
// another evaluation until the EvalDoneMsg arrives.
func evalCmd(ctx context.Context, ev *expr.Evaluator, src string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		start := time.Now()
		v, err := ev.Eval(ctx, src)
		e := Entry{Expr: src, Duration: time.Since(start), Err: err}
		if err == nil {
			e.Result = v.String()
			e.Digits = len(e.Result)
			if v.Sign() < 0 {
				e.Digits--
			}
			e.Bits = v.BitLen()
		}
		return EvalDoneMsg{Entry: e, Vars: ev.Env().Len()}
	}
}

// tickCmd returns a command that sends a TickMsg after one second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats.
func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg(mc.Snapshot())
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

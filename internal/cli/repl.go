package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/ui"
)

// Prompt is printed before every line read by the REPL.
const Prompt = "bigcalc> "

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout bounds each evaluation. Zero means no limit.
	Timeout time.Duration
	// MaxDigits is the initial display truncation; 0 selects TruncationLimit.
	MaxDigits int
	// Options is passed to the evaluator.
	Options expr.Options
	// Version is shown in the banner.
	Version string
}

// REPL is an interactive calculator session. Variables persist across lines.
type REPL struct {
	config    REPLConfig
	evaluator *expr.Evaluator
	maxDigits int
	collector *metrics.MemoryCollector
	in        io.Reader
	out       io.Writer
}

// NewREPL creates a new REPL bound to env. A nil env starts empty.
//
// Parameters:
//   - env: The variable environment, possibly pre-populated with defines.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(env *expr.Env, config REPLConfig) *REPL {
	maxDigits := config.MaxDigits
	if maxDigits == 0 {
		maxDigits = TruncationLimit
	}
	return &REPL{
		config:    config,
		evaluator: expr.NewEvaluator(env, config.Options),
		maxDigits: maxDigits,
		collector: metrics.NewMemoryCollector(),
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Env returns the session's variables.
func (r *REPL) Env() *expr.Env { return r.evaluator.Env() }

// Start reads lines until exit, EOF or cancellation of ctx.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	fmt.Fprintf(r.out, "Type %shelp%s for commands.\n\n", ui.ColorYellow(), ui.ColorReset())

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nInterrupted.")
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+Prompt+ui.ColorReset())

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if !r.processLine(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	title := "bigcalc interactive mode"
	if r.config.Version != "" {
		title += " " + r.config.Version
	}
	rule := strings.Repeat("─", len(title)+4)
	fmt.Fprintf(r.out, "\n%s%s%s\n", ui.ColorCyan(), rule, ui.ColorReset())
	fmt.Fprintf(r.out, "  %s%s%s\n", ui.ColorBold(), title, ui.ColorReset())
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorCyan(), rule, ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sEnter an expression, or one of:%s\n", ui.ColorBold(), ui.ColorReset())
	cmds := [][2]string{
		{"vars", "List variables"},
		{"unset <name>", "Remove a variable"},
		{"clear", "Remove all variables"},
		{"truncate [n]", "Show or set display truncation (0 = off)"},
		{"status", "Show session and runtime information"},
		{"help", "Display this help"},
		{"exit / quit", "Leave interactive mode"},
	}
	for _, c := range cmds {
		fmt.Fprintf(r.out, "  %s%-14s%s %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
	fmt.Fprintf(r.out, "%sFunctions:%s %s\n", ui.ColorBold(), ui.ColorReset(), strings.Join(expr.Builtins(), ", "))
}

// processLine runs a command or evaluates an expression. It returns false
// when the session should end.
func (r *REPL) processLine(ctx context.Context, input string) bool {
	fields := strings.Fields(input)
	switch strings.ToLower(fields[0]) {
	case "help", "?":
		r.printHelp()
	case "vars":
		r.cmdVars()
	case "unset":
		r.cmdUnset(fields[1:])
	case "clear":
		r.Env().Clear()
		fmt.Fprintln(r.out, "All variables removed.")
	case "status":
		r.cmdStatus()
	case "truncate":
		r.cmdTruncate(fields[1:])
	case "exit", "quit":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.evaluate(ctx, input)
	}
	return true
}

func (r *REPL) evaluate(ctx context.Context, src string) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	value, err := r.evaluator.Eval(ctx, src)
	duration := time.Since(start)
	if err != nil {
		r.printError(src, err)
		return
	}

	text, truncated := FormatValue(value, r.maxDigits)
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorGreen(), text, ui.ColorReset())
	details := fmt.Sprintf("digits: %s  bits: %s  time: %s",
		format.FormatCount(digitCount(value)), format.FormatCount(value.BitLen()),
		format.FormatExecutionDuration(duration))
	if truncated {
		details += "  (truncated)"
	}
	fmt.Fprintf(r.out, "  %s%s%s\n", ui.ColorDim(), details, ui.ColorReset())
}

// printError shows err and, when it carries a source offset, a caret under
// the offending position.
func (r *REPL) printError(src string, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(r.out, "%sError: evaluation timed out after %s%s\n", ui.ColorRed(), r.config.Timeout, ui.ColorReset())
		return
	}
	if pos, ok := errorOffset(err); ok && pos <= len(src) {
		fmt.Fprintf(r.out, "  %s\n  %s%s^%s\n", src, strings.Repeat(" ", pos), ui.ColorRed(), ui.ColorReset())
	}
	fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}

func errorOffset(err error) (int, bool) {
	var se *expr.SyntaxError
	if errors.As(err, &se) {
		return se.Pos, true
	}
	var re *expr.RuntimeError
	if errors.As(err, &re) {
		return re.Pos, true
	}
	return 0, false
}

func (r *REPL) cmdVars() {
	env := r.Env()
	if env.Len() == 0 {
		fmt.Fprintln(r.out, "No variables defined.")
		return
	}
	width := 0
	for _, name := range env.Names() {
		width = max(width, len(name))
	}
	env.Each(func(name string, v *bigint.Int) bool {
		text, _ := FormatValue(v, r.maxDigits)
		fmt.Fprintf(r.out, "  %s%-*s%s = %s\n", ui.ColorYellow(), width, name, ui.ColorReset(), text)
		return true
	})
}

func (r *REPL) cmdUnset(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: unset <name>...%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	for _, name := range args {
		if r.Env().Delete(name) {
			fmt.Fprintf(r.out, "Removed %s%s%s\n", ui.ColorYellow(), name, ui.ColorReset())
		} else {
			fmt.Fprintf(r.out, "%sNo such variable: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		}
	}
}

func (r *REPL) cmdTruncate(args []string) {
	if len(args) == 0 {
		if r.maxDigits == 0 {
			fmt.Fprintln(r.out, "Truncation: off")
		} else {
			fmt.Fprintf(r.out, "Truncation: %d digits\n", r.maxDigits)
		}
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Fprintf(r.out, "%sInvalid digit count: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.maxDigits = n
	if n == 0 {
		fmt.Fprintln(r.out, "Truncation disabled.")
		return
	}
	fmt.Fprintf(r.out, "Truncating to %d digits.\n", n)
}

func (r *REPL) cmdStatus() {
	mem := r.collector.Snapshot()
	info := metrics.CollectRuntimeInfo()

	fmt.Fprintf(r.out, "\n%sSession:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Variables:   %s%d%s\n", ui.ColorCyan(), r.Env().Len(), ui.ColorReset())
	timeout := "none"
	if r.config.Timeout > 0 {
		timeout = r.config.Timeout.String()
	}
	fmt.Fprintf(r.out, "  Timeout:     %s%s%s\n", ui.ColorCyan(), timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Truncation:  %s%d%s digits\n", ui.ColorCyan(), r.maxDigits, ui.ColorReset())
	maxBits := "unlimited"
	if b := r.config.Options.MaxBits; b >= 0 {
		if b == 0 {
			b = expr.DefaultMaxBits
		}
		maxBits = format.FormatCount(b)
	}
	fmt.Fprintf(r.out, "  Max bits:    %s%s%s\n", ui.ColorCyan(), maxBits, ui.ColorReset())

	fmt.Fprintf(r.out, "%sRuntime:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Go:          %s %s/%s, %d CPUs\n", info.GoVersion, info.OS, info.Arch, info.NumCPU)
	if len(info.CPUFeatures) > 0 {
		fmt.Fprintf(r.out, "  CPU:         %s\n", strings.Join(info.CPUFeatures, " "))
	}
	fmt.Fprintf(r.out, "  Heap:        %s in use, %s from OS\n", format.FormatBytes(mem.HeapAlloc), format.FormatBytes(mem.HeapSys))
	fmt.Fprintf(r.out, "  GC cycles:   %d this session (%s paused), %d total\n",
		mem.SessionGC, format.FormatExecutionDuration(mem.SessionPause), mem.NumGC)
	if sys := metrics.SampleSystem(); sys.MemTotal > 0 {
		fmt.Fprintf(r.out, "  System:      %.1f%% CPU, %.1f%% of %s memory\n",
			sys.CPUPercent, sys.MemPercent, format.FormatBytes(sys.MemTotal))
	}
	fmt.Fprintln(r.out)
}

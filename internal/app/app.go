package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/tui"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In supplies expressions when none are given and for the REPL.
	In     io.Reader
	Logger logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput replaces os.Stdin as the input source.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithLogger replaces the default stderr logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = config.ApplyAdaptiveDefaults(cfg)

	if app.Logger == nil {
		level, err := logging.ParseLevel(app.Config.LogLevel)
		if err != nil {
			return nil, apperrors.NewConfigError("%v", err)
		}
		app.Logger = logging.NewLevelLogger(errWriter, "bigcalc", level)
	}
	return app, nil
}

// Run executes the application in the configured mode and returns the
// process exit code. Modes are tried in order: version, completion, server,
// TUI, REPL, then batch evaluation.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	env, err := orchestration.NewEnvFromDefines(ctx, a.Config.Defines, a.evalOptions())
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}

	switch {
	case a.Config.Serve != "":
		return a.runServer(ctx, env)
	case a.Config.TUI:
		return tui.Run(ctx, env, tui.Config{
			Timeout:   a.Config.Timeout,
			MaxDigits: a.Config.MaxDigits,
			Options:   a.evalOptions(),
			Version:   Version,
		})
	case a.Config.Interactive:
		return a.runREPL(ctx, env, out)
	}
	return a.runBatch(ctx, env, out)
}

func (a *Application) evalOptions() expr.Options {
	return expr.Options{MaxBits: a.Config.MaxBits}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runREPL(ctx context.Context, env *expr.Env, out io.Writer) int {
	repl := cli.NewREPL(env, cli.REPLConfig{
		Timeout:   a.Config.Timeout,
		MaxDigits: a.Config.MaxDigits,
		Options:   a.evalOptions(),
		Version:   Version,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

func (a *Application) runServer(ctx context.Context, env *expr.Env) int {
	sec := server.DefaultSecurityConfig()
	sec.MaxExprLen = a.Config.MaxExprLen
	cfg := server.Config{
		Addr:     a.Config.Serve,
		Timeout:  a.Config.Timeout,
		Security: sec,
	}
	factory := orchestration.NewEnvFactory(env, server.EvalOptions(cfg, a.evalOptions()))
	srv := server.NewServer(cfg, factory, a.Logger)

	if err := srv.ListenAndServe(ctx); err != nil {
		a.Logger.Error("server stopped", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

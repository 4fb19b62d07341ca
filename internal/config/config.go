// Package config handles command-line parsing and validation for bigcalc.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
)

// EnvPrefix is prepended to every environment variable consulted by
// applyEnvOverrides.
const EnvPrefix = "BIGCALC_"

const (
	// DefaultTimeout bounds a whole batch or a single server request.
	DefaultTimeout = 5 * time.Minute
	// DefaultMaxExprLen is the largest expression the server accepts, in bytes.
	DefaultMaxExprLen = 64 * 1024
	// TruncateDigits is the display width used when truncation is toggled on
	// without an explicit --max-digits.
	TruncateDigits = 100
)

var supportedShells = []string{"bash", "zsh", "fish", "powershell"}

// Define is a variable binding supplied with -D name=value. Value is an
// expression evaluated once at startup.
type Define struct {
	Name  string
	Value string
}

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags, environment variables and an optional TOML file.
type AppConfig struct {
	// Exprs holds the positional arguments, one expression each.
	Exprs []string
	// File is a batch input file with one expression per line ("-" for stdin).
	File string
	// Interactive starts the line-oriented REPL.
	Interactive bool
	// TUI starts the full-screen calculator.
	TUI bool
	// Serve is the HTTP listen address; empty disables server mode.
	Serve string
	// Workers limits concurrent evaluations in batch mode. Zero selects a
	// host-dependent default.
	Workers int
	// Timeout is the deadline for a batch or a single request.
	Timeout time.Duration
	// Quiet prints bare results only.
	Quiet bool
	// Verbose adds digit and bit counts plus timing to each result.
	Verbose bool
	// JSON switches batch output to a JSON document.
	JSON bool
	// NoColor disables ANSI colors.
	NoColor bool
	// OutputFile, when set, receives the batch results as plain text.
	OutputFile string
	// Defines are pre-bound variables.
	Defines []Define
	// LogLevel is the minimum zerolog level name.
	LogLevel string
	// MaxDigits truncates displayed values to this many digits; 0 shows all.
	MaxDigits int
	// MaxExprLen is the server's request size limit in bytes.
	MaxExprLen int
	// MaxBits caps the size of intermediate values; 0 uses the evaluator
	// default and a negative value removes the cap.
	MaxBits int
	// Completion, when set, prints a completion script for that shell.
	Completion string
	// ConfigFile is the TOML file consulted for defaults.
	ConfigFile string
	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// defineList implements flag.Value for repeated -D flags.
type defineList struct {
	target *[]Define
}

func (d defineList) String() string {
	if d.target == nil {
		return ""
	}
	parts := make([]string, len(*d.target))
	for i, def := range *d.target {
		parts[i] = def.Name + "=" + def.Value
	}
	return strings.Join(parts, ",")
}

func (d defineList) Set(s string) error {
	def, err := parseDefine(s)
	if err != nil {
		return err
	}
	*d.target = append(*d.target, def)
	return nil
}

func parseDefine(s string) (Define, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if !ok || name == "" || value == "" {
		return Define{}, fmt.Errorf("expected name=value, got %q", s)
	}
	return Define{Name: name, Value: value}, nil
}

// ParseConfig parses the command-line arguments into an AppConfig, then
// layers the config file and environment underneath any flags that were not
// set explicitly. The priority is flags, then environment, then config file,
// then defaults.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The arguments without the program name.
//   - errorWriter: The destination for usage and parse errors.
//
// Returns:
//   - AppConfig: The populated and validated configuration.
//   - error: flag.ErrHelp when -h was given, a parse error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	config := AppConfig{}

	fs.StringVar(&config.File, "file", "", "Evaluate each line of a file (\"-\" for stdin).")
	fs.StringVar(&config.File, "f", "", "Shorthand for --file.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive REPL.")
	fs.BoolVar(&config.Interactive, "i", false, "Shorthand for --interactive.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the full-screen calculator.")
	fs.StringVar(&config.Serve, "serve", "", "Serve the HTTP API on this address (e.g. \":8080\").")
	fs.IntVar(&config.Workers, "workers", 0, "Concurrent evaluations in batch mode (0 = auto).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Deadline for a batch or a request.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print bare results only.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show digit counts, bit lengths and timings.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.JSON, "json", false, "Write batch results as JSON.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.OutputFile, "output", "", "Also write results to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.Var(defineList{&config.Defines}, "D", "Bind a variable before evaluation (name=expr, repeatable).")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Minimum log level (debug, info, warn, error).")
	fs.IntVar(&config.MaxDigits, "max-digits", 0, "Truncate displayed values to this many digits (0 = no limit).")
	fs.IntVar(&config.MaxExprLen, "max-expr-len", DefaultMaxExprLen, "Largest expression accepted by the server, in bytes.")
	fs.IntVar(&config.MaxBits, "max-bits", 0, "Largest intermediate value in bits (0 = default, -1 = unlimited).")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell).")
	fs.StringVar(&config.ConfigFile, "config", "", "Read defaults from this TOML file.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit.")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] [expression ...]\n\n", programName)
		fmt.Fprintln(errorWriter, "Evaluates arbitrary-precision integer expressions.")
		fmt.Fprintln(errorWriter, "\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	config.Exprs = fs.Args()

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		if err := applyFileConfig(&config, fs, config.ConfigFile); err != nil {
			return AppConfig{}, err
		}
	}
	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the configuration for semantic errors.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate() error {
	if c.Workers < 0 {
		return apperrors.NewConfigError("--workers must be zero or positive, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxDigits < 0 {
		return apperrors.NewConfigError("--max-digits must be zero or positive, got %d", c.MaxDigits)
	}
	if c.MaxExprLen <= 0 {
		return apperrors.NewConfigError("--max-expr-len must be positive, got %d", c.MaxExprLen)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if c.JSON && c.Interactive {
		return apperrors.NewConfigError("--json has no effect in interactive mode")
	}
	if modes := c.exclusiveModes(); len(modes) > 1 {
		return apperrors.NewConfigError("conflicting modes: %s", strings.Join(modes, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("--log-level: %v", err)
	}
	if c.Completion != "" && !isSupportedShell(c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q for --completion (valid: %s)",
			c.Completion, strings.Join(supportedShells, ", "))
	}
	for _, d := range c.Defines {
		if !isIdentifier(d.Name) {
			return apperrors.NewConfigError("-D %s: %q is not a valid variable name", d.Name+"="+d.Value, d.Name)
		}
	}
	return nil
}

func (c AppConfig) exclusiveModes() []string {
	var modes []string
	if c.Serve != "" {
		modes = append(modes, "--serve")
	}
	if c.TUI {
		modes = append(modes, "--tui")
	}
	if c.Interactive {
		modes = append(modes, "--interactive")
	}
	if c.File != "" {
		modes = append(modes, "--file")
	}
	return modes
}

func isSupportedShell(s string) bool {
	for _, sh := range supportedShells {
		if sh == s {
			return true
		}
	}
	return false
}

// isIdentifier reports whether s is a variable name the expression language
// accepts: a letter or underscore followed by letters, digits or underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

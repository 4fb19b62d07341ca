// Package ui provides theme and color support for the CLI and the TUI.
// Colors are turned off for --no-color, NO_COLOR and non-terminal output so
// that piped results stay free of escape sequences.
package ui

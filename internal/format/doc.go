// Package format holds the display helpers shared by the CLI, the TUI and
// the server: durations, digit grouping, truncation of long values and the
// progress bar with its time estimate.
package format

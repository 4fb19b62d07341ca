package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/format"
)

// Entry is one evaluated line shown in the scrollback.
type Entry struct {
	Expr     string
	Result   string
	Digits   int
	Bits     int
	Duration time.Duration
	Err      error
}

// History keeps the scrollback and the recall list for Up/Down. Recall skips
// consecutive duplicates.
type History struct {
	entries []Entry
	inputs  []string
	// cursor indexes inputs while recalling; len(inputs) means "not
	// recalling".
	cursor int
	draft  string
}

// Add appends an evaluated entry and resets recall.
func (h *History) Add(e Entry) {
	h.entries = append(h.entries, e)
	if n := len(h.inputs); n == 0 || h.inputs[n-1] != e.Expr {
		h.inputs = append(h.inputs, e.Expr)
	}
	h.cursor = len(h.inputs)
	h.draft = ""
}

// Clear drops the scrollback. The recall list is kept.
func (h *History) Clear() { h.entries = nil }

// Len returns the number of scrollback entries.
func (h *History) Len() int { return len(h.entries) }

// Prev moves to the previous input. current is what the user has typed so
// far, restored by Next once recall walks past the newest input.
func (h *History) Prev(current string) (string, bool) {
	if h.cursor == 0 || len(h.inputs) == 0 {
		return "", false
	}
	if h.cursor == len(h.inputs) {
		h.draft = current
	}
	h.cursor--
	return h.inputs[h.cursor], true
}

// Next moves toward the newest input, ending at the saved draft.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.inputs) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.inputs) {
		return h.draft, true
	}
	return h.inputs[h.cursor], true
}

// Render formats the scrollback for the viewport, truncating values to
// maxDigits.
func (h *History) Render(maxDigits int) string {
	var sb strings.Builder
	for i, e := range h.entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(promptStyle.Render("> ") + exprStyle.Render(e.Expr) + "\n")
		if e.Err != nil {
			sb.WriteString(errorStyle.Render("  error: "+e.Err.Error()) + "\n")
			continue
		}
		sb.WriteString("  " + resultStyle.Render(format.Truncate(e.Result, maxDigits)) + "\n")
		sb.WriteString(detailStyle.Render(fmt.Sprintf("  %s digits, %s bits, %s",
			format.FormatCount(e.Digits), format.FormatCount(e.Bits),
			format.FormatExecutionDuration(e.Duration))) + "\n")
	}
	return sb.String()
}

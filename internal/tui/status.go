package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/metrics"
)

// sparklineSamples is the number of recent evaluation times kept for the
// status bar.
const sparklineSamples = 20

// StatusModel renders the bottom status line: heap usage, GC count, the
// last evaluation time and a sparkline of recent ones.
type StatusModel struct {
	mem     metrics.MemorySnapshot
	times   *RingBuffer
	last    time.Duration
	busy    bool
	width   int
	hasEval bool
}

// NewStatusModel creates an empty status line.
func NewStatusModel() StatusModel {
	return StatusModel{times: NewRingBuffer(sparklineSamples)}
}

// SetWidth updates the available width.
func (s *StatusModel) SetWidth(w int) { s.width = w }

// SetBusy marks an evaluation as running.
func (s *StatusModel) SetBusy(b bool) { s.busy = b }

// UpdateMemStats stores a memory reading.
func (s *StatusModel) UpdateMemStats(m metrics.MemorySnapshot) { s.mem = m }

// RecordEval adds an evaluation time to the sparkline.
func (s *StatusModel) RecordEval(d time.Duration) {
	s.last = d
	s.hasEval = true
	s.times.Push(float64(d))
}

// View renders the status line.
func (s StatusModel) View() string {
	pipe := statusLabelStyle.Render(" | ")
	line := statusLabelStyle.Render("heap ") +
		statusValueStyle.Render(format.FormatBytes(s.mem.HeapAlloc)) + pipe +
		statusLabelStyle.Render("gc ") +
		statusValueStyle.Render(fmt.Sprintf("%d", s.mem.SessionGC))
	if s.hasEval {
		line += pipe + statusLabelStyle.Render("last ") +
			statusValueStyle.Render(format.FormatExecutionDuration(s.last)) + " " +
			sparklineStyle.Render(RenderSparkline(s.times.Slice()))
	}
	if s.busy {
		line += pipe + busyStyle.Render("evaluating...")
	}
	return lipgloss.NewStyle().Width(s.width).Padding(0, 1).Render(line)
}

package orchestration

import (
	"time"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/progress"
)

// ProgressAggregator wraps format.ProgressWithETA and provides a
// higher-level API for consuming progress updates from a channel. Both the
// CLI and the TUI use it to avoid duplicating the aggregation logic.
type ProgressAggregator struct {
	state   *format.ProgressWithETA
	numJobs int
	done    int
}

// NewProgressAggregator creates a new aggregator for the given number of
// jobs. Returns nil if numJobs <= 0.
func NewProgressAggregator(numJobs int) *ProgressAggregator {
	if numJobs <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:   format.NewProgressWithETA(numJobs),
		numJobs: numJobs,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// Index is the job that sent the update.
	Index int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the fraction of the whole batch that is done.
	AverageProgress float64
	// Completed is the number of jobs that reported completion.
	Completed int
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	if update.Value >= 1 {
		a.done++
	}
	avg, eta := a.state.UpdateWithETA(update.Index, update.Value)
	return AggregatedProgress{
		Index:           update.Index,
		Value:           update.Value,
		AverageProgress: avg,
		Completed:       a.done,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumJobs returns the number of jobs being tracked.
func (a *ProgressAggregator) NumJobs() int {
	return a.numJobs
}

// IsMultiJob returns true if tracking more than one job.
func (a *ProgressAggregator) IsMultiJob() bool {
	return a.numJobs > 1
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}

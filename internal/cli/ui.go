package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/progress"
)

const (
	// TruncationLimit is the number of digits shown in the batch table when
	// no --max-digits was given.
	TruncationLimit = 60
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so that DisplayProgress can be tested
// without a real terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with a completion count, a progress bar
// and an ETA until progressChan is closed. It calls wg.Done on return.
//
// Parameters:
//   - wg: Signalled when the display has finished.
//   - progressChan: One update per finished expression.
//   - numJobs: The batch size.
//   - out: The destination for the spinner.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numJobs int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numJobs)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	completed := 0
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "\r%s\n", progressLine(completed, numJobs, 1, 0))
				return
			}
			ap := agg.Update(update)
			completed = ap.Completed
			s.UpdateSuffix(" " + progressLine(completed, numJobs, ap.AverageProgress, ap.ETA))
		case <-ticker.C:
			s.UpdateSuffix(" " + progressLine(completed, numJobs, agg.CalculateAverage(), agg.GetETA()))
		}
	}
}

func progressLine(done, total int, fraction float64, eta time.Duration) string {
	return fmt.Sprintf("%s/%s %s", format.FormatCount(done), format.FormatCount(total),
		format.FormatProgressBarWithETA(fraction, eta, ProgressBarWidth))
}

// Package progress defines the progress types shared by the batch
// orchestrator and its displays.
package progress

// ProgressUpdate reports the completion of one unit of work.
type ProgressUpdate struct {
	// Index identifies the job within its batch.
	Index int
	// Value is the job's completion fraction between 0 and 1.
	Value float64
}

// ProgressCallback receives completion fractions for a single job.
type ProgressCallback func(value float64)

// ProgressState tracks the completion fraction of a fixed number of jobs.
// It is not safe for concurrent use; a single display goroutine owns it.
type ProgressState struct {
	progresses []float64
	numJobs    int
}

// NewProgressState creates a state for numJobs jobs, all at zero.
func NewProgressState(numJobs int) *ProgressState {
	if numJobs < 0 {
		numJobs = 0
	}
	return &ProgressState{
		progresses: make([]float64, numJobs),
		numJobs:    numJobs,
	}
}

// Update records value for the job at index. Out-of-range indices are
// ignored and values are clamped to [0, 1].
func (s *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= s.numJobs {
		return
	}
	switch {
	case value < 0:
		value = 0
	case value > 1:
		value = 1
	}
	s.progresses[index] = value
}

// CalculateAverage returns the mean completion over all jobs.
func (s *ProgressState) CalculateAverage() float64 {
	if s.numJobs == 0 {
		return 0
	}
	var total float64
	for _, p := range s.progresses {
		total += p
	}
	return total / float64(s.numJobs)
}

// Len returns the number of tracked jobs.
func (s *ProgressState) Len() int { return s.numJobs }

package cli

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/progress"
	"github.com/agbru/bigcalc/internal/ui"
)

// MockSpinner records calls made by DisplayProgress.
type MockSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	m.started = true
	m.mu.Unlock()
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	m.suffixes = append(m.suffixes, suffix)
	m.mu.Unlock()
}

func TestMain(m *testing.M) {
	ui.InitTheme(true)
	m.Run()
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
	if s.Suffix != " test" {
		t.Errorf("Suffix = %q", s.Suffix)
	}
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(...spinner.Option) Spinner { return mockS }

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.ProgressUpdate)
	var out bytes.Buffer

	go func() {
		progressChan <- progress.ProgressUpdate{Index: 0, Value: 1}
		progressChan <- progress.ProgressUpdate{Index: 1, Value: 1}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 2, &out)
	wg.Wait()

	if !mockS.started || !mockS.stopped {
		t.Errorf("spinner started=%v stopped=%v", mockS.started, mockS.stopped)
	}
	if !slices.ContainsFunc(mockS.suffixes, func(s string) bool { return strings.Contains(s, "2/2") }) {
		t.Errorf("suffixes = %q", mockS.suffixes)
	}
	if !strings.Contains(out.String(), "100.00%") {
		t.Errorf("final line missing: %q", out.String())
	}
}

func TestDisplayProgress_ZeroJobs(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestFormatValue(t *testing.T) {
	t.Parallel()
	long := bigint.MustParse("-" + strings.Repeat("1234567890", 10))
	tests := []struct {
		name      string
		v         *bigint.Int
		max       int
		want      string
		truncated bool
	}{
		{"short", bigint.NewInt(12345), 10, "12345", false},
		{"no limit", long, 0, long.String(), false},
		{"negative truncated", long, 6, "-123...890", true},
		{"odd limit", bigint.NewInt(1234567), 3, "12...7", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, truncated := FormatValue(tt.v, tt.max)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("FormatValue = %q, %v; want %q, %v", got, truncated, tt.want, tt.truncated)
			}
		})
	}
	if n := digitCount(long); n != 100 {
		t.Errorf("digitCount = %d, want 100", n)
	}
}

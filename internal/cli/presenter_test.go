package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/orchestration"
)

func TestCLIResultPresenter_Table(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentResults(sampleResults(), orchestration.PresentationOptions{}, &buf)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("want header, title and 3 rows, got %d lines:\n%s", len(lines), out)
	}
	for _, want := range []string{"Expression", "1 + 2", "OK", "FAILED: bigint: division by zero"} {
		if !strings.Contains(out, want) {
			t.Errorf("table lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "FAILED: 1 / 0:") {
		t.Error("status repeats the expression")
	}
}

func TestCLIResultPresenter_Verbose(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentResults(sampleResults(), orchestration.PresentationOptions{Verbose: true}, &buf)
	if out := buf.String(); !strings.Contains(out, "Digits") || !strings.Contains(out, "Bits") {
		t.Errorf("verbose table lacks size columns:\n%s", out)
	}
}

func TestCLIResultPresenter_Quiet(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	opts := orchestration.PresentationOptions{Quiet: true}
	p := CLIResultPresenter{}
	p.PresentResults(sampleResults(), opts, &buf)
	p.PresentSummary(orchestration.Summary{Total: 3, Failed: 1}, opts, &buf)

	want := "3\nerror: 1 / 0: bigint: division by zero\n1" + strings.Repeat("0", 30) + "\n"
	if buf.String() != want {
		t.Errorf("quiet output = %q, want %q", buf.String(), want)
	}
}

func TestCLIResultPresenter_Summary(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := orchestration.Summary{Total: 3, Succeeded: 2, Failed: 1, Elapsed: 1500 * time.Millisecond, Slowest: 2}
	CLIResultPresenter{}.PresentSummary(s, orchestration.PresentationOptions{}, &buf)
	out := buf.String()
	if !strings.Contains(out, "2/3 succeeded") || !strings.Contains(out, "slowest: #3") {
		t.Errorf("summary = %q", out)
	}
}

func TestJSONResultPresenter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := JSONResultPresenter{}
	p.PresentResults(sampleResults(), orchestration.PresentationOptions{}, &buf)
	n := buf.Len()
	p.PresentSummary(orchestration.Summary{}, orchestration.PresentationOptions{}, &buf)
	if buf.Len() != n {
		t.Error("PresentSummary wrote output")
	}
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("not a JSON document: %q", buf.String())
	}
}

package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
)

func newTestApp(t *testing.T, stdin string, args ...string) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	app, err := New(append([]string{"bigcalc", "--no-color"}, args...), &errBuf,
		WithInput(strings.NewReader(stdin)), WithLogger(logging.Nop()))
	if err != nil {
		t.Fatalf("New(%v): %v (stderr: %s)", args, err, errBuf.String())
	}
	return app, &errBuf
}

func run(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	app, errBuf := newTestApp(t, stdin, args...)
	var out bytes.Buffer
	code = app.Run(context.Background(), &out)
	return code, out.String(), errBuf.String()
}

func TestRunSingleExpression(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"plain", []string{"1 + 2"}, apperrors.ExitSuccess, "1 + 2 = 3\n", ""},
		{"quiet", []string{"-q", "pow(2, 10)"}, apperrors.ExitSuccess, "1024\n", ""},
		{"define", []string{"-D", "n=6", "-q", "n * 7"}, apperrors.ExitSuccess, "42\n", ""},
		{"division by zero", []string{"1 / 0"}, apperrors.ExitErrorEval, "", "division by zero"},
		{"syntax", []string{"1 +"}, apperrors.ExitErrorEval, "", "Error:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(t, "", tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, errOut)
			}
			if out != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out, tt.wantOut)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestRunBatchFromStdin(t *testing.T) {
	stdin := "# squares\n1 * 1\n\n2 * 2\n3 * 3\n"
	code, out, _ := run(t, stdin, "-q")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if out != "1\n4\n9\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestRunBatchTable(t *testing.T) {
	code, out, _ := run(t, "", "x = 2; x * 5", "7 / 0", "x")
	if code != apperrors.ExitErrorEval {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorEval)
	}
	for _, want := range []string{"--- Results ---", "10", "FAILED", "bigint: division by zero", "1/3 succeeded"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunBatchFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "exprs.txt")
	if err := os.WriteFile(in, []byte("10 + 5\n# skipped\n2 << 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outFile := filepath.Join(dir, "out", "results.txt")

	code, _, _ := run(t, "", "-f", in, "-q", "-o", outFile)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# bigcalc results", "10 + 5 = 15", "2 << 3 = 16"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("results file missing %q:\n%s", want, data)
		}
	}
}

func TestRunMissingFile(t *testing.T) {
	code, _, errOut := run(t, "", "-f", filepath.Join(t.TempDir(), "absent.txt"))
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errOut, "cannot open batch file") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRunJSON(t *testing.T) {
	code, out, _ := run(t, "", "--json", "6 * 7", "nope")
	if code != apperrors.ExitErrorEval {
		t.Errorf("exit code = %d", code)
	}
	var doc struct {
		Results []struct {
			Expr   string  `json:"expr"`
			Result *string `json:"result"`
			Error  string  `json:"error"`
		} `json:"results"`
		Summary struct {
			Total  int `json:"total"`
			Failed int `json:"failed"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(doc.Results) != 2 || doc.Summary.Total != 2 || doc.Summary.Failed != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Results[0].Result == nil || *doc.Results[0].Result != "42" {
		t.Errorf("first result = %v", doc.Results[0].Result)
	}
	if doc.Results[1].Result != nil || doc.Results[1].Error == "" {
		t.Errorf("second result should be an error: %+v", doc.Results[1])
	}
}

func TestRunEmptyInput(t *testing.T) {
	code, _, errOut := run(t, "\n# only comments\n")
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errOut, "no expressions") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRunInteractive(t *testing.T) {
	code, out, _ := run(t, "a = 3\na * a\nexit\n", "-i")
	if code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d", code)
	}
	if !strings.Contains(out, "9") || !strings.Contains(out, "Goodbye!") {
		t.Errorf("REPL output:\n%s", out)
	}
}

func TestRunCompletion(t *testing.T) {
	code, out, _ := run(t, "", "--completion", "bash")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "bigcalc") {
		t.Errorf("completion script does not mention bigcalc:\n%s", out)
	}
}

func TestRunVersion(t *testing.T) {
	code, out, _ := run(t, "", "--version")
	if code != apperrors.ExitSuccess || !strings.HasPrefix(out, "bigcalc "+Version) {
		t.Errorf("code = %d, output = %q", code, out)
	}
}

func TestRunInvalidDefine(t *testing.T) {
	code, _, errOut := run(t, "", "-D", "x=1/0", "x")
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d (stderr: %s)", code, apperrors.ExitErrorConfig, errOut)
	}
}

func TestNewErrors(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"bigcalc", "-h"}, &errBuf)
	if !IsHelpError(err) {
		t.Errorf("-h: err = %v, want flag.ErrHelp", err)
	}

	errBuf.Reset()
	_, err = New([]string{"bigcalc", "--quiet", "--verbose", "1"}, &errBuf)
	if err == nil || IsHelpError(err) {
		t.Errorf("conflicting flags: err = %v", err)
	}
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
		t.Errorf("conflicting flags exit code = %d", apperrors.ExitCodeFor(err))
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-q", "-version"}, true},
		{[]string{"1 + 1"}, false},
		{[]string{"--", "--version"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestReadExpressions(t *testing.T) {
	got, err := readExpressions(strings.NewReader("  a = 1  \n#c\n\n a + 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a = 1" || got[1] != "a + 1" {
		t.Errorf("readExpressions = %q", got)
	}
}

package expr

import (
	"context"
	"errors"
	"testing"

	"github.com/agbru/bigcalc/internal/bigint"
)

func evalString(t *testing.T, ev *Evaluator, src string) string {
	t.Helper()
	v, err := ev.Eval(context.Background(), src)
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return v.String()
}

func TestEvalExpressions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"7 / -2", "-3"},
		{"7 % -2", "1"},
		{"-7 / 2", "-3"},
		{"-7 % 2", "-1"},
		{"123456789012345678901234567890 * 2", "246913578024691357802469135780"},
		{"2 - 3 - 4", "-5"},
		{"100 / 10 / 5", "2"},
		{"-5 < 3", "1"},
		{"-5 < -2", "1"},
		{"100 > 99", "1"},
		{"3 == 4", "0"},
		{"3 != 4", "1"},
		{"3 <= 3", "1"},
		{"3 >= 4", "0"},
		{"-1 & -1", "-1"},
		{"-1 ^ 0", "-1"},
		{"~5", "-6"},
		{"~~-5", "-5"},
		{"-8 | 3", "-5"},
		{"1 << 100", "1267650600228229401496703205376"},
		{"-5 >> 1", "-3"},
		{"5 >> -1", "10"},
		{"1 << 2 + 1", "8"},
		{"1 | 2 ^ 3 & 4", "3"},
		{"1 + 1 == 2", "1"},
		{"- -3", "3"},
		{"+-3", "-3"},
		{"abs(-12)", "12"},
		{"sign(-12) + sign(0) * 10 + sign(9) * 100", "99"},
		{"bitlen(255)", "8"},
		{"pow(2, 64)", "18446744073709551616"},
		{"pow(-3, 3)", "-27"},
		{"pow(-1, 1001)", "-1"},
		{"pow(-1, 1000)", "1"},
		{"pow(0, 0)", "1"},
		{"pow(7, 0)", "1"},
		{"gcd(-48, 18)", "6"},
		{"gcd(0, 0)", "0"},
		{"min(3, -1, 2)", "-1"},
		{"max(3, -1, 2)", "3"},
		{"max(5)", "5"},
		{"1; 2; 3", "3"},
		{"1;;", "1"},
		{"0000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			ev := NewEvaluator(nil, Options{})
			if got := evalString(t, ev, tt.src); got != tt.want {
				t.Errorf("Eval(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalVariables(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator(nil, Options{})
	steps := []struct {
		src  string
		want string
	}{
		{"x = 10", "10"},
		{"y = x * x", "100"},
		{"x += 5", "15"},
		{"x -= 20", "-5"},
		{"x *= -3", "15"},
		{"x /= 4", "3"},
		{"x %= 2", "1"},
		{"x <<= 70", "1180591620717411303424"},
		{"x >>= 69", "2"},
		{"x |= 5", "7"},
		{"x &= 6", "6"},
		{"x ^= 3", "5"},
		{"x++", "5"},
		{"x", "6"},
		{"++x", "7"},
		{"x--", "7"},
		{"--x", "5"},
		{"a = b = 4", "4"},
		{"a + b", "8"},
		{"z = 0; z--; z", "-1"},
		{"z = -1; ++z", "0"},
	}
	for _, s := range steps {
		if got := evalString(t, ev, s.src); got != s.want {
			t.Fatalf("Eval(%q) = %s, want %s", s.src, got, s.want)
		}
	}
	if got := ev.Env().Names(); len(got) != 5 || got[0] != "a" || got[4] != "z" {
		t.Errorf("Names() = %v", got)
	}
}

func TestEvalErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src  string
		want error
	}{
		{"7 / 0", bigint.ErrDivisionByZero},
		{"7 % 0", bigint.ErrDivisionByZero},
		{"nope + 1", ErrUndefined},
		{"nope++", ErrUndefined},
		{"nope += 1", ErrUndefined},
		{"frob(1)", ErrUnknownFunc},
		{"abs(1, 2)", ErrArity},
		{"abs()", ErrArity},
		{"min()", ErrArity},
		{"pow(2, -1)", ErrDomain},
		{"1 << 100000000000000000000", ErrShiftRange},
		{"1 << 100000000000", ErrTooLarge},
		{"pow(2, 100000000000)", ErrTooLarge},
		{"pow(3, 18446744073709551616)", ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			ev := NewEvaluator(nil, Options{})
			_, err := ev.Eval(context.Background(), tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("Eval(%q) error = %v, want %v", tt.src, err, tt.want)
			}
			var re *RuntimeError
			if !errors.As(err, &re) {
				t.Errorf("Eval(%q) error %T is not a *RuntimeError", tt.src, err)
			}
		})
	}
}

func TestEvalSyntaxErrors(t *testing.T) {
	t.Parallel()
	for _, src := range []string{
		"", "   ", ";", "1 +", "(1", "1)", "1 2", "3 = 4", "(a) + 1 = 2",
		"++3", "5++", "f(1,", "f(,)", "a b", "x = ", "12a",
	} {
		_, err := NewEvaluator(nil, Options{}).Eval(context.Background(), src)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Eval(%q) error = %v, want *SyntaxError", src, err)
		}
	}
}

func TestFailedStatementLeavesVariables(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator(nil, Options{})
	evalString(t, ev, "x = 1; y = 2")

	if _, err := ev.Eval(context.Background(), "x = 100 + (y = 50) / 0"); err == nil {
		t.Fatal("expected division by zero")
	}
	if got := evalString(t, ev, "x * 10 + y"); got != "12" {
		t.Errorf("after failed statement x*10+y = %s, want 12", got)
	}

	// Earlier statements in the same program still commit.
	if _, err := ev.Eval(context.Background(), "x = 5; x = x / 0"); err == nil {
		t.Fatal("expected division by zero")
	}
	if got := evalString(t, ev, "x"); got != "5" {
		t.Errorf("x = %s, want 5", got)
	}
}

func TestEvalResultIsIndependent(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator(nil, Options{})
	v, err := ev.Eval(context.Background(), "x = 41")
	if err != nil {
		t.Fatal(err)
	}
	v.Inc()
	if got := evalString(t, ev, "x"); got != "41" {
		t.Errorf("mutating the result changed x to %s", got)
	}
}

func TestEvalCanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEvaluator(nil, Options{}).Eval(ctx, "1 + 1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestMaxBitsOption(t *testing.T) {
	t.Parallel()
	small := NewEvaluator(nil, Options{MaxBits: 64})
	if _, err := small.Eval(context.Background(), "1 << 65"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("1 << 65 with 64-bit limit: %v", err)
	}
	if _, err := small.Eval(context.Background(), "pow(2, 40) * pow(2, 40)"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("2^80 with 64-bit limit: %v", err)
	}
	if got := evalString(t, small, "(1 << 63) >> 63"); got != "1" {
		t.Errorf("within limit = %s", got)
	}
	if got := evalString(t, small, "1 >> 100000"); got != "0" {
		t.Errorf("large right shift = %s", got)
	}

	unlimited := NewEvaluator(nil, Options{MaxBits: -1})
	if got := evalString(t, unlimited, "bitlen(1 << 100000)"); got != "100001" {
		t.Errorf("unlimited shift bitlen = %s", got)
	}
}

func TestBuiltinsListing(t *testing.T) {
	t.Parallel()
	list := Builtins()
	if len(list) != 7 || list[0] != "abs(x)" || list[len(list)-1] != "sign(x)" {
		t.Errorf("Builtins() = %v", list)
	}
}

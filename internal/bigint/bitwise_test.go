package bigint

import (
	"math"
	"math/big"
	"testing"
)

var bitwiseOperands = []string{
	"0", "1", "-1", "2", "-2", "255", "-256",
	"2147483648", "-2147483648", "-2147483649",
	"4294967295", "-4294967295", "4294967296", "-4294967296",
	"18446744073709551615", "-18446744073709551616",
	"123456789012345678901234567890", "-123456789012345678901234567890",
}

// TestBitwiseMatchesTwosComplement compares And, Or, Xor and Not against
// math/big, which also implements infinite two's-complement semantics.
func TestBitwiseMatchesTwosComplement(t *testing.T) {
	t.Parallel()
	for _, as := range bitwiseOperands {
		for _, bs := range bitwiseOperands {
			a, b := MustParse(as), MustParse(bs)
			ba, bb := toBig(t, a), toBig(t, b)

			checks := []struct {
				op   string
				got  *Int
				want *big.Int
			}{
				{"&", new(Int).And(a, b), new(big.Int).And(ba, bb)},
				{"|", new(Int).Or(a, b), new(big.Int).Or(ba, bb)},
				{"^", new(Int).Xor(a, b), new(big.Int).Xor(ba, bb)},
			}
			for _, c := range checks {
				checkNormalized(t, c.got)
				if c.got.String() != c.want.String() {
					t.Errorf("%s %s %s = %s, want %s", as, c.op, bs, c.got, c.want)
				}
			}
		}
		a := MustParse(as)
		if got, want := new(Int).Not(a), new(big.Int).Not(toBig(t, a)); got.String() != want.String() {
			t.Errorf("^%s = %s, want %s", as, got, want)
		}
	}
}

func TestBitwiseNegativeExamples(t *testing.T) {
	t.Parallel()
	tests := []struct {
		op         string
		a, b, want string
	}{
		{"&", "-1", "12345", "12345"},
		{"&", "-2147483648", "-2147483649", "-4294967296"},
		{"|", "-8", "3", "-5"},
		{"^", "-1", "0", "-1"},
		{"^", "-1", "-1", "0"},
		{"&", "4294967296", "-1", "4294967296"},
	}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		var got *Int
		switch tt.op {
		case "&":
			got = new(Int).And(a, b)
		case "|":
			got = new(Int).Or(a, b)
		case "^":
			got = new(Int).Xor(a, b)
		}
		if got.String() != tt.want {
			t.Errorf("%s %s %s = %s, want %s", tt.a, tt.op, tt.b, got, tt.want)
		}
	}
}

func TestShifts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in  string
		k   int
		lsh string
		rsh string
	}{
		{"1", 0, "1", "1"},
		{"1", 1, "2", "0"},
		{"1", 32, "4294967296", "0"},
		{"3", 31, "6442450944", "0"},
		{"-1", 1, "-2", "-1"},
		{"-1", 200, "-1606938044258990275541962092341162602522202993782792835301376", "-1"},
		{"-5", 1, "-10", "-3"},
		{"-4", 1, "-8", "-2"},
		{"5", -1, "2", "10"},
		{"-5", -1, "-3", "-10"},
		{"0", 100, "0", "0"},
		{"-4294967296", 32, "-18446744073709551616", "-1"},
		{"-4294967297", 32, "-18446744078004518912", "-2"},
		{"-18446744073709551616", 33, "-158456325028528675187087900672", "-2147483648"},
	}
	for _, tt := range tests {
		x := MustParse(tt.in)
		l := new(Int).Lsh(x, tt.k)
		r := new(Int).Rsh(x, tt.k)
		checkNormalized(t, l)
		checkNormalized(t, r)
		if l.String() != tt.lsh {
			t.Errorf("%s << %d = %s, want %s", tt.in, tt.k, l, tt.lsh)
		}
		if r.String() != tt.rsh {
			t.Errorf("%s >> %d = %s, want %s", tt.in, tt.k, r, tt.rsh)
		}
	}
}

func TestRshPastLength(t *testing.T) {
	t.Parallel()
	x := MustParse("123456789012345678901234567890")
	if got := new(Int).Rsh(x, 10000); !got.IsZero() {
		t.Errorf("positive >> 10000 = %s", got)
	}
	if got := new(Int).Rsh(new(Int).Neg(x), 10000); got.String() != "-1" {
		t.Errorf("negative >> 10000 = %s", got)
	}
}

func TestShiftMinInt(t *testing.T) {
	t.Parallel()
	// Right shift by -MinInt must not wrap; shifting zero is the only way to
	// afford that many bits.
	if got := new(Int).Rsh(new(Int), math.MinInt); !got.IsZero() {
		t.Errorf("0 >> MinInt = %s", got)
	}
	if got := new(Int).Lsh(NewInt(-3), math.MinInt); got.String() != "-1" {
		t.Errorf("-3 << MinInt = %s", got)
	}
	if negShift(math.MinInt) != uint(1)<<(bitsPerInt-1) {
		t.Errorf("negShift(MinInt) = %d", negShift(math.MinInt))
	}
}

const bitsPerInt = 32 << (^uint(0) >> 63)

func TestBit(t *testing.T) {
	t.Parallel()
	for _, s := range bitwiseOperands {
		x := MustParse(s)
		bx := toBig(t, x)
		for i := 0; i < 140; i++ {
			if got, want := x.Bit(i), bx.Bit(i); got != want {
				t.Fatalf("Bit(%s, %d) = %d, want %d", s, i, got, want)
			}
		}
	}
}

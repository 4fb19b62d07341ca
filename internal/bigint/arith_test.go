package bigint

import (
	"errors"
	"math/big"
	"testing"
)

func TestAddSub(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b     string
		sum, dif string
	}{
		{"0", "0", "0", "0"},
		{"5", "-5", "0", "10"},
		{"-5", "5", "0", "-10"},
		{"4294967295", "1", "4294967296", "4294967294"},
		{"-4294967296", "1", "-4294967295", "-4294967297"},
		{"18446744073709551615", "18446744073709551615", "36893488147419103230", "0"},
		{"-18446744073709551616", "-1", "-18446744073709551617", "-18446744073709551615"},
		{"1", "-18446744073709551616", "-18446744073709551615", "18446744073709551617"},
		{"123456789012345678901234567890", "-987654321", "123456789012345678900246913569", "123456789012345678902222222211"},
	}

	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		sum := new(Int).Add(a, b)
		checkNormalized(t, sum)
		if sum.String() != tt.sum {
			t.Errorf("%s + %s = %s, want %s", tt.a, tt.b, sum, tt.sum)
		}
		dif := new(Int).Sub(a, b)
		checkNormalized(t, dif)
		if dif.String() != tt.dif {
			t.Errorf("%s - %s = %s, want %s", tt.a, tt.b, dif, tt.dif)
		}
	}
}

func TestAliasing(t *testing.T) {
	t.Parallel()
	x := MustParse("-123456789123456789")
	x.Add(x, x)
	if x.String() != "-246913578246913578" {
		t.Errorf("x += x gave %s", x)
	}
	x.Mul(x, x)
	if x.String() != "60966315122694714062490483000762084" {
		t.Errorf("x *= x gave %s", x)
	}
	x.Sub(x, x)
	if !x.IsZero() || x.Sign() != 0 {
		t.Errorf("x -= x gave %s", x)
	}

	y := MustParse("1000000000000000000000")
	if _, err := y.Quo(y, NewInt(7)); err != nil {
		t.Fatal(err)
	}
	if y.String() != "142857142857142857142" {
		t.Errorf("y /= 7 gave %s", y)
	}
}

func TestNegAbs(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, neg, abs string }{
		{"0", "0", "0"},
		{"7", "-7", "7"},
		{"-7", "7", "7"},
		{"-18446744073709551616", "18446744073709551616", "18446744073709551616"},
	}
	for _, tt := range tests {
		x := MustParse(tt.in)
		if got := new(Int).Neg(x); got.String() != tt.neg {
			t.Errorf("-(%s) = %s, want %s", tt.in, got, tt.neg)
		}
		if got := new(Int).Abs(x); got.String() != tt.abs {
			t.Errorf("|%s| = %s, want %s", tt.in, got, tt.abs)
		}
		if x.String() != MustParse(tt.in).String() {
			t.Errorf("operand %s was modified", tt.in)
		}
	}
}

func TestIncDec(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, inc, dec string }{
		{"0", "1", "-1"},
		{"-1", "0", "-2"},
		{"1", "2", "0"},
		{"-5", "-4", "-6"},
		{"4294967295", "4294967296", "4294967294"},
		{"-4294967296", "-4294967295", "-4294967297"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.in).Inc(); got.String() != tt.inc {
			t.Errorf("++(%s) = %s, want %s", tt.in, got, tt.inc)
		}
		if got := MustParse(tt.in).Dec(); got.String() != tt.dec {
			t.Errorf("--(%s) = %s, want %s", tt.in, got, tt.dec)
		}
	}
}

func TestPostIncDec(t *testing.T) {
	t.Parallel()
	x := NewInt(-1)
	old := x.PostInc()
	if old.String() != "-1" || x.String() != "0" {
		t.Errorf("PostInc: old=%s new=%s", old, x)
	}
	old = x.PostDec()
	if old.String() != "0" || x.String() != "-1" {
		t.Errorf("PostDec: old=%s new=%s", old, x)
	}
	old.Inc()
	if x.String() != "-1" {
		t.Error("returned old value aliases the receiver")
	}
}

func TestMul(t *testing.T) {
	t.Parallel()
	tests := []struct{ a, b, want string }{
		{"0", "-5", "0"},
		{"-3", "4", "-12"},
		{"-3", "-4", "12"},
		{"4294967295", "4294967295", "18446744065119617025"},
		{"123456789012345678901234567890", "2", "246913578024691357802469135780"},
		{"18446744073709551616", "18446744073709551616", "340282366920938463463374607431768211456"},
		{"-99999999999999999999", "99999999999999999999", "-9999999999999999999800000000000000000001"},
	}
	for _, tt := range tests {
		got := new(Int).Mul(MustParse(tt.a), MustParse(tt.b))
		checkNormalized(t, got)
		if got.String() != tt.want {
			t.Errorf("%s * %s = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestQuoRemTruncation(t *testing.T) {
	t.Parallel()
	tests := []struct{ a, b, q, r string }{
		{"7", "2", "3", "1"},
		{"7", "-2", "-3", "1"},
		{"-7", "2", "-3", "-1"},
		{"-7", "-2", "3", "-1"},
		{"6", "3", "2", "0"},
		{"-6", "3", "-2", "0"},
		{"3", "7", "0", "3"},
		{"-3", "7", "0", "-3"},
		{"0", "-7", "0", "0"},
		{"18446744073709551616", "4294967296", "4294967296", "0"},
		{"340282366920938463463374607431768211455", "18446744073709551617", "18446744073709551615", "0"},
		{"100000000000000000000000000000", "99999999999", "1000000000010000000", "10000000"},
		{"-123456789012345678901234567890", "9876543210987654321", "-12499999886", "-925925941327160484"},
	}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		q, r, err := new(Int).QuoRem(a, b, new(Int))
		if err != nil {
			t.Fatalf("QuoRem(%s, %s): %v", tt.a, tt.b, err)
		}
		checkNormalized(t, q)
		checkNormalized(t, r)
		if q.String() != tt.q || r.String() != tt.r {
			t.Errorf("%s / %s = (%s, %s), want (%s, %s)", tt.a, tt.b, q, r, tt.q, tt.r)
		}

		quo, _ := new(Int).Quo(a, b)
		rem, _ := new(Int).Rem(a, b)
		if !quo.Equal(q) || !rem.Equal(r) {
			t.Errorf("Quo/Rem disagree with QuoRem for %s, %s", tt.a, tt.b)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	t.Parallel()
	x := NewInt(17)
	zero := new(Int)

	z := NewInt(99)
	if _, err := z.Quo(x, zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Quo error = %v", err)
	}
	if _, err := z.Rem(x, zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Rem error = %v", err)
	}
	r := NewInt(-4)
	if _, _, err := z.QuoRem(x, zero, r); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("QuoRem error = %v", err)
	}
	if z.String() != "99" || r.String() != "-4" {
		t.Errorf("receivers changed on error: z=%s r=%s", z, r)
	}
	if _, err := new(Int).Quo(zero, zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("0/0 error = %v", err)
	}
}

// TestDivLargeCorrection exercises divisors whose leading limb forces the
// trial quotient to be corrected.
func TestDivLargeCorrection(t *testing.T) {
	t.Parallel()
	divisors := []*Int{
		intFromLimbs([]uint32{0xFFFFFFFF, 0x80000000}, false),
		intFromLimbs([]uint32{0, 1}, false),
		intFromLimbs([]uint32{1, 1}, false),
		intFromLimbs([]uint32{0xFFFFFFFF, 0xFFFFFFFF, 1}, false),
		intFromLimbs([]uint32{0, 0, 0x7FFFFFFF}, false),
		intFromLimbs([]uint32{0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF}, false),
	}
	dividends := []*Int{
		intFromLimbs([]uint32{0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF}, false),
		intFromLimbs([]uint32{0, 0, 0, 0x80000000}, false),
		intFromLimbs([]uint32{1, 0, 0, 0, 1}, false),
		intFromLimbs([]uint32{0xFFFFFFFE, 0xFFFFFFFF, 0x7FFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF}, false),
	}
	for _, y := range divisors {
		for _, x := range dividends {
			q, r, err := new(Int).QuoRem(x, y, new(Int))
			if err != nil {
				t.Fatal(err)
			}
			wantQ, wantR := new(big.Int).QuoRem(toBig(t, x), toBig(t, y), new(big.Int))
			if q.String() != wantQ.String() || r.String() != wantR.String() {
				t.Errorf("%s / %s = (%s, %s), want (%s, %s)", x, y, q, r, wantQ, wantR)
			}
		}
	}
}

package bigint

import (
	"fmt"
	"strings"
)

const (
	parseBlock  = 8         // decimal digits folded per accumulation step
	parseBase   = 100000000 // 10^parseBlock
	formatBlock = 9         // decimal digits emitted per division step
	formatBase  = 1000000000
)

// Parse returns the Int represented by the decimal string s, which must match
// -?[0-9]+. Leading zeros are accepted and "-0" parses as 0.
func Parse(s string) (*Int, error) {
	return new(Int).SetString(s)
}

// MustParse is like Parse but panics on malformed input. It is intended for
// constants in tests and tables.
func MustParse(s string) *Int {
	z, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return z
}

// SetString sets z to the value of the decimal string s and returns z. On
// error z is left unchanged and the error wraps ErrInvalidFormat.
func (z *Int) SetString(s string) (*Int, error) {
	if s == "" {
		return z, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}
	i := 0
	neg := s[0] == '-'
	if neg {
		i = 1
	}
	if i == len(s) {
		return z, fmt.Errorf("%w: %q has no digits", ErrInvalidFormat, s)
	}

	var acc nat
	for ; i+parseBlock < len(s); i += parseBlock {
		block, err := readBlock(s, i, i+parseBlock)
		if err != nil {
			return z, err
		}
		acc = mulAddW(acc, parseBase, block)
	}
	block, err := readBlock(s, i, len(s))
	if err != nil {
		return z, err
	}
	acc = mulAddW(acc, pow10(len(s)-i), block)

	z.setParts(acc, neg)
	return z, nil
}

// readBlock returns the numeric value of s[beg:end], at most parseBlock
// digits long.
func readBlock(s string, beg, end int) (uint32, error) {
	var v uint32
	for i := beg; i < end; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidFormat, c, i)
		}
		v = v*10 + uint32(c-'0')
	}
	return v, nil
}

func pow10(n int) uint32 {
	p := uint32(1)
	for ; n > 0; n-- {
		p *= 10
	}
	return p
}

// String returns the canonical decimal representation of x: no leading
// zeros, a '-' prefix for negative values, and "0" for zero.
func (x *Int) String() string {
	return string(x.appendDecimal(nil))
}

// appendDecimal appends the decimal form of x to buf. Digits are produced
// least-significant first in 9-digit blocks by repeated division by 10^9 and
// reversed at the end.
func (x *Int) appendDecimal(buf []byte) []byte {
	rev := make([]byte, 0, len(x.abs)*10+2)
	rest := x.abs
	for {
		var r uint32
		rest, r = divW(rest, formatBase)
		for k := 0; k < formatBlock; k++ {
			rev = append(rev, byte('0'+r%10))
			r /= 10
		}
		if len(rest) == 0 {
			break
		}
	}
	for len(rev) > 1 && rev[len(rev)-1] == '0' {
		rev = rev[:len(rev)-1]
	}
	if x.neg {
		rev = append(rev, '-')
	}
	for i := len(rev) - 1; i >= 0; i-- {
		buf = append(buf, rev[i])
	}
	return buf
}

// Append appends the decimal representation of x to buf and returns the
// extended buffer.
func (x *Int) Append(buf []byte) []byte {
	return x.appendDecimal(buf)
}

// MarshalText implements encoding.TextMarshaler.
func (x *Int) MarshalText() ([]byte, error) {
	if x == nil {
		return []byte("<nil>"), nil
	}
	return x.appendDecimal(nil), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Int) UnmarshalText(text []byte) error {
	_, err := z.SetString(string(text))
	return err
}

// Format implements fmt.Formatter. It accepts the verbs 'd', 's' and 'v'
// along with the '+', '-', '0' and ' ' flags and a field width.
func (x *Int) Format(s fmt.State, ch rune) {
	if x == nil {
		fmt.Fprint(s, "<nil>")
		return
	}
	switch ch {
	case 'd', 's', 'v':
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", ch, x.String())
		return
	}

	digits := x.abs.decimalDigits()
	sign := ""
	switch {
	case x.neg:
		sign = "-"
	case s.Flag('+'):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}

	width, ok := s.Width()
	pad := 0
	if ok {
		pad = max(width-len(sign)-len(digits), 0)
	}
	switch {
	case s.Flag('-'):
		fmt.Fprint(s, sign, digits, strings.Repeat(" ", pad))
	case s.Flag('0'):
		fmt.Fprint(s, sign, strings.Repeat("0", pad), digits)
	default:
		fmt.Fprint(s, strings.Repeat(" ", pad), sign, digits)
	}
}

// decimalDigits returns the unsigned decimal digits of x.
func (x nat) decimalDigits() string {
	return (&Int{abs: x}).String()
}

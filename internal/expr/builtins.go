package expr

import (
	"fmt"
	"sort"

	"github.com/agbru/bigcalc/internal/bigint"
)

type builtin struct {
	minArgs, maxArgs int // maxArgs < 0 means variadic
	usage            string
	fn               func(f *frame, args []*bigint.Int, pos int) (*bigint.Int, error)
}

var builtins = map[string]builtin{
	"abs": {1, 1, "abs(x)", func(_ *frame, a []*bigint.Int, _ int) (*bigint.Int, error) {
		return new(bigint.Int).Abs(a[0]), nil
	}},
	"sign": {1, 1, "sign(x)", func(_ *frame, a []*bigint.Int, _ int) (*bigint.Int, error) {
		return bigint.NewInt(int64(a[0].Sign())), nil
	}},
	"bitlen": {1, 1, "bitlen(x)", func(_ *frame, a []*bigint.Int, _ int) (*bigint.Int, error) {
		return bigint.NewInt(int64(a[0].BitLen())), nil
	}},
	"pow": {2, 2, "pow(x, n)", builtinPow},
	"gcd": {2, 2, "gcd(a, b)", builtinGCD},
	"min": {1, -1, "min(a, ...)", func(_ *frame, a []*bigint.Int, _ int) (*bigint.Int, error) {
		m := a[0]
		for _, v := range a[1:] {
			if v.Less(m) {
				m = v
			}
		}
		return m, nil
	}},
	"max": {1, -1, "max(a, ...)", func(_ *frame, a []*bigint.Int, _ int) (*bigint.Int, error) {
		m := a[0]
		for _, v := range a[1:] {
			if v.Greater(m) {
				m = v
			}
		}
		return m, nil
	}},
}

// Builtins returns the usage line of every builtin function, sorted by name.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	usage := make([]string, len(names))
	for i, name := range names {
		usage[i] = builtins[name].usage
	}
	return usage
}

func (f *frame) call(c *Call) (*bigint.Int, error) {
	b, ok := builtins[c.Name]
	if !ok {
		return nil, &RuntimeError{Pos: c.Offset, Err: fmt.Errorf("%w: %s", ErrUnknownFunc, c.Name)}
	}
	if len(c.Args) < b.minArgs || (b.maxArgs >= 0 && len(c.Args) > b.maxArgs) {
		return nil, &RuntimeError{Pos: c.Offset, Err: fmt.Errorf("%w: %s called with %d, usage %s", ErrArity, c.Name, len(c.Args), b.usage)}
	}
	args := make([]*bigint.Int, len(c.Args))
	for i, a := range c.Args {
		v, err := f.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return b.fn(f, args, c.Offset)
}

// builtinPow computes x**n by left-to-right binary exponentiation.
func builtinPow(f *frame, a []*bigint.Int, pos int) (*bigint.Int, error) {
	x, n := a[0], a[1]
	if n.Sign() < 0 {
		return nil, &RuntimeError{Pos: pos, Err: fmt.Errorf("%w: negative exponent %s", ErrDomain, n)}
	}
	// 0, 1 and -1 stay small for any exponent.
	if x.CmpAbs(bigint.NewInt(1)) <= 0 {
		if x.Sign() < 0 && n.Bit(0) == 0 {
			return bigint.NewInt(1), nil
		}
		if n.IsZero() {
			return bigint.NewInt(1), nil
		}
		return x, nil
	}

	e, ok := n.Uint64()
	if !ok || (f.maxBits >= 0 && uint64(x.BitLen()-1) > uint64(f.maxBits)/max(e, 1)) {
		return nil, &RuntimeError{Pos: pos, Err: fmt.Errorf("%w: pow exponent %s", ErrTooLarge, n)}
	}

	z := bigint.NewInt(1)
	for i := 63; i >= 0; i-- {
		if err := f.ctx.Err(); err != nil {
			return nil, err
		}
		z.Mul(z, z)
		if e>>uint(i)&1 == 1 {
			z.Mul(z, x)
		}
	}
	return z, nil
}

// builtinGCD returns the non-negative greatest common divisor by Euclid's
// algorithm. gcd(0, 0) is 0.
func builtinGCD(_ *frame, a []*bigint.Int, _ int) (*bigint.Int, error) {
	x := new(bigint.Int).Abs(a[0])
	y := new(bigint.Int).Abs(a[1])
	for !y.IsZero() {
		r, err := new(bigint.Int).Rem(x, y)
		if err != nil {
			return nil, err
		}
		x, y = y, r
	}
	return x, nil
}

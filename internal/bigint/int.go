package bigint

import (
	"math"
	"math/bits"
)

// Int is an arbitrary-precision signed integer. The zero value is 0 and is
// ready to use.
type Int struct {
	abs nat  // magnitude, normalized
	neg bool // sign; always false when abs is empty
}

// NewInt allocates and returns a new Int set to x.
func NewInt(x int64) *Int {
	return new(Int).SetInt64(x)
}

// NewUint allocates and returns a new Int set to x.
func NewUint(x uint64) *Int {
	return new(Int).SetUint64(x)
}

// SetInt64 sets z to x and returns z.
func (z *Int) SetInt64(x int64) *Int {
	u := uint64(x)
	if x < 0 {
		u = -u
	}
	z.setParts(nat{uint32(u & _M), uint32(u >> _W)}, x < 0)
	return z
}

// SetUint64 sets z to x and returns z.
func (z *Int) SetUint64(x uint64) *Int {
	z.setParts(nat{uint32(x & _M), uint32(x >> _W)}, false)
	return z
}

// setParts installs a freshly computed magnitude and sign, restoring the
// normalization invariant. abs must not be shared with any other Int.
func (z *Int) setParts(abs nat, neg bool) {
	z.abs = abs.norm()
	z.neg = neg && len(z.abs) > 0
}

// Set sets z to a deep copy of x and returns z. It is the unary plus operator.
func (z *Int) Set(x *Int) *Int {
	if z != x {
		z.setParts(x.abs.clone(), x.neg)
	}
	return z
}

// Clone returns a deep copy of x.
func (x *Int) Clone() *Int {
	return new(Int).Set(x)
}

// Swap exchanges the values of z and x.
func (z *Int) Swap(x *Int) {
	z.abs, x.abs = x.abs, z.abs
	z.neg, x.neg = x.neg, z.neg
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x *Int) Sign() int {
	switch {
	case len(x.abs) == 0:
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool {
	return len(x.abs) == 0
}

// Len returns the number of 32-bit limbs in the magnitude of x.
func (x *Int) Len() int {
	return len(x.abs)
}

// BitLen returns the length of the absolute value of x in bits. The bit
// length of 0 is 0.
func (x *Int) BitLen() int {
	if len(x.abs) == 0 {
		return 0
	}
	top := len(x.abs) - 1
	return top*_W + bits.Len32(x.abs[top])
}

// Uint64 returns the value of x and whether it fits in a uint64.
func (x *Int) Uint64() (uint64, bool) {
	if x.neg || len(x.abs) > 2 {
		return 0, false
	}
	return uint64(x.abs.at(0, 0)) | uint64(x.abs.at(1, 0))<<_W, true
}

// Int64 returns the value of x and whether it fits in an int64.
func (x *Int) Int64() (int64, bool) {
	if len(x.abs) > 2 {
		return 0, false
	}
	u := uint64(x.abs.at(0, 0)) | uint64(x.abs.at(1, 0))<<_W
	if !x.neg {
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	if u > 1<<63 {
		return 0, false
	}
	return int64(-u), true
}

// Cmp compares x and y and returns -1 if x < y, 0 if x == y and +1 if x > y.
// A negative value orders before any non-negative one; for equal signs the
// magnitudes decide, with the sense flipped when both are negative.
func (x *Int) Cmp(y *Int) int {
	if x.neg != y.neg {
		if x.neg {
			return -1
		}
		return 1
	}
	r := x.abs.cmp(y.abs)
	if x.neg {
		r = -r
	}
	return r
}

// CmpAbs compares |x| and |y|.
func (x *Int) CmpAbs(y *Int) int {
	return x.abs.cmp(y.abs)
}

// Equal reports whether x == y.
func (x *Int) Equal(y *Int) bool {
	if x.neg != y.neg || len(x.abs) != len(y.abs) {
		return false
	}
	for i, w := range x.abs {
		if y.abs[i] != w {
			return false
		}
	}
	return true
}

// NotEqual reports whether x != y.
func (x *Int) NotEqual(y *Int) bool { return !x.Equal(y) }

// Less reports whether x < y.
func (x *Int) Less(y *Int) bool { return x.Cmp(y) < 0 }

// LessEq reports whether x <= y.
func (x *Int) LessEq(y *Int) bool { return x.Cmp(y) <= 0 }

// Greater reports whether x > y.
func (x *Int) Greater(y *Int) bool { return x.Cmp(y) > 0 }

// GreaterEq reports whether x >= y.
func (x *Int) GreaterEq(y *Int) bool { return x.Cmp(y) >= 0 }

package bigint

// This file holds the limb-vector primitives shared by every operator. A nat
// is an unsigned magnitude, least-significant limb first. Functions that
// return a nat always return a freshly allocated, normalized vector; none of
// them write to their inputs.

const (
	_W = 32         // bits per limb
	_B = 1 << _W    // limb base
	_M = _B - 1     // limb mask
	_L = ^uint32(0) // all-ones limb
)

type nat []uint32

// norm trims most-significant zero limbs. The empty slice is the only
// representation of zero.
func (z nat) norm() nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	if i == 0 {
		return nil
	}
	return z[:i]
}

// at returns limb i, or def when i is past the end.
func (x nat) at(i int, def uint32) uint32 {
	if i < len(x) {
		return x[i]
	}
	return def
}

func (x nat) clone() nat {
	if len(x) == 0 {
		return nil
	}
	z := make(nat, len(x))
	copy(z, x)
	return z
}

// cmp compares two normalized magnitudes.
func (x nat) cmp(y nat) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// sumWithCoef returns first*x + second*y for first, second in {+1, -1}.
// The caller guarantees the result is non-negative. The running carry is kept
// biased by +_B so the per-limb value stays non-negative; the bias is removed
// again after each shift.
func sumWithCoef(x nat, first int64, y nat, second int64) nat {
	n := max(len(x), len(y)) + 1
	z := make(nat, n)
	var carry int64
	for i := 0; i < n; i++ {
		carry += int64(x.at(i, 0))*first + int64(y.at(i, 0))*second + _B
		z[i] = uint32(carry & _M)
		carry = (carry >> _W) - 1
	}
	return z.norm()
}

// addW returns x + w.
func addW(x nat, w uint32) nat {
	z := make(nat, len(x)+1)
	c := uint64(w)
	for i := range z {
		c += uint64(x.at(i, 0))
		z[i] = uint32(c)
		c >>= _W
	}
	return z.norm()
}

// mulW returns x * w.
func mulW(x nat, w uint32) nat {
	if len(x) == 0 || w == 0 {
		return nil
	}
	z := make(nat, len(x)+1)
	var c uint64
	for i, xi := range x {
		c += uint64(xi) * uint64(w)
		z[i] = uint32(c)
		c >>= _W
	}
	z[len(x)] = uint32(c)
	return z.norm()
}

// mulAddW returns x*m + a. It is the accumulation step of decimal parsing.
func mulAddW(x nat, m, a uint32) nat {
	z := make(nat, len(x)+1)
	c := uint64(a)
	for i, xi := range x {
		c += uint64(xi) * uint64(m)
		z[i] = uint32(c)
		c >>= _W
	}
	z[len(x)] = uint32(c)
	return z.norm()
}

// divW returns the quotient x / w and the remainder x % w. w must not be zero.
func divW(x nat, w uint32) (nat, uint32) {
	if len(x) == 0 {
		return nil, 0
	}
	q := make(nat, len(x))
	var r uint64
	for i := len(x) - 1; i >= 0; i-- {
		r = r<<_W | uint64(x[i])
		q[i] = uint32(r / uint64(w))
		r %= uint64(w)
	}
	return q.norm(), uint32(r)
}

// shlLimbs returns x with n zero limbs inserted at the low end.
func shlLimbs(x nat, n int) nat {
	if len(x) == 0 {
		return nil
	}
	z := make(nat, n+len(x))
	copy(z[n:], x)
	return z
}

// shrLimbs returns x with its n lowest limbs removed, and whether any of the
// removed limbs was non-zero.
func shrLimbs(x nat, n int) (nat, bool) {
	n = min(n, len(x))
	dropped := false
	for _, w := range x[:n] {
		if w != 0 {
			dropped = true
			break
		}
	}
	return x[n:].clone(), dropped
}

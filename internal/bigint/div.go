package bigint

// divmod returns the quotient and remainder of the magnitudes x / y.
// y must not be zero.
func divmod(x, y nat) (nat, nat) {
	if x.cmp(y) < 0 {
		return nil, x.clone()
	}
	if len(y) == 1 {
		q, r := divW(x, y[0])
		return q, nat{r}.norm()
	}
	return divLarge(x, y)
}

// divLarge implements normalized long division for a divisor of two or more
// limbs. Both operands are scaled by f = _B/(top+1) so the divisor's leading
// limb is at least _B/2; the quotient digit estimated from the top two limbs
// of each window then overshoots by at most two.
func divLarge(x, y nat) (nat, nat) {
	n := len(y)
	f := uint32(_B / (uint64(y[n-1]) + 1))
	v := mulW(y, f)

	u := make(nat, len(x)+1)
	copy(u, mulW(x, f))

	m := len(u) - n
	q := make(nat, m)
	prod := make(nat, n+1)
	for j := m - 1; j >= 0; j-- {
		w := u[j : j+n+1]
		qhat := trial(w, v[n-1])
		mulWInto(prod, v, qhat)
		for windowLess(w, prod) {
			qhat--
			subInto(prod, v)
		}
		subInto(w, prod)
		q[j] = qhat
	}

	r, _ := divW(u[:n].norm(), f)
	return q.norm(), r
}

// trial estimates the next quotient digit from the top two limbs of the
// window w and the divisor's leading limb, clamped to the limb range.
func trial(w nat, top uint32) uint32 {
	k := len(w)
	d := (uint64(w[k-1])<<_W | uint64(w[k-2])) / uint64(top)
	if d > _M {
		d = _M
	}
	return uint32(d)
}

// mulWInto stores x*w into z, which must hold len(x)+1 limbs.
func mulWInto(z, x nat, w uint32) {
	var c uint64
	for i, xi := range x {
		c += uint64(xi) * uint64(w)
		z[i] = uint32(c)
		c >>= _W
	}
	z[len(x)] = uint32(c)
}

// windowLess reports whether a < b for equal-length limb vectors that may
// carry leading zeros.
func windowLess(a, b nat) bool {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// subInto computes z -= x in place. len(z) >= len(x) and z >= x.
func subInto(z, x nat) {
	var borrow int64
	for i := range z {
		d := int64(z[i]) - int64(x.at(i, 0)) - borrow
		borrow = 0
		if d < 0 {
			d += _B
			borrow = 1
		}
		z[i] = uint32(d)
	}
}

// QuoRem sets z to the quotient x/y and r to the remainder x%y and returns
// the pair (z, r). The quotient is truncated toward zero and the remainder
// has the sign of x. z and r must be distinct.
//
// QuoRem returns ErrDivisionByZero, leaving z and r unchanged, if y == 0.
func (z *Int) QuoRem(x, y, r *Int) (*Int, *Int, error) {
	if len(y.abs) == 0 {
		return z, r, ErrDivisionByZero
	}
	q, rem := divmod(x.abs, y.abs)
	qneg, rneg := x.neg != y.neg, x.neg
	z.setParts(q, qneg)
	r.setParts(rem, rneg)
	return z, r, nil
}

// Quo sets z to the quotient x/y, truncated toward zero, and returns z.
// It returns ErrDivisionByZero, leaving z unchanged, if y == 0.
func (z *Int) Quo(x, y *Int) (*Int, error) {
	if len(y.abs) == 0 {
		return z, ErrDivisionByZero
	}
	q, _ := divmod(x.abs, y.abs)
	z.setParts(q, x.neg != y.neg)
	return z, nil
}

// Rem sets z to the remainder x%y and returns z. The result has the sign of
// x. It returns ErrDivisionByZero, leaving z unchanged, if y == 0.
func (z *Int) Rem(x, y *Int) (*Int, error) {
	if len(y.abs) == 0 {
		return z, ErrDivisionByZero
	}
	_, r := divmod(x.abs, y.abs)
	z.setParts(r, x.neg)
	return z, nil
}

package bigint

// Bitwise operators act on the infinite two's-complement expansion of their
// operands. Storage stays sign-magnitude; each operation converts to an
// n-limb two's-complement pattern, combines, and converts back.

// twosComplement returns the n-limb two's-complement pattern of the value
// with magnitude x and sign neg. Limbs beyond n are implicitly 0 for
// non-negative values and all-ones for negative ones.
func twosComplement(x nat, neg bool, n int) nat {
	z := make(nat, n)
	if !neg {
		copy(z, x)
		return z
	}
	c := uint64(1)
	for i := range z {
		c += uint64(^x.at(i, 0))
		z[i] = uint32(c)
		c >>= _W
	}
	return z
}

// fromTwosComplement turns an n-limb pattern with the given sign extension
// back into a magnitude.
func fromTwosComplement(z nat, neg bool) nat {
	if !neg {
		return z.norm()
	}
	return twosComplement(z, true, len(z)).norm()
}

func signLimb(neg bool) uint32 {
	if neg {
		return _L
	}
	return 0
}

// bitOp applies op limb by limb to the two's-complement forms of x and y.
// The pattern is one limb wider than the larger operand so that the result
// magnitude always fits when converted back.
func bitOp(x, y *Int, op func(a, b uint32) uint32) (nat, bool) {
	n := max(len(x.abs), len(y.abs)) + 1
	a := twosComplement(x.abs, x.neg, n)
	b := twosComplement(y.abs, y.neg, n)
	for i := range a {
		a[i] = op(a[i], b[i])
	}
	neg := op(signLimb(x.neg), signLimb(y.neg)) != 0
	return fromTwosComplement(a, neg), neg
}

// And sets z = x & y and returns z.
func (z *Int) And(x, y *Int) *Int {
	z.setParts(bitOp(x, y, func(a, b uint32) uint32 { return a & b }))
	return z
}

// Or sets z = x | y and returns z.
func (z *Int) Or(x, y *Int) *Int {
	z.setParts(bitOp(x, y, func(a, b uint32) uint32 { return a | b }))
	return z
}

// Xor sets z = x ^ y and returns z.
func (z *Int) Xor(x, y *Int) *Int {
	z.setParts(bitOp(x, y, func(a, b uint32) uint32 { return a ^ b }))
	return z
}

// Not sets z = ^x, which is -(x+1), and returns z.
func (z *Int) Not(x *Int) *Int {
	abs, neg := add(x.abs, x.neg, one, false)
	z.setParts(abs, !neg)
	return z
}

// Lsh sets z = x << k and returns z. A negative k shifts right by -k bits.
func (z *Int) Lsh(x *Int, k int) *Int {
	if k < 0 {
		return z.rsh(x, negShift(k))
	}
	return z.lsh(x, uint(k))
}

// Rsh sets z = x >> k and returns z. The result is floor(x / 2^k), so
// negative values round toward negative infinity. A negative k shifts left.
func (z *Int) Rsh(x *Int, k int) *Int {
	if k < 0 {
		return z.lsh(x, negShift(k))
	}
	return z.rsh(x, uint(k))
}

// negShift returns -k as a uint without overflowing on math.MinInt.
func negShift(k int) uint {
	return uint(-(k + 1)) + 1
}

// lsh multiplies by 2^(s%32), then inserts s/32 zero limbs at the low end.
func (z *Int) lsh(x *Int, s uint) *Int {
	abs := shlLimbs(mulW(x.abs, 1<<(s%_W)), int(s/_W))
	z.setParts(abs, x.neg)
	return z
}

// rsh drops whole limbs, capped at the current length, then divides by the
// remaining power of two. For a negative operand any discarded non-zero bit
// bumps the magnitude by one.
func (z *Int) rsh(x *Int, s uint) *Int {
	limbs := min(s/_W, uint(len(x.abs)))
	rest, dropped := shrLimbs(x.abs, int(limbs))
	q, r := divW(rest, 1<<(s%_W))
	if x.neg && (r != 0 || dropped) {
		q = addW(q, 1)
	}
	z.setParts(q, x.neg)
	return z
}

// Bit returns the value of bit i of x in two's-complement form. i must be
// non-negative.
func (x *Int) Bit(i int) uint {
	if i < 0 {
		panic("bigint: negative bit index")
	}
	limb, off := i/_W, uint(i%_W)
	if !x.neg {
		return uint(x.abs.at(limb, 0)>>off) & 1
	}
	// Bits of -m are the complement of the bits of m-1.
	t := sumWithCoef(x.abs, 1, one, -1)
	return uint(^t.at(limb, 0)>>off) & 1
}

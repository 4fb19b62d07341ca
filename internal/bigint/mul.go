package bigint

// mulNat returns the schoolbook product x*y. Each row accumulates
// x[i]*y[j] + z[i+j] + carry, which never exceeds 2^64-1.
func mulNat(x, y nat) nat {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	z := make(nat, len(x)+len(y)+1)
	for i, xi := range x {
		var c uint64
		for j, yj := range y {
			c += uint64(xi)*uint64(yj) + uint64(z[i+j])
			z[i+j] = uint32(c)
			c >>= _W
		}
		z[i+len(y)] = uint32(c)
	}
	return z.norm()
}

// Mul sets z to the product x*y and returns z.
func (z *Int) Mul(x, y *Int) *Int {
	z.setParts(mulNat(x.abs, y.abs), x.neg != y.neg)
	return z
}

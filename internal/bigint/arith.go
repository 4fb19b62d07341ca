package bigint

var one = nat{1}

// add returns the magnitude and sign of (xneg ? -x : x) + (yneg ? -y : y).
// When the signs differ the result takes the sign of the larger magnitude and
// the coefficient pair is flipped so the weighted sum never goes negative.
func add(x nat, xneg bool, y nat, yneg bool) (nat, bool) {
	if xneg == yneg {
		return sumWithCoef(x, 1, y, 1), xneg
	}
	if x.cmp(y) > 0 {
		return sumWithCoef(x, 1, y, -1), xneg
	}
	return sumWithCoef(x, -1, y, 1), yneg
}

// Add sets z to the sum x+y and returns z.
func (z *Int) Add(x, y *Int) *Int {
	z.setParts(add(x.abs, x.neg, y.abs, y.neg))
	return z
}

// Sub sets z to the difference x-y and returns z.
func (z *Int) Sub(x, y *Int) *Int {
	z.setParts(add(x.abs, x.neg, y.abs, !y.neg))
	return z
}

// Neg sets z to -x and returns z.
func (z *Int) Neg(x *Int) *Int {
	z.setParts(x.abs.clone(), !x.neg)
	return z
}

// Abs sets z to |x| and returns z.
func (z *Int) Abs(x *Int) *Int {
	z.setParts(x.abs.clone(), false)
	return z
}

// Inc increments z by one and returns z (prefix ++).
func (z *Int) Inc() *Int {
	z.setParts(add(z.abs, z.neg, one, false))
	return z
}

// Dec decrements z by one and returns z (prefix --).
func (z *Int) Dec() *Int {
	z.setParts(add(z.abs, z.neg, one, true))
	return z
}

// PostInc increments z by one and returns a copy of its previous value
// (postfix ++).
func (z *Int) PostInc() *Int {
	old := z.Clone()
	z.Inc()
	return old
}

// PostDec decrements z by one and returns a copy of its previous value
// (postfix --).
func (z *Int) PostDec() *Int {
	old := z.Clone()
	z.Dec()
	return old
}

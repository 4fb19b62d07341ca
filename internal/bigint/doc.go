// Package bigint implements an arbitrary-precision signed integer.
//
// An [Int] stores its magnitude as a little-endian sequence of 32-bit limbs
// together with a sign flag. Arithmetic uses schoolbook multiplication and
// normalized long division; bitwise operators and shifts behave as if the
// value were stored in infinite-width two's complement.
//
// # Semantics
//
// Division truncates toward zero and the remainder takes the sign of the
// dividend, as with Go's native integers:
//
//	7 / -2 == -3
//	7 % -2 == 1
//
// Right shifts round toward negative infinity, so x >> k == floor(x / 2^k)
// for every x, which matches Go's arithmetic shift on signed integers.
//
// # Method conventions
//
// Methods follow the math/big receiver style: z.Op(x, y) sets z to the result
// and returns z. The receiver may alias any operand. Every method computes its
// result in scratch storage first and only then replaces the receiver's
// contents, so a method that returns an error leaves the receiver unchanged.
//
// An Int is not safe for concurrent mutation. Distinct Ints never share limb
// storage: [Int.Set] and [Int.Clone] perform deep copies.
package bigint

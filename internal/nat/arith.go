// This file provides the limb-vector primitives every other routine in the
// package is built from. None of them allocates.

package nat

import "math/bits"

// Word is one limb of a magnitude, least significant first.
type Word uint

const (
	// W is the limb width in bits.
	W = bits.UintSize

	// M is the all-ones limb.
	M = ^Word(0)

	// DecDigits is the number of decimal digits that always fit in a limb.
	DecDigits = 9 + 10*(W>>6)

	// DecBase is 10^DecDigits, the largest power of ten below 2^W.
	DecBase Word = 1e9 * (1 + (1e10-1)*(W>>6))
)

// ─────────────────────────────────────────────────────────────────────────────
// Comparison
// ─────────────────────────────────────────────────────────────────────────────

// Compare compares two spans of equal length as unsigned integers and returns
// -1, 0 or +1.
func Compare(x, y []Word) int {
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

// Norm returns x without its high-order zero limbs.
func Norm(x []Word) []Word {
	i := len(x)
	for i > 0 && x[i-1] == 0 {
		i--
	}
	return x[:i]
}

// ─────────────────────────────────────────────────────────────────────────────
// Addition and subtraction
// ─────────────────────────────────────────────────────────────────────────────

// AddVV sets z = x + y over len(z) limbs and returns the carry out.
// z may alias x or y.
func AddVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Add(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// SubVV sets z = x - y over len(z) limbs and returns the borrow out.
// z may alias x or y.
func SubVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Sub(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// AddVW sets z = x + y for a single limb y and returns the carry out.
func AddVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		zi, cc := bits.Add(uint(x[i]), uint(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// SubVW sets z = x - y for a single limb y and returns the borrow out.
func SubVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		zi, cc := bits.Sub(uint(x[i]), uint(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// Increment adds v to z in place, stopping as soon as the carry dies out.
// It returns 1 if the span overflowed past its top limb.
func Increment(z []Word, v Word) Word {
	for i := 0; i < len(z) && v != 0; i++ {
		zi, c := bits.Add(uint(z[i]), uint(v), 0)
		z[i] = Word(zi)
		v = Word(c)
	}
	return v
}

// Decrement subtracts v from z in place and returns 1 on underflow.
func Decrement(z []Word, v Word) Word {
	for i := 0; i < len(z) && v != 0; i++ {
		zi, b := bits.Sub(uint(z[i]), uint(v), 0)
		z[i] = Word(zi)
		v = Word(b)
	}
	return v
}

// TwosComplement negates z in place as a two's-complement number of
// len(z) limbs.
func TwosComplement(z []Word) {
	Decrement(z, 1)
	for i := range z {
		z[i] = ^z[i]
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Shifts
// ─────────────────────────────────────────────────────────────────────────────

// ShlBits sets z = x << s for 0 <= s < W and returns the bits shifted out of
// the top limb, right-aligned. len(z) == len(x); z may alias x.
func ShlBits(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return 0
	}
	if len(z) == 0 {
		return 0
	}
	ŝ := W - s
	w1 := x[len(z)-1]
	c = w1 >> ŝ
	for i := len(z) - 1; i > 0; i-- {
		w := w1
		w1 = x[i-1]
		z[i] = w<<s | w1>>ŝ
	}
	z[0] = w1 << s
	return c
}

// ShrBits sets z = x >> s for 0 <= s < W, filling with zeros, and returns the
// bits shifted out of the bottom limb, left-aligned.
func ShrBits(z, x []Word, s uint) (c Word) {
	return shrBits(z, x, s, 0)
}

// ShrBitsSigned is ShrBits with ones shifted in at the top, the arithmetic
// shift of a negative two's-complement span.
func ShrBitsSigned(z, x []Word, s uint) (c Word) {
	return shrBits(z, x, s, M)
}

func shrBits(z, x []Word, s uint, fill Word) (c Word) {
	if s == 0 {
		copy(z, x)
		return 0
	}
	if len(z) == 0 {
		return 0
	}
	ŝ := W - s
	w1 := x[0]
	c = w1 << ŝ
	for i := 0; i < len(z)-1; i++ {
		w := w1
		w1 = x[i+1]
		z[i] = w>>s | w1<<ŝ
	}
	z[len(z)-1] = w1>>s | fill<<ŝ
	return c
}

// ShlLimbs shifts z left in place by k whole limbs, zero-filling the bottom.
func ShlLimbs(z []Word, k int) {
	if k <= 0 {
		return
	}
	if k >= len(z) {
		clear(z)
		return
	}
	copy(z[k:], z[:len(z)-k])
	clear(z[:k])
}

// ShrLimbs shifts z right in place by k whole limbs, zero-filling the top.
func ShrLimbs(z []Word, k int) {
	shrLimbs(z, k, 0)
}

// ShrLimbsSigned is ShrLimbs with all-ones limbs shifted in at the top.
func ShrLimbsSigned(z []Word, k int) {
	shrLimbs(z, k, M)
}

func shrLimbs(z []Word, k int, fill Word) {
	if k <= 0 {
		return
	}
	if k > len(z) {
		k = len(z)
	}
	copy(z, z[k:])
	for i := len(z) - k; i < len(z); i++ {
		z[i] = fill
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Single-limb multiply and divide
// ─────────────────────────────────────────────────────────────────────────────

// MulAddVWW sets z = x*y + r and returns the carry limb. z may alias x.
func MulAddVWW(z, x []Word, y, r Word) (c Word) {
	c = r
	for i := 0; i < len(z) && i < len(x); i++ {
		hi, lo := bits.Mul(uint(x[i]), uint(y))
		lo, cc := bits.Add(lo, uint(c), 0)
		z[i] = Word(lo)
		c = Word(hi + cc)
	}
	return
}

// AddMulVVW sets z += x*y and returns the carry limb.
func AddMulVVW(z, x []Word, y Word) (c Word) {
	for i := 0; i < len(z) && i < len(x); i++ {
		hi, lo := bits.Mul(uint(x[i]), uint(y))
		lo, c0 := bits.Add(lo, uint(z[i]), 0)
		lo, c1 := bits.Add(lo, uint(c), 0)
		z[i] = Word(lo)
		c = Word(hi + c0 + c1)
	}
	return
}

// DivWVW sets z = (xn·B^len(x) + x) / y and returns the remainder, sweeping
// from the top limb down. It requires xn < y. z may alias x.
func DivWVW(z []Word, xn Word, x []Word, y Word) (r Word) {
	r = xn
	for i := len(z) - 1; i >= 0; i-- {
		q, rr := bits.Div(uint(r), uint(x[i]), uint(y))
		z[i] = Word(q)
		r = Word(rr)
	}
	return
}

// BitLen returns the bit length of a normalized magnitude.
func BitLen(x []Word) int {
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*W + bits.Len(uint(x[len(x)-1]))
}

// TrailingZeros returns the number of low zero bits of a nonzero magnitude.
func TrailingZeros(x []Word) int {
	for i, w := range x {
		if w != 0 {
			return i*W + bits.TrailingZeros(uint(w))
		}
	}
	return 0
}

// This file implements division of magnitudes: a single-limb sweep and
// Knuth's Algorithm D for multi-limb divisors.

package nat

import (
	"fmt"
	"math/bits"
)

// maxCorrections bounds the add-back/subtract steps of one quotient digit.
// With a normalized divisor the 3-by-2 estimate is off by at most two.
const maxCorrections = 2

// DivW sets z = x / y and returns x mod y. len(z) == len(x); z may alias x.
func DivW(z, x []Word, y Word) (r Word) {
	switch y {
	case 0:
		panic("BUG: nat.DivW by zero")
	case 1:
		copy(z, x)
		return 0
	}
	return DivWVW(z, 0, x, y)
}

// Div returns the quotient and remainder of u / v as freshly allocated,
// normalized magnitudes. v must be nonzero; the caller reports division by
// zero before reaching this point.
func Div(u, v []Word) (q, r []Word) {
	u, v = Norm(u), Norm(v)
	if len(v) == 0 {
		panic("BUG: nat.Div by zero")
	}
	if len(u) == 0 {
		return nil, nil
	}
	if len(u) < len(v) || (len(u) == len(v) && Compare(u, v) < 0) {
		return nil, Clone(u)
	}
	if len(v) == 1 {
		q = Make(len(u))
		rw := DivW(q, u, v[0])
		q = Norm(q)
		if rw != 0 {
			r = Make(1)
			r[0] = rw
		}
		return q, r
	}
	return divLarge(u, v)
}

// divLarge implements Algorithm D for len(v) >= 2 and u >= v.
func divLarge(u, v []Word) (q, r []Word) {
	n := len(v)
	m := len(u) - n

	stk := NewArena(len(u) + 2*n + 2)
	defer stk.Free()

	// D1: normalize so the divisor's top bit is set.
	s := uint(bits.LeadingZeros(uint(v[n-1])))
	vn := stk.Alloc(n)
	ShlBits(vn, v, s)
	un := stk.Alloc(len(u) + 1)
	un[len(u)] = ShlBits(un[:len(u)], u, s)

	q = Make(m + 1)
	qv := stk.Alloc(n + 1)
	v1, v0 := vn[n-1], vn[n-2]

	// D2-D7: one quotient limb per window, most significant first.
	for j := m; j >= 0; j-- {
		window := un[j : j+n+1]
		qhat := estimateQuotient(window[n], window[n-1], window[n-2], v1, v0)

		qv[n] = MulAddVWW(qv[:n], vn, qhat, 0)
		borrow := SubVV(window, window, qv)

		fixes := 0
		for borrow != 0 {
			c := AddVV(window[:n], window[:n], vn)
			top, cc := bits.Add(uint(window[n]), uint(c), 0)
			window[n] = Word(top)
			if cc != 0 {
				borrow = 0
			}
			qhat--
			fixes++
		}
		for window[n] != 0 || Compare(window[:n], vn) >= 0 {
			window[n] -= SubVV(window[:n], window[:n], vn)
			qhat++
			fixes++
		}
		if debugDiv && fixes > maxCorrections {
			panic(fmt.Sprintf("BUG: quotient digit %d needed %d corrections", j, fixes))
		}
		q[j] = qhat
	}

	// D8: the remainder sits in the low n limbs, still scaled by 2^s.
	r = Make(n)
	ShrBits(r, un[:n], s)
	return Norm(q), Norm(r)
}

// estimateQuotient returns an estimate of (u2·B² + u1·B + u0) / (v1·B + v0)
// for a normalized divisor, capped at B-1. The estimate is never too small,
// except in the all-ones divisor case, and exceeds the true digit by at most
// two.
func estimateQuotient(u2, u1, u0, v1, v0 Word) Word {
	// Dividing by B²-1 is dividing by B² to within the correction range.
	if v1 == M && v0 == M {
		return u2
	}

	var qhat, rhat Word
	if u2 >= v1 {
		qhat = M
		// rhat = u2·B + u1 - qhat·v1 = u1 + v1 when u2 == v1.
		sum, c := bits.Add(uint(u1), uint(v1), 0)
		if c != 0 {
			return qhat
		}
		rhat = Word(sum)
	} else {
		qq, rr := bits.Div(uint(u2), uint(u1), uint(v1))
		qhat, rhat = Word(qq), Word(rr)
	}

	// Refine against the second divisor limb: while qhat·v0 > rhat·B + u0.
	for {
		hi, lo := bits.Mul(uint(qhat), uint(v0))
		if hi < uint(rhat) || (hi == uint(rhat) && lo <= uint(u0)) {
			return qhat
		}
		qhat--
		sum, c := bits.Add(uint(rhat), uint(v1), 0)
		if c != 0 {
			return qhat
		}
		rhat = Word(sum)
	}
}

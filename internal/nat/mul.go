// This file implements multiplication and squaring of magnitudes: a
// schoolbook kernel for short operands, Karatsuba recursion for long
// equal-length operands, and block decomposition for unequal lengths.

package nat

import (
	"math/bits"
	"sync/atomic"
)

// DefaultKaratsubaThreshold is the operand length, in limbs, from which
// multiplication switches from the schoolbook kernel to Karatsuba.
const DefaultKaratsubaThreshold = 16

// MinKaratsubaThreshold is the smallest accepted threshold. Below it the
// recursion would bottom out on operands too short to split.
const MinKaratsubaThreshold = 4

var karatsubaThreshold atomic.Int64

// KaratsubaThreshold returns the current recursion threshold in limbs.
func KaratsubaThreshold() int {
	if t := karatsubaThreshold.Load(); t > 0 {
		return int(t)
	}
	return DefaultKaratsubaThreshold
}

// SetKaratsubaThreshold sets the recursion threshold and returns the previous
// value. Values below MinKaratsubaThreshold are raised to it. The threshold is
// read once per top-level call, so changing it while other goroutines
// multiply only affects calls that start afterwards.
func SetKaratsubaThreshold(n int) int {
	if n < MinKaratsubaThreshold {
		n = MinKaratsubaThreshold
	}
	prev := KaratsubaThreshold()
	karatsubaThreshold.Store(int64(n))
	return prev
}

// same reports whether x and y are the same span.
func same(x, y []Word) bool {
	return len(x) == len(y) && len(x) > 0 && &x[0] == &y[0]
}

// karatsubaLen returns a length >= n of the form c·2^i with c < t, found by
// halving n (rounding up) until it drops below t. Padding an operand to that
// length lets every Karatsuba level split evenly down to a schoolbook block.
func karatsubaLen(n, t int) int {
	if n < t {
		return n
	}
	c, i := n, 0
	for c >= t {
		c = (c + 1) >> 1
		i++
	}
	return c << i
}

// mulScratch sizes the arena of a top-level multiply whose shorter operand
// has m limbs.
func mulScratch(m, t int) int {
	k := karatsubaLen(m, t)
	return 10*k + 2*m + 64
}

// Mul sets z[0:len(x)+len(y)] = x*y. z must not overlap x or y.
// If x and y are the same span the product is computed as a square.
func Mul(z, x, y []Word) {
	if same(x, y) {
		Sqr(z, x)
		return
	}
	if len(x) > len(y) {
		x, y = y, x
	}
	m := len(x)
	z = z[:m+len(y)]
	if m == 0 {
		clear(z)
		return
	}
	t := KaratsubaThreshold()
	if m < t {
		basicMul(z, x, y)
		return
	}
	stk := NewArena(mulScratch(m, t))
	defer stk.Free()
	mulAsym(z, x, y, t, stk)
}

// Sqr sets z[0:2*len(x)] = x*x. z must not overlap x.
func Sqr(z, x []Word) {
	n := len(x)
	z = z[:2*n]
	if n == 0 {
		return
	}
	t := KaratsubaThreshold()
	if n < t {
		basicSqr(z, x)
		return
	}
	stk := NewArena(mulScratch(n, t))
	defer stk.Free()
	k := karatsubaLen(n, t)
	if k == n {
		karatsubaSqr(z, x, t, stk)
		return
	}
	xp := stk.Alloc(k)
	copy(xp, x)
	zp := stk.Alloc(2 * k)
	karatsubaSqr(zp, xp, t, stk)
	copy(z, zp)
}

// ─────────────────────────────────────────────────────────────────────────────
// Schoolbook kernels
// ─────────────────────────────────────────────────────────────────────────────

// basicMul sets z = x*y by accumulating one row per limb of x.
func basicMul(z, x, y []Word) {
	clear(z[:len(x)+len(y)])
	for i, xi := range x {
		if xi != 0 {
			z[len(y)+i] = AddMulVVW(z[i:i+len(y)], y, xi)
		}
	}
}

// basicSqr sets z = x*x. Off-diagonal products are accumulated once,
// doubled with a one-bit shift, then the diagonal squares are added.
func basicSqr(z, x []Word) {
	n := len(x)
	clear(z[:2*n])
	for i := 0; i < n-1; i++ {
		z[n+i] = AddMulVVW(z[2*i+1:n+i], x[i+1:], x[i])
	}
	ShlBits(z[:2*n], z[:2*n], 1)
	var c Word
	for i, xi := range x {
		hi, lo := bits.Mul(uint(xi), uint(xi))
		s, c0 := bits.Add(uint(z[2*i]), lo, uint(c))
		z[2*i] = Word(s)
		s, c1 := bits.Add(uint(z[2*i+1]), hi, c0)
		z[2*i+1] = Word(s)
		c = Word(c1)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Karatsuba
// ─────────────────────────────────────────────────────────────────────────────

// karatsuba sets z[0:2n] = x*y for len(x) == len(y) == n. Lengths that are
// odd or below the threshold use the schoolbook kernel.
//
// With x = x1·B^h + x0 and y = y1·B^h + y0:
//
//	x*y = z2·B^2h + (z2 + z0 + (x1-x0)(y0-y1))·B^h + z0
//
// where z2 = x1*y1 and z0 = x0*y0.
func karatsuba(z, x, y []Word, t int, stk *Arena) {
	n := len(x)
	if n < t || n&1 == 1 {
		basicMul(z, x, y)
		return
	}
	h := n >> 1
	x0, x1 := x[:h], x[h:]
	y0, y1 := y[:h], y[h:]

	karatsuba(z[:n], x0, y0, t, stk)
	karatsuba(z[n:2*n], x1, y1, t, stk)

	mark := stk.Mark()
	d := stk.Alloc(n)
	dx, dy := d[:h], d[h:]
	negative := absDiff(dx, x1, x0) != absDiff(dy, y0, y1)

	p := stk.Alloc(n)
	karatsuba(p, dx, dy, t, stk)

	// mid = z0 + z2 ± p, always non-negative and at most n+1 limbs.
	mid := stk.Alloc(n + 1)
	copy(mid, z[:n])
	mid[n] = AddVV(mid[:n], mid[:n], z[n:2*n])
	if negative {
		mid[n] -= SubVV(mid[:n], mid[:n], p)
	} else {
		mid[n] += AddVV(mid[:n], mid[:n], p)
	}

	c := AddVV(z[h:h+n+1], z[h:h+n+1], mid)
	Increment(z[h+n+1:2*n], c)
	stk.Release(mark)
}

// karatsubaSqr sets z[0:2n] = x*x using
//
//	x*x = x1²·B^2h + 2·x1·x0·B^h + x0²
//
// with the cross term computed by one recursive multiply.
func karatsubaSqr(z, x []Word, t int, stk *Arena) {
	n := len(x)
	if n < t || n&1 == 1 {
		basicSqr(z, x)
		return
	}
	h := n >> 1
	x0, x1 := x[:h], x[h:]

	karatsubaSqr(z[:n], x0, t, stk)
	karatsubaSqr(z[n:2*n], x1, t, stk)

	mark := stk.Mark()
	p := stk.Alloc(n + 1)
	karatsuba(p[:n], x0, x1, t, stk)
	p[n] = ShlBits(p[:n], p[:n], 1)

	c := AddVV(z[h:h+n+1], z[h:h+n+1], p)
	Increment(z[h+n+1:2*n], c)
	stk.Release(mark)
}

// absDiff sets z = |x - y| for equal-length spans and reports whether x < y.
func absDiff(z, x, y []Word) bool {
	if Compare(x, y) < 0 {
		SubVV(z, y, x)
		return true
	}
	SubVV(z, x, y)
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Dispatch
// ─────────────────────────────────────────────────────────────────────────────

// mulEqual sets z[0:2n] = x*y for equal lengths n, zero-padding both operands
// to karatsubaLen when n does not split evenly all the way down.
func mulEqual(z, x, y []Word, t int, stk *Arena) {
	n := len(x)
	k := karatsubaLen(n, t)
	if k == n {
		karatsuba(z[:2*n], x, y, t, stk)
		return
	}
	mark := stk.Mark()
	xp := stk.Alloc(k)
	copy(xp, x)
	yp := stk.Alloc(k)
	copy(yp, y)
	zp := stk.Alloc(2 * k)
	karatsuba(zp, xp, yp, t, stk)
	copy(z[:2*n], zp)
	stk.Release(mark)
}

// mulAsym sets z = x*y for m = len(x) <= n = len(y). The longer operand is
// cut into m-limb blocks, each multiplied by x with the equal-length engine,
// and the partial products are accumulated at their block offsets.
func mulAsym(z, x, y []Word, t int, stk *Arena) {
	m, n := len(x), len(y)
	if m == n {
		mulEqual(z, x, y, t, stk)
		return
	}
	clear(z[:m+n])
	mark := stk.Mark()
	prod := stk.Alloc(2 * m)
	var pad []Word
	for i := 0; i < n; i += m {
		blk := y[i:min(i+m, n)]
		if len(blk) < m {
			if pad == nil {
				pad = stk.Alloc(m)
			}
			clear(pad)
			copy(pad, blk)
			blk = pad
		}
		mulEqual(prod, x, blk, t, stk)
		end := min(i+2*m, m+n)
		c := AddVV(z[i:end], z[i:end], prod[:end-i])
		Increment(z[end:m+n], c)
	}
	stk.Release(mark)
}

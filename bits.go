package bigint

import (
	"math"

	"github.com/agbru/bigint/internal/nat"
)

// bit reports whether bit i of the magnitude x is set.
func bit(x []nat.Word, i int) bool {
	w := i / nat.W
	return w < len(x) && x[w]>>(uint(i)%nat.W)&1 == 1
}

// ShiftLeft returns x << n. A negative n shifts right instead.
func (x BigInteger) ShiftLeft(n int) BigInteger {
	if n < 0 {
		if n == math.MinInt {
			return x.shr(uint(math.MaxInt) + 1)
		}
		return x.shr(uint(-n))
	}
	return x.shl(uint(n))
}

// ShiftRight returns x >> n, rounding toward negative infinity as an
// arithmetic shift of the two's-complement form does. A negative n shifts
// left instead.
func (x BigInteger) ShiftRight(n int) BigInteger {
	if n < 0 {
		if n == math.MinInt {
			return x.shl(uint(math.MaxInt) + 1)
		}
		return x.shl(uint(-n))
	}
	return x.shr(uint(n))
}

func (x BigInteger) shl(n uint) BigInteger {
	if len(x.mag) == 0 || n == 0 {
		return x
	}
	limbs, s := int(n/nat.W), n%nat.W
	z := nat.Make(len(x.mag) + limbs + 1)
	z[len(x.mag)+limbs] = nat.ShlBits(z[limbs:limbs+len(x.mag)], x.mag, s)
	return newInt(x.negative, z)
}

func (x BigInteger) shr(n uint) BigInteger {
	if len(x.mag) == 0 || n == 0 {
		return x
	}
	if !x.negative {
		if n >= uint(len(x.mag))*nat.W {
			return Zero
		}
		limbs, s := int(n/nat.W), n%nat.W
		z := nat.Make(len(x.mag) - limbs)
		nat.ShrBits(z, x.mag[limbs:], s)
		return newInt(false, z)
	}

	// Negative: shift the two's-complement image with sign fill. One extra
	// limb keeps the image's top bit set for every magnitude.
	t := nat.Make(len(x.mag) + 1)
	copy(t, x.mag)
	nat.TwosComplement(t)
	if n >= uint(len(t))*nat.W {
		return NewInt64(-1)
	}
	nat.ShrLimbsSigned(t, int(n/nat.W))
	nat.ShrBitsSigned(t, t, n%nat.W)
	nat.TwosComplement(t)
	return newInt(true, t)
}

// UnsignedBitLength returns the number of bits in |x|. It is 0 only for 0.
func (x BigInteger) UnsignedBitLength() int { return nat.BitLen(x.mag) }

// BitLength returns the length of the minimal two's-complement form of x,
// excluding the sign bit. For x < 0 this equals the bit length of -x-1.
func (x BigInteger) BitLength() int {
	n := nat.BitLen(x.mag)
	if x.negative && isPowerOfTwo(x.mag) {
		n--
	}
	return n
}

// isPowerOfTwo reports whether a nonzero magnitude has exactly one bit set.
func isPowerOfTwo(x []nat.Word) bool {
	top := x[len(x)-1]
	if top&(top-1) != 0 {
		return false
	}
	for _, w := range x[:len(x)-1] {
		if w != 0 {
			return false
		}
	}
	return true
}

// LowestSetBit returns the index of the lowest set bit of x, or -1 for 0.
// The index is the same for x and -x.
func (x BigInteger) LowestSetBit() int {
	if len(x.mag) == 0 {
		return -1
	}
	return nat.TrailingZeros(x.mag)
}

// TestBit reports whether bit n of the two's-complement form of x is set.
// Negative values have infinitely many leading one bits.
func (x BigInteger) TestBit(n uint) bool {
	if n > math.MaxInt {
		return x.negative
	}
	if !x.negative {
		return bit(x.mag, int(n))
	}
	// ^(|x|-1) is the two's-complement image of x.
	return !bit(decMag(x.mag), int(n))
}

// SetBit returns x with bit n of its two's-complement form set.
func (x BigInteger) SetBit(n uint) BigInteger { return x.withBit(n, bitSet) }

// ClearBit returns x with bit n of its two's-complement form cleared.
func (x BigInteger) ClearBit(n uint) BigInteger { return x.withBit(n, bitClear) }

// FlipBit returns x with bit n of its two's-complement form inverted.
func (x BigInteger) FlipBit(n uint) BigInteger { return x.withBit(n, bitFlip) }

type bitOp int

const (
	bitSet bitOp = iota
	bitClear
	bitFlip
)

// withBit applies op to bit n. For x < 0 the image is ^m with m = |x|-1, so
// setting a bit of x clears it in m, and the result is -(m'+1).
func (x BigInteger) withBit(n uint, op bitOp) BigInteger {
	m := x.mag
	if x.negative {
		m = decMag(x.mag)
		switch op {
		case bitSet:
			op = bitClear
		case bitClear:
			op = bitSet
		}
	}

	limb := int(n / nat.W)
	mask := nat.Word(1) << (n % nat.W)
	z := nat.Make(max(len(m), limb+1) + 1)
	copy(z, m)
	switch op {
	case bitSet:
		z[limb] |= mask
	case bitClear:
		z[limb] &^= mask
	case bitFlip:
		z[limb] ^= mask
	}

	if x.negative {
		nat.Increment(z, 1)
		return newInt(true, z)
	}
	return newInt(false, z)
}

// decMag returns |x| - 1 for a nonzero magnitude as a fresh slice.
func decMag(x []nat.Word) []nat.Word {
	z := nat.Make(len(x))
	copy(z, x)
	nat.Decrement(z, 1)
	return nat.Norm(z)
}

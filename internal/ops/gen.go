package ops

import (
	"math/rand/v2"

	"github.com/agbru/bigint"
)

// RandomInt draws a signed value of up to maxLimbs 64-bit words. One draw in
// eight is an edge shape (zero, ±1, a power of two, or a run of all-ones
// words) so carry and borrow chains get exercised.
func RandomInt(r *rand.Rand, maxLimbs int) bigint.BigInteger {
	x := randomMagnitude(r, maxLimbs)
	if r.IntN(2) == 0 {
		return x.Negate()
	}
	return x
}

// RandomNonNegative draws a value in [0, 2^(64·maxLimbs)).
func RandomNonNegative(r *rand.Rand, maxLimbs int) bigint.BigInteger {
	return randomMagnitude(r, maxLimbs)
}

func randomMagnitude(r *rand.Rand, maxLimbs int) bigint.BigInteger {
	if maxLimbs < 1 {
		maxLimbs = 1
	}
	n := 1 + r.IntN(maxLimbs)
	if r.IntN(8) == 0 {
		switch r.IntN(4) {
		case 0:
			return bigint.Zero
		case 1:
			return bigint.One
		case 2:
			return bigint.One.ShiftLeft(r.IntN(64 * n))
		default:
			return bigint.One.ShiftLeft(64 * n).Subtract(bigint.One)
		}
	}
	buf := make([]byte, 1+8*n)
	for i := 1; i < len(buf); i += 8 {
		w := r.Uint64()
		for j := range 8 {
			buf[i+j] = byte(w >> (8 * j))
		}
	}
	return bigint.FromBytes(buf, false)
}

func signed(n int) OperandFunc {
	return func(r *rand.Rand, maxLimbs int) []bigint.BigInteger {
		out := make([]bigint.BigInteger, n)
		for i := range out {
			out[i] = RandomInt(r, maxLimbs)
		}
		return out
	}
}

// dividend draws a divisor no longer than the dividend most of the time so
// the quotient is not trivially zero.
func dividend(r *rand.Rand, maxLimbs int) []bigint.BigInteger {
	x := RandomInt(r, maxLimbs)
	dl := maxLimbs
	if r.IntN(4) != 0 {
		dl = max(1, (x.UnsignedBitLength()+63)/64)
	}
	return []bigint.BigInteger{x, RandomInt(r, dl)}
}

// gcdOperands gives both operands a random common factor half the time.
func gcdOperands(r *rand.Rand, maxLimbs int) []bigint.BigInteger {
	if r.IntN(2) == 0 {
		return signed(2)(r, maxLimbs)
	}
	part := max(1, maxLimbs/3)
	g := RandomInt(r, part)
	return []bigint.BigInteger{
		g.Multiply(RandomInt(r, part)),
		g.Multiply(RandomInt(r, part)),
	}
}

// powOperands keeps results near maxLimbs words.
func powOperands(r *rand.Rand, maxLimbs int) []bigint.BigInteger {
	e := r.IntN(24)
	baseLimbs := max(1, maxLimbs/max(1, e))
	x := RandomInt(r, baseLimbs)
	if r.IntN(16) == 0 {
		return []bigint.BigInteger{x, bigint.NewInt64(-int64(1 + r.IntN(5)))}
	}
	return []bigint.BigInteger{x, bigint.NewInt64(int64(e))}
}

func modPowOperands(r *rand.Rand, maxLimbs int) []bigint.BigInteger {
	ml := max(1, min(maxLimbs, 16))
	x := RandomInt(r, ml)
	e := RandomNonNegative(r, min(ml, 4))
	m := RandomNonNegative(r, ml)
	switch r.IntN(16) {
	case 0:
		m = m.Negate()
	case 1:
		e = e.Negate()
	}
	return []bigint.BigInteger{x, e, m}
}

// radicand is mostly non-negative with an occasional negative input.
func radicand(r *rand.Rand, maxLimbs int) []bigint.BigInteger {
	x := RandomNonNegative(r, maxLimbs)
	if r.IntN(16) == 0 {
		x = x.Negate()
	}
	return []bigint.BigInteger{x}
}

func shiftOperands(r *rand.Rand, maxLimbs int) []bigint.BigInteger {
	return []bigint.BigInteger{RandomInt(r, maxLimbs), bigint.NewInt64(int64(r.IntN(2200) - 200))}
}

func bitOperands(r *rand.Rand, maxLimbs int) []bigint.BigInteger {
	x := RandomInt(r, maxLimbs)
	return []bigint.BigInteger{x, bigint.NewInt64(int64(r.IntN(x.UnsignedBitLength() + 130)))}
}

// cmpOperands makes equal and near-equal pairs likely.
func cmpOperands(r *rand.Rand, maxLimbs int) []bigint.BigInteger {
	x := RandomInt(r, maxLimbs)
	switch r.IntN(4) {
	case 0:
		return []bigint.BigInteger{x, x}
	case 1:
		return []bigint.BigInteger{x, x.Add(bigint.NewInt64(int64(r.IntN(3) - 1)))}
	}
	return []bigint.BigInteger{x, RandomInt(r, maxLimbs)}
}

func scaleOperands(r *rand.Rand, maxLimbs int) []bigint.BigInteger {
	return []bigint.BigInteger{RandomInt(r, maxLimbs), bigint.NewInt64(int64(r.IntN(160) - 80))}
}

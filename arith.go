package bigint

import (
	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/nat"
)

// ─────────────────────────────────────────────────────────────────────────────
// Magnitude helpers
// ─────────────────────────────────────────────────────────────────────────────

// addMag returns x + y.
func addMag(x, y []nat.Word) []nat.Word {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := nat.Make(len(x) + 1)
	c := nat.AddVV(z[:len(y)], x[:len(y)], y)
	z[len(x)] = nat.AddVW(z[len(y):len(x)], x[len(y):], c)
	return z
}

// subMag returns x - y for x >= y.
func subMag(x, y []nat.Word) []nat.Word {
	z := nat.Make(len(x))
	b := nat.SubVV(z[:len(y)], x[:len(y)], y)
	nat.SubVW(z[len(y):], x[len(y):], b)
	return z
}

// mulMag returns x * y.
func mulMag(x, y []nat.Word) []nat.Word {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	z := nat.Make(len(x) + len(y))
	nat.Mul(z, x, y)
	return z
}

// sqrMag returns x * x.
func sqrMag(x []nat.Word) []nat.Word {
	if len(x) == 0 {
		return nil
	}
	z := nat.Make(2 * len(x))
	nat.Sqr(z, x)
	return nat.Norm(z)
}

// modMag returns x mod m for a nonzero m.
func modMag(x, m []nat.Word) []nat.Word {
	_, r := nat.Div(x, m)
	return r
}

// ─────────────────────────────────────────────────────────────────────────────
// Addition and subtraction
// ─────────────────────────────────────────────────────────────────────────────

func addSigned(x []nat.Word, xneg bool, y []nat.Word, yneg bool) BigInteger {
	if xneg == yneg {
		return newInt(xneg, addMag(x, y))
	}
	switch cmpMag(x, y) {
	case 0:
		return BigInteger{}
	case 1:
		return newInt(xneg, subMag(x, y))
	}
	return newInt(yneg, subMag(y, x))
}

// Add returns x + y.
func (x BigInteger) Add(y BigInteger) BigInteger {
	return addSigned(x.mag, x.negative, y.mag, y.negative)
}

// Subtract returns x - y.
func (x BigInteger) Subtract(y BigInteger) BigInteger {
	return addSigned(x.mag, x.negative, y.mag, !y.negative)
}

// Negate returns -x. The result owns a copy of the magnitude.
func (x BigInteger) Negate() BigInteger {
	return newInt(!x.negative, nat.Clone(x.mag))
}

// Abs returns |x|.
func (x BigInteger) Abs() BigInteger {
	return newInt(false, nat.Clone(x.mag))
}

// ─────────────────────────────────────────────────────────────────────────────
// Multiplication
// ─────────────────────────────────────────────────────────────────────────────

// KaratsubaThreshold returns the operand length, in limbs, at which
// multiplication switches to Karatsuba recursion.
func KaratsubaThreshold() int { return nat.KaratsubaThreshold() }

// SetKaratsubaThreshold changes the Karatsuba threshold for the whole process
// and returns the previous value. Values below the minimum are raised to it.
func SetKaratsubaThreshold(n int) int { return nat.SetKaratsubaThreshold(n) }

// Multiply returns x * y. Multiplying a value by itself is computed as a
// square.
func (x BigInteger) Multiply(y BigInteger) BigInteger {
	return newInt(x.negative != y.negative, mulMag(x.mag, y.mag))
}

// Square returns x * x.
func (x BigInteger) Square() BigInteger {
	return newInt(false, sqrMag(x.mag))
}

// ─────────────────────────────────────────────────────────────────────────────
// Division
// ─────────────────────────────────────────────────────────────────────────────

// DivRem returns the quotient truncated toward zero and the remainder, which
// has the sign of x. It fails with ErrDivideByZero when y is zero.
func (x BigInteger) DivRem(y BigInteger) (q, r BigInteger, err error) {
	if y.IsZero() {
		return Zero, Zero, apperrors.NewArithmeticError("divide", ErrDivideByZero)
	}
	qm, rm := nat.Div(x.mag, y.mag)
	return newInt(x.negative != y.negative, qm), newInt(x.negative, rm), nil
}

// Divide returns x / y truncated toward zero.
func (x BigInteger) Divide(y BigInteger) (BigInteger, error) {
	q, _, err := x.DivRem(y)
	return q, err
}

// Remainder returns x - y*(x/y), which has the sign of x.
func (x BigInteger) Remainder(y BigInteger) (BigInteger, error) {
	if y.IsZero() {
		return Zero, apperrors.NewArithmeticError("remainder", ErrDivideByZero)
	}
	return newInt(x.negative, modMag(x.mag, y.mag)), nil
}

// Mod returns the Euclidean modulus of x by m, always in [0, |m|).
func (x BigInteger) Mod(m BigInteger) (BigInteger, error) {
	if m.IsZero() {
		return Zero, apperrors.NewArithmeticError("mod", ErrDivideByZero)
	}
	r := modMag(x.mag, m.mag)
	if x.negative && len(r) > 0 {
		return newInt(false, subMag(m.mag, r)), nil
	}
	return newInt(false, r), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Exponentiation
// ─────────────────────────────────────────────────────────────────────────────

// maxExponentBits bounds PowBig: any base other than 0 and ±1 raised to an
// exponent wider than this has more bits than memory can hold.
const maxExponentBits = 48

// Pow returns x**e. Pow(0) is 1 for every x, including 0.
func (x BigInteger) Pow(e uint64) BigInteger {
	switch e {
	case 0:
		return One
	case 1:
		return x
	case 2:
		return x.Square()
	case 3:
		return x.Square().Multiply(x)
	}
	return x.powMag(magFromUint64(e))
}

// PowBig returns x**e for a non-negative BigInteger exponent. It fails with
// ErrInvalidArgument for a negative exponent and ErrOverflow when the result
// could not be represented.
func (x BigInteger) PowBig(e BigInteger) (BigInteger, error) {
	if e.negative {
		return Zero, apperrors.NewArithmeticError("pow", ErrInvalidArgument)
	}
	if u, ok := e.magUint64(); ok && u <= 3 {
		return x.Pow(u), nil
	}
	switch {
	case x.IsZero():
		return Zero, nil
	case len(x.mag) == 1 && x.mag[0] == 1:
		if x.negative && e.IsOdd() {
			return x, nil
		}
		return One, nil
	case e.UnsignedBitLength() > maxExponentBits:
		return Zero, apperrors.NewArithmeticError("pow", ErrOverflow)
	}
	return x.powMag(e.mag), nil
}

// powMag is left-to-right binary exponentiation over the bits of e.
func (x BigInteger) powMag(e []nat.Word) BigInteger {
	z := x.mag
	for i := nat.BitLen(e) - 2; i >= 0; i-- {
		z = sqrMag(z)
		if bit(e, i) {
			z = nat.Norm(mulMag(z, x.mag))
		}
	}
	return newInt(x.negative && bit(e, 0), nat.Clone(z))
}

// ModPow returns x**e mod m in [0, m). m must be positive and e non-negative.
func (x BigInteger) ModPow(e, m BigInteger) (BigInteger, error) {
	switch {
	case m.IsZero():
		return Zero, apperrors.NewArithmeticError("modpow", ErrDivideByZero)
	case m.negative, e.negative:
		return Zero, apperrors.NewArithmeticError("modpow", ErrInvalidArgument)
	case len(m.mag) == 1 && m.mag[0] == 1:
		return Zero, nil
	case e.IsZero():
		return One, nil
	}
	base, _ := x.Mod(m)
	if base.IsZero() {
		return Zero, nil
	}
	z := base.mag
	for i := e.UnsignedBitLength() - 2; i >= 0; i-- {
		z = modMag(sqrMag(z), m.mag)
		if bit(e.mag, i) {
			z = modMag(mulMag(z, base.mag), m.mag)
		}
	}
	return newInt(false, nat.Clone(z)), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GCD and square root
// ─────────────────────────────────────────────────────────────────────────────

// Gcd returns the greatest common divisor of |x| and |y|. Gcd(0, 0) is 0.
func (x BigInteger) Gcd(y BigInteger) BigInteger {
	a, b := x.mag, y.mag
	switch {
	case len(a) == 0:
		return newInt(false, nat.Clone(b))
	case len(b) == 0:
		return newInt(false, nat.Clone(a))
	case isOne(a) || isOne(b):
		return One
	case cmpMag(a, b) == 0:
		return newInt(false, nat.Clone(a))
	}
	for len(b) != 0 {
		a, b = b, modMag(a, b)
	}
	return newInt(false, nat.Clone(a))
}

func isOne(x []nat.Word) bool { return len(x) == 1 && x[0] == 1 }

// Sqrt returns ⌊√x⌋. It fails with ErrInvalidArgument for negative x.
func (x BigInteger) Sqrt() (BigInteger, error) {
	if x.negative {
		return Zero, apperrors.NewArithmeticError("sqrt", ErrInvalidArgument)
	}
	if len(x.mag) == 0 || isOne(x.mag) {
		return x, nil
	}
	// Newton's iteration from 2^⌈bitlen/2⌉ >= √x decreases monotonically
	// until it reaches ⌊√x⌋.
	z := One.ShiftLeft((x.UnsignedBitLength() + 1) / 2)
	for {
		q, _ := x.Divide(z)
		next := z.Add(q).ShiftRight(1)
		if next.Compare(z) >= 0 {
			return z, nil
		}
		z = next
	}
}

// SqrtRem returns s = ⌊√x⌋ and x - s².
func (x BigInteger) SqrtRem() (s, r BigInteger, err error) {
	s, err = x.Sqrt()
	if err != nil {
		return Zero, Zero, err
	}
	return s, x.Subtract(s.Square()), nil
}

package ops

import (
	"fmt"

	"github.com/agbru/bigint"
	apperrors "github.com/agbru/bigint/internal/errors"
)

func one(x bigint.BigInteger) ([]bigint.BigInteger, error) {
	return []bigint.BigInteger{x}, nil
}

func fallible(x bigint.BigInteger, err error) ([]bigint.BigInteger, error) {
	if err != nil {
		return nil, err
	}
	return []bigint.BigInteger{x}, nil
}

func pair(x, y bigint.BigInteger, err error) ([]bigint.BigInteger, error) {
	if err != nil {
		return nil, err
	}
	return []bigint.BigInteger{x, y}, nil
}

func boolInt(b bool) bigint.BigInteger {
	if b {
		return bigint.One
	}
	return bigint.Zero
}

// shiftCount converts a shift operand. Counts must fit in 32 bits.
func shiftCount(op string, x bigint.BigInteger) (int, error) {
	n, err := x.Int32()
	if err != nil {
		return 0, apperrors.NewArithmeticError(op, bigint.ErrOverflow)
	}
	return int(n), nil
}

// bitIndex converts a bit-index operand, which must be non-negative.
func bitIndex(op string, x bigint.BigInteger) (uint, error) {
	if x.Sign() < 0 {
		return 0, apperrors.NewArithmeticError(op, bigint.ErrInvalidArgument)
	}
	n, err := x.Int64()
	if err != nil {
		return 0, apperrors.NewArithmeticError(op, bigint.ErrOverflow)
	}
	return uint(n), nil
}

func withBit(op string, f func(bigint.BigInteger, uint) bigint.BigInteger) EvalFunc {
	return func(a []bigint.BigInteger) ([]bigint.BigInteger, error) {
		n, err := bitIndex(op, a[1])
		if err != nil {
			return nil, err
		}
		return one(f(a[0], n))
	}
}

func init() {
	register(Operation{
		Name: "add", Arity: 2, Usage: "<x> <y>", Summary: "x + y",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return one(a[0].Add(a[1])) },
		Operands: signed(2),
	})
	register(Operation{
		Name: "sub", Arity: 2, Usage: "<x> <y>", Summary: "x - y",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return one(a[0].Subtract(a[1])) },
		Operands: signed(2),
	})
	register(Operation{
		Name: "mul", Arity: 2, Usage: "<x> <y>", Summary: "x * y",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return one(a[0].Multiply(a[1])) },
		Operands: signed(2),
	})
	register(Operation{
		Name: "sqr", Arity: 1, Usage: "<x>", Summary: "x * x",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return one(a[0].Square()) },
		Operands: signed(1),
	})
	register(Operation{
		Name: "div", Arity: 2, Usage: "<x> <y>", Summary: "x / y truncated toward zero",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return fallible(a[0].Divide(a[1])) },
		Operands: dividend,
	})
	register(Operation{
		Name: "rem", Arity: 2, Usage: "<x> <y>", Summary: "remainder with the sign of x",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return fallible(a[0].Remainder(a[1])) },
		Operands: dividend,
	})
	register(Operation{
		Name: "mod", Arity: 2, Usage: "<x> <m>", Summary: "Euclidean modulus in [0, |m|)",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return fallible(a[0].Mod(a[1])) },
		Operands: dividend,
	})
	register(Operation{
		Name: "divrem", Arity: 2, Usage: "<x> <y>", Summary: "quotient and remainder",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return pair(a[0].DivRem(a[1])) },
		Operands: dividend,
	})
	register(Operation{
		Name: "neg", Arity: 1, Usage: "<x>", Summary: "-x",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return one(a[0].Negate()) },
		Operands: signed(1),
	})
	register(Operation{
		Name: "abs", Arity: 1, Usage: "<x>", Summary: "|x|",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return one(a[0].Abs()) },
		Operands: signed(1),
	})
	register(Operation{
		Name: "gcd", Arity: 2, Usage: "<x> <y>", Summary: "greatest common divisor of |x| and |y|",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return one(a[0].Gcd(a[1])) },
		Operands: gcdOperands,
	})
	register(Operation{
		Name: "pow", Arity: 2, Usage: "<x> <e>", Summary: "x ** e for e >= 0",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return fallible(a[0].PowBig(a[1])) },
		Operands: powOperands,
	})
	register(Operation{
		Name: "modpow", Arity: 3, Usage: "<x> <e> <m>", Summary: "x ** e mod m for e >= 0, m > 0",
		Eval: func(a []bigint.BigInteger) ([]bigint.BigInteger, error) {
			return fallible(a[0].ModPow(a[1], a[2]))
		},
		Operands: modPowOperands,
	})
	register(Operation{
		Name: "sqrt", Arity: 1, Usage: "<x>", Summary: "integer square root",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return fallible(a[0].Sqrt()) },
		Operands: radicand,
	})
	register(Operation{
		Name: "sqrtrem", Arity: 1, Usage: "<x>", Summary: "integer square root and remainder",
		Eval:     func(a []bigint.BigInteger) ([]bigint.BigInteger, error) { return pair(a[0].SqrtRem()) },
		Operands: radicand,
	})
	register(Operation{
		Name: "shl", Arity: 2, Usage: "<x> <n>", Summary: "x << n (negative n shifts right)",
		Eval: func(a []bigint.BigInteger) ([]bigint.BigInteger, error) {
			n, err := shiftCount("shl", a[1])
			if err != nil {
				return nil, err
			}
			return one(a[0].ShiftLeft(n))
		},
		Operands: shiftOperands,
	})
	register(Operation{
		Name: "shr", Arity: 2, Usage: "<x> <n>", Summary: "x >> n, rounding toward negative infinity",
		Eval: func(a []bigint.BigInteger) ([]bigint.BigInteger, error) {
			n, err := shiftCount("shr", a[1])
			if err != nil {
				return nil, err
			}
			return one(a[0].ShiftRight(n))
		},
		Operands: shiftOperands,
	})
	register(Operation{
		Name: "bitlen", Arity: 1, Usage: "<x>", Summary: "two's-complement bit length, excluding the sign bit",
		Eval: func(a []bigint.BigInteger) ([]bigint.BigInteger, error) {
			return one(bigint.NewInt64(int64(a[0].BitLength())))
		},
		Operands: signed(1),
	})
	register(Operation{
		Name: "digits", Arity: 1, Usage: "<x>", Summary: "number of decimal digits of |x|",
		Eval: func(a []bigint.BigInteger) ([]bigint.BigInteger, error) {
			return one(bigint.NewInt64(int64(a[0].DigitCount())))
		},
		Operands: signed(1),
	})
	register(Operation{
		Name: "cmp", Arity: 2, Usage: "<x> <y>", Summary: "-1, 0 or 1 as x <, ==, > y",
		Eval: func(a []bigint.BigInteger) ([]bigint.BigInteger, error) {
			return one(bigint.NewInt64(int64(a[0].Compare(a[1]))))
		},
		Operands: cmpOperands,
	})
	register(Operation{
		Name: "lowbit", Arity: 1, Usage: "<x>", Summary: "index of the lowest set bit, -1 for 0",
		Eval: func(a []bigint.BigInteger) ([]bigint.BigInteger, error) {
			return one(bigint.NewInt64(int64(a[0].LowestSetBit())))
		},
		Operands: signed(1),
	})
	register(Operation{
		Name: "testbit", Arity: 2, Usage: "<x> <i>", Summary: "bit i of the two's complement of x",
		Eval: func(a []bigint.BigInteger) ([]bigint.BigInteger, error) {
			n, err := bitIndex("testbit", a[1])
			if err != nil {
				return nil, err
			}
			return one(boolInt(a[0].TestBit(n)))
		},
		Operands: bitOperands,
	})
	register(Operation{
		Name: "setbit", Arity: 2, Usage: "<x> <i>", Summary: "x with bit i set",
		Eval:     withBit("setbit", bigint.BigInteger.SetBit),
		Operands: bitOperands,
	})
	register(Operation{
		Name: "clearbit", Arity: 2, Usage: "<x> <i>", Summary: "x with bit i cleared",
		Eval:     withBit("clearbit", bigint.BigInteger.ClearBit),
		Operands: bitOperands,
	})
	register(Operation{
		Name: "flipbit", Arity: 2, Usage: "<x> <i>", Summary: "x with bit i inverted",
		Eval:     withBit("flipbit", bigint.BigInteger.FlipBit),
		Operands: bitOperands,
	})
	register(Operation{
		Name: "scale10", Arity: 2, Usage: "<x> <k>", Summary: "x * 10^k, truncating division for negative k",
		Eval: func(a []bigint.BigInteger) ([]bigint.BigInteger, error) {
			k, err := a[1].Int32()
			if err != nil {
				return nil, apperrors.NewArithmeticError("scale10", bigint.ErrOverflow)
			}
			return one(a[0].ScaleByPow10(int(k)))
		},
		Operands: scaleOperands,
	})
}

// Describe renders "name usage  summary" for help output.
func (op Operation) Describe() string {
	return fmt.Sprintf("%-9s %-14s %s", op.Name, op.Usage, op.Summary)
}

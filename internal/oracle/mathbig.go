package oracle

import (
	"math"
	"math/big"

	"github.com/agbru/bigint"
)

func init() {
	Register(MathBigName, func() Oracle { return MathBig{} })
}

// MathBigName is the registry name of the math/big oracle.
const MathBigName = "math/big"

// MathBig evaluates every catalog operation with math/big.
type MathBig struct{}

// Name returns "math/big".
func (MathBig) Name() string { return MathBigName }

// Supports reports whether op is implemented.
func (MathBig) Supports(op string) bool {
	_, ok := mathBigOps[op]
	return ok
}

// Evaluate runs op on math/big copies of the operands.
func (MathBig) Evaluate(op string, args []bigint.BigInteger) ([]bigint.BigInteger, error) {
	f, ok := mathBigOps[op]
	if !ok {
		return nil, ErrUnsupported
	}
	in := make([]*big.Int, len(args))
	for i, a := range args {
		in[i] = ToBig(a)
	}
	res, err := f(in)
	if err != nil {
		return nil, err
	}
	out := make([]bigint.BigInteger, len(res))
	for i, r := range res {
		out[i] = FromBig(r)
	}
	return out, nil
}

// ToBig converts through the magnitude bytes.
func ToBig(x bigint.BigInteger) *big.Int {
	b := new(big.Int).SetBytes(x.Abs().Bytes(false))
	if x.Sign() < 0 {
		b.Neg(b)
	}
	return b
}

// FromBig converts through the magnitude bytes.
func FromBig(b *big.Int) bigint.BigInteger {
	x := bigint.FromBytes(append([]byte{0}, b.Bytes()...), false)
	if b.Sign() < 0 {
		return x.Negate()
	}
	return x
}

// maxExponentBits matches the engine: larger exponents of a base other than
// 0 and ±1 cannot produce a representable result.
const maxExponentBits = 48

type bigOp func(a []*big.Int) ([]*big.Int, error)

func single(z *big.Int) ([]*big.Int, error) { return []*big.Int{z}, nil }

func small(v int64) ([]*big.Int, error) { return single(big.NewInt(v)) }

// int32Arg mirrors the engine's conversion of shift and scale operands.
func int32Arg(x *big.Int) (int, error) {
	if !x.IsInt64() || x.Int64() < math.MinInt32 || x.Int64() > math.MaxInt32 {
		return 0, bigint.ErrOverflow
	}
	return int(x.Int64()), nil
}

func bitArg(x *big.Int) (int, error) {
	if x.Sign() < 0 {
		return 0, bigint.ErrInvalidArgument
	}
	if !x.IsInt64() {
		return 0, bigint.ErrOverflow
	}
	return int(x.Int64()), nil
}

func shift(x *big.Int, n int) *big.Int {
	if n >= 0 {
		return new(big.Int).Lsh(x, uint(n))
	}
	return new(big.Int).Rsh(x, uint(-n))
}

func pow10(k int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
}

// twosBitLen is the two's-complement bit length excluding the sign bit.
func twosBitLen(x *big.Int) int {
	if x.Sign() >= 0 {
		return x.BitLen()
	}
	t := new(big.Int).Neg(x)
	return t.Sub(t, big.NewInt(1)).BitLen()
}

var mathBigOps = map[string]bigOp{
	"add": func(a []*big.Int) ([]*big.Int, error) { return single(new(big.Int).Add(a[0], a[1])) },
	"sub": func(a []*big.Int) ([]*big.Int, error) { return single(new(big.Int).Sub(a[0], a[1])) },
	"mul": func(a []*big.Int) ([]*big.Int, error) { return single(new(big.Int).Mul(a[0], a[1])) },
	"sqr": func(a []*big.Int) ([]*big.Int, error) { return single(new(big.Int).Mul(a[0], a[0])) },
	"div": func(a []*big.Int) ([]*big.Int, error) {
		if a[1].Sign() == 0 {
			return nil, bigint.ErrDivideByZero
		}
		return single(new(big.Int).Quo(a[0], a[1]))
	},
	"rem": func(a []*big.Int) ([]*big.Int, error) {
		if a[1].Sign() == 0 {
			return nil, bigint.ErrDivideByZero
		}
		return single(new(big.Int).Rem(a[0], a[1]))
	},
	"mod": func(a []*big.Int) ([]*big.Int, error) {
		if a[1].Sign() == 0 {
			return nil, bigint.ErrDivideByZero
		}
		return single(new(big.Int).Mod(a[0], a[1]))
	},
	"divrem": func(a []*big.Int) ([]*big.Int, error) {
		if a[1].Sign() == 0 {
			return nil, bigint.ErrDivideByZero
		}
		q, r := new(big.Int).QuoRem(a[0], a[1], new(big.Int))
		return []*big.Int{q, r}, nil
	},
	"neg": func(a []*big.Int) ([]*big.Int, error) { return single(new(big.Int).Neg(a[0])) },
	"abs": func(a []*big.Int) ([]*big.Int, error) { return single(new(big.Int).Abs(a[0])) },
	"gcd": func(a []*big.Int) ([]*big.Int, error) { return single(new(big.Int).GCD(nil, nil, a[0], a[1])) },
	"pow": func(a []*big.Int) ([]*big.Int, error) {
		if a[1].Sign() < 0 {
			return nil, bigint.ErrInvalidArgument
		}
		if a[1].BitLen() > maxExponentBits && new(big.Int).Abs(a[0]).Cmp(big.NewInt(1)) > 0 {
			return nil, bigint.ErrOverflow
		}
		return single(new(big.Int).Exp(a[0], a[1], nil))
	},
	"modpow": func(a []*big.Int) ([]*big.Int, error) {
		x, e, m := a[0], a[1], a[2]
		switch {
		case m.Sign() == 0:
			return nil, bigint.ErrDivideByZero
		case m.Sign() < 0, e.Sign() < 0:
			return nil, bigint.ErrInvalidArgument
		case m.Cmp(big.NewInt(1)) == 0:
			return small(0)
		}
		return single(new(big.Int).Exp(x, e, m))
	},
	"sqrt": func(a []*big.Int) ([]*big.Int, error) {
		if a[0].Sign() < 0 {
			return nil, bigint.ErrInvalidArgument
		}
		return single(new(big.Int).Sqrt(a[0]))
	},
	"sqrtrem": func(a []*big.Int) ([]*big.Int, error) {
		if a[0].Sign() < 0 {
			return nil, bigint.ErrInvalidArgument
		}
		s := new(big.Int).Sqrt(a[0])
		r := new(big.Int).Mul(s, s)
		return []*big.Int{s, r.Sub(a[0], r)}, nil
	},
	"shl": func(a []*big.Int) ([]*big.Int, error) {
		n, err := int32Arg(a[1])
		if err != nil {
			return nil, err
		}
		return single(shift(a[0], n))
	},
	"shr": func(a []*big.Int) ([]*big.Int, error) {
		n, err := int32Arg(a[1])
		if err != nil {
			return nil, err
		}
		return single(shift(a[0], -n))
	},
	"bitlen": func(a []*big.Int) ([]*big.Int, error) { return small(int64(twosBitLen(a[0]))) },
	"digits": func(a []*big.Int) ([]*big.Int, error) {
		return small(int64(len(new(big.Int).Abs(a[0]).String())))
	},
	"cmp": func(a []*big.Int) ([]*big.Int, error) { return small(int64(a[0].Cmp(a[1]))) },
	"lowbit": func(a []*big.Int) ([]*big.Int, error) {
		if a[0].Sign() == 0 {
			return small(-1)
		}
		return small(int64(a[0].TrailingZeroBits()))
	},
	"testbit": func(a []*big.Int) ([]*big.Int, error) {
		i, err := bitArg(a[1])
		if err != nil {
			return nil, err
		}
		return small(int64(a[0].Bit(i)))
	},
	"setbit": func(a []*big.Int) ([]*big.Int, error) {
		i, err := bitArg(a[1])
		if err != nil {
			return nil, err
		}
		return single(new(big.Int).SetBit(a[0], i, 1))
	},
	"clearbit": func(a []*big.Int) ([]*big.Int, error) {
		i, err := bitArg(a[1])
		if err != nil {
			return nil, err
		}
		return single(new(big.Int).SetBit(a[0], i, 0))
	},
	"flipbit": func(a []*big.Int) ([]*big.Int, error) {
		i, err := bitArg(a[1])
		if err != nil {
			return nil, err
		}
		return single(new(big.Int).SetBit(a[0], i, a[0].Bit(i)^1))
	},
	"scale10": func(a []*big.Int) ([]*big.Int, error) {
		k, err := int32Arg(a[1])
		if err != nil {
			return nil, err
		}
		if k >= 0 {
			return single(new(big.Int).Mul(a[0], pow10(k)))
		}
		return single(new(big.Int).Quo(a[0], pow10(-k)))
	},
}

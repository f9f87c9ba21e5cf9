//go:build gmp

// The GMP oracle needs cgo and libgmp, so it is opt-in:
//
//	go build -tags=gmp ./cmd/bigcalc
//
// Debian/Ubuntu: apt-get install libgmp-dev. macOS: brew install gmp.

package oracle

import (
	"github.com/ncw/gmp"

	"github.com/agbru/bigint"
)

func init() {
	Register(GMPName, func() Oracle { return GMP{} })
}

// GMPName is the registry name of the GMP oracle.
const GMPName = "gmp"

// GMP evaluates the arithmetic subset of the catalog with libgmp.
type GMP struct{}

// Name returns "gmp".
func (GMP) Name() string { return GMPName }

// Supports reports whether op is implemented.
func (GMP) Supports(op string) bool {
	_, ok := gmpOps[op]
	return ok
}

// Evaluate runs op on GMP copies of the operands.
func (GMP) Evaluate(op string, args []bigint.BigInteger) ([]bigint.BigInteger, error) {
	f, ok := gmpOps[op]
	if !ok {
		return nil, ErrUnsupported
	}
	in := make([]*gmp.Int, len(args))
	for i, a := range args {
		in[i] = toGMP(a)
	}
	res, err := f(in)
	if err != nil {
		return nil, err
	}
	out := make([]bigint.BigInteger, len(res))
	for i, r := range res {
		out[i] = fromGMP(r)
	}
	return out, nil
}

func toGMP(x bigint.BigInteger) *gmp.Int {
	z := gmp.NewInt(0)
	z.SetBytes(x.Abs().Bytes(false))
	if x.Sign() < 0 {
		z.Neg(z)
	}
	return z
}

func fromGMP(z *gmp.Int) bigint.BigInteger {
	x := bigint.FromBytes(append([]byte{0}, z.Bytes()...), false)
	if z.Sign() < 0 {
		return x.Negate()
	}
	return x
}

type gmpOp func(a []*gmp.Int) ([]*gmp.Int, error)

func gmpSingle(z *gmp.Int) ([]*gmp.Int, error) { return []*gmp.Int{z}, nil }

func gmpSmallInt(x *gmp.Int, limit int64) (int64, bool) {
	lo, hi := gmp.NewInt(-limit), gmp.NewInt(limit)
	if x.Cmp(lo) < 0 || x.Cmp(hi) > 0 {
		return 0, false
	}
	return x.Int64(), true
}

func gmpShift(x *gmp.Int, n int64) *gmp.Int {
	if n >= 0 {
		return gmp.NewInt(0).Lsh(x, uint(n))
	}
	return gmp.NewInt(0).Rsh(x, uint(-n))
}

var gmpOps = map[string]gmpOp{
	"add": func(a []*gmp.Int) ([]*gmp.Int, error) { return gmpSingle(gmp.NewInt(0).Add(a[0], a[1])) },
	"sub": func(a []*gmp.Int) ([]*gmp.Int, error) { return gmpSingle(gmp.NewInt(0).Sub(a[0], a[1])) },
	"mul": func(a []*gmp.Int) ([]*gmp.Int, error) { return gmpSingle(gmp.NewInt(0).Mul(a[0], a[1])) },
	"sqr": func(a []*gmp.Int) ([]*gmp.Int, error) { return gmpSingle(gmp.NewInt(0).Mul(a[0], a[0])) },
	"div": func(a []*gmp.Int) ([]*gmp.Int, error) {
		if a[1].Sign() == 0 {
			return nil, bigint.ErrDivideByZero
		}
		return gmpSingle(gmp.NewInt(0).Quo(a[0], a[1]))
	},
	"rem": func(a []*gmp.Int) ([]*gmp.Int, error) {
		if a[1].Sign() == 0 {
			return nil, bigint.ErrDivideByZero
		}
		return gmpSingle(gmp.NewInt(0).Rem(a[0], a[1]))
	},
	"mod": func(a []*gmp.Int) ([]*gmp.Int, error) {
		if a[1].Sign() == 0 {
			return nil, bigint.ErrDivideByZero
		}
		return gmpSingle(gmp.NewInt(0).Mod(a[0], a[1]))
	},
	"divrem": func(a []*gmp.Int) ([]*gmp.Int, error) {
		if a[1].Sign() == 0 {
			return nil, bigint.ErrDivideByZero
		}
		q, r := gmp.NewInt(0).QuoRem(a[0], a[1], gmp.NewInt(0))
		return []*gmp.Int{q, r}, nil
	},
	"neg": func(a []*gmp.Int) ([]*gmp.Int, error) { return gmpSingle(gmp.NewInt(0).Neg(a[0])) },
	"abs": func(a []*gmp.Int) ([]*gmp.Int, error) { return gmpSingle(gmp.NewInt(0).Abs(a[0])) },
	"gcd": func(a []*gmp.Int) ([]*gmp.Int, error) {
		// mpz_gcd wants positive inputs through this binding.
		x, y := gmp.NewInt(0).Abs(a[0]), gmp.NewInt(0).Abs(a[1])
		switch {
		case x.Sign() == 0:
			return gmpSingle(y)
		case y.Sign() == 0:
			return gmpSingle(x)
		}
		return gmpSingle(gmp.NewInt(0).GCD(nil, nil, x, y))
	},
	"pow": func(a []*gmp.Int) ([]*gmp.Int, error) {
		if a[1].Sign() < 0 {
			return nil, bigint.ErrInvalidArgument
		}
		if a[1].BitLen() > maxExponentBits && gmp.NewInt(0).Abs(a[0]).Cmp(gmp.NewInt(1)) > 0 {
			return nil, bigint.ErrOverflow
		}
		return gmpSingle(gmp.NewInt(0).Exp(a[0], a[1], nil))
	},
	"modpow": func(a []*gmp.Int) ([]*gmp.Int, error) {
		x, e, m := a[0], a[1], a[2]
		switch {
		case m.Sign() == 0:
			return nil, bigint.ErrDivideByZero
		case m.Sign() < 0, e.Sign() < 0:
			return nil, bigint.ErrInvalidArgument
		case m.Cmp(gmp.NewInt(1)) == 0:
			return gmpSingle(gmp.NewInt(0))
		}
		z := gmp.NewInt(0).Exp(x, e, m)
		// Normalize into [0, m) whatever sign convention the binding uses.
		return gmpSingle(z.Mod(z, m))
	},
	"shl": func(a []*gmp.Int) ([]*gmp.Int, error) {
		n, ok := gmpSmallInt(a[1], 1<<31-1)
		if !ok {
			return nil, bigint.ErrOverflow
		}
		return gmpSingle(gmpShift(a[0], n))
	},
	"shr": func(a []*gmp.Int) ([]*gmp.Int, error) {
		n, ok := gmpSmallInt(a[1], 1<<31-1)
		if !ok {
			return nil, bigint.ErrOverflow
		}
		return gmpSingle(gmpShift(a[0], -n))
	},
	"cmp": func(a []*gmp.Int) ([]*gmp.Int, error) { return gmpSingle(gmp.NewInt(int64(a[0].Cmp(a[1])))) },
}

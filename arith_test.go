package bigint

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand/v2"
	"testing"
)

func TestAddSubtractMatchesBig(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(1, 2))
	for i := range 300 {
		a, b := randBig(r, 6), randBig(r, 6)
		x, y := fromBig(a), fromBig(b)
		if got, want := toBig(t, x.Add(y)), new(big.Int).Add(a, b); got.Cmp(want) != 0 {
			t.Fatalf("case %d: %s + %s = %s, want %s", i, a, b, got, want)
		}
		if got, want := toBig(t, x.Subtract(y)), new(big.Int).Sub(a, b); got.Cmp(want) != 0 {
			t.Fatalf("case %d: %s - %s = %s, want %s", i, a, b, got, want)
		}
	}
}

func TestAddCancellation(t *testing.T) {
	t.Parallel()
	x := MustParse("-1267650600228229401496703205376")
	if s := x.Add(x.Negate()); !s.IsZero() || s.Sign() != 0 {
		t.Errorf("x + -x = %s", s)
	}
	if d := x.Subtract(x); !d.IsZero() {
		t.Errorf("x - x = %s", d)
	}
}

func TestMultiplyMatchesBig(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(5, 6))
	th := KaratsubaThreshold()
	// Lengths straddle the Karatsuba threshold, measured in 64-bit words.
	sizes := [][2]int{{0, 3}, {1, 1}, {th - 1, th - 1}, {th, th}, {th + 1, th + 1}, {th, 4*th + 1}, {90, 91}}
	for _, s := range sizes {
		t.Run(fmt.Sprintf("%dx%d", s[0], s[1]), func(t *testing.T) {
			a, b := randWords(r, s[0]), randWords(r, s[1])
			x, y := fromBig(a), fromBig(b)
			want := new(big.Int).Mul(a, b)
			if got := toBig(t, x.Multiply(y)); got.Cmp(want) != 0 {
				t.Errorf("x*y mismatch")
			}
			if got := toBig(t, y.Multiply(x)); got.Cmp(want) != 0 {
				t.Errorf("y*x mismatch")
			}
			if !x.Square().Equal(x.Multiply(x)) {
				t.Errorf("Square(x) != x*x")
			}
			if !x.Square().Equal(x.Multiply(fromBig(a))) {
				t.Errorf("Square(x) != x*copy(x)")
			}
		})
	}
}

// randWords returns a random signed value of exactly n 64-bit words.
func randWords(r *rand.Rand, n int) *big.Int {
	b := new(big.Int)
	for range n {
		b.Lsh(b, 64)
		b.Or(b, new(big.Int).SetUint64(r.Uint64()|1<<63))
	}
	if r.IntN(2) == 0 {
		b.Neg(b)
	}
	return b
}

func TestDivisionMatchesBig(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(7, 8))
	for i := range 400 {
		a, b := randBig(r, 8), randBig(r, 4)
		if b.Sign() == 0 {
			continue
		}
		x, y := fromBig(a), fromBig(b)
		q, rem, err := x.DivRem(y)
		if err != nil {
			t.Fatalf("case %d: DivRem: %v", i, err)
		}
		wq, wr := new(big.Int).QuoRem(a, b, new(big.Int))
		if toBig(t, q).Cmp(wq) != 0 || toBig(t, rem).Cmp(wr) != 0 {
			t.Fatalf("case %d: %s / %s = (%s, %s), want (%s, %s)", i, a, b, q, rem, wq, wr)
		}
		// Division identity and remainder sign.
		if !q.Multiply(y).Add(rem).Equal(x) {
			t.Fatalf("case %d: q*y + r != x", i)
		}
		if !rem.IsZero() && rem.Sign() != x.Sign() {
			t.Fatalf("case %d: remainder sign %d, dividend sign %d", i, rem.Sign(), x.Sign())
		}
		mod, _ := x.Mod(y)
		if wm := new(big.Int).Mod(a, b); toBig(t, mod).Cmp(wm) != 0 {
			t.Fatalf("case %d: %s mod %s = %s, want %s", i, a, b, mod, wm)
		}
	}
}

func TestDivideByZero(t *testing.T) {
	t.Parallel()
	x := NewInt64(42)
	checks := map[string]error{}
	_, checks["Divide"] = x.Divide(Zero)
	_, checks["Remainder"] = x.Remainder(Zero)
	_, checks["Mod"] = x.Mod(Zero)
	_, _, checks["DivRem"] = x.DivRem(Zero)
	_, checks["ModPow"] = x.ModPow(One, Zero)
	for name, err := range checks {
		if !errors.Is(err, ErrDivideByZero) {
			t.Errorf("%s by zero: error = %v, want ErrDivideByZero", name, err)
		}
	}
}

func TestPow(t *testing.T) {
	t.Parallel()
	tests := []struct {
		base string
		exp  uint64
		want string
	}{
		{"0", 0, "1"},
		{"0", 5, "0"},
		{"7", 0, "1"},
		{"7", 1, "7"},
		{"-3", 2, "9"},
		{"-3", 3, "-27"},
		{"2", 100, "1267650600228229401496703205376"},
		{"-10", 21, "-1000000000000000000000"},
		{"12345678901234567890", 4, "23230572289118153328333583928030329684079829544396666111742077337982514410000"},
	}
	for _, tt := range tests {
		got := MustParse(tt.base).Pow(tt.exp)
		if got.String() != tt.want {
			t.Errorf("%s**%d = %s, want %s", tt.base, tt.exp, got, tt.want)
		}
	}
}

func TestPowBig(t *testing.T) {
	t.Parallel()
	if _, err := NewInt64(2).PowBig(NewInt64(-1)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative exponent: error = %v, want ErrInvalidArgument", err)
	}
	huge := One.ShiftLeft(100)
	if _, err := NewInt64(3).PowBig(huge); !errors.Is(err, ErrOverflow) {
		t.Errorf("2^100 exponent: error = %v, want ErrOverflow", err)
	}
	tests := []struct {
		base, want string
		exp        BigInteger
	}{
		{"1", "1", huge},
		{"-1", "1", huge},
		{"-1", "-1", huge.Add(One)},
		{"0", "0", huge},
		{"5", "1", Zero},
		{"3", "3486784401", NewInt64(20)},
	}
	for _, tt := range tests {
		got, err := MustParse(tt.base).PowBig(tt.exp)
		if err != nil || got.String() != tt.want {
			t.Errorf("%s**%s = %s, %v; want %s", tt.base, tt.exp, got, err, tt.want)
		}
	}
}

func TestModPowMatchesBig(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(9, 10))
	for i := range 100 {
		a, e, m := randBig(r, 4), randBig(r, 2), randBig(r, 3)
		e.Abs(e)
		m.Abs(m)
		if m.Sign() == 0 {
			m.SetInt64(97)
		}
		got, err := fromBig(a).ModPow(fromBig(e), fromBig(m))
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		// math/big Exp with a negative base returns a value in (-m, m); fold
		// it into [0, m).
		want := new(big.Int).Exp(a, e, m)
		want.Mod(want, m)
		if toBig(t, got).Cmp(want) != 0 {
			t.Fatalf("case %d: %s**%s mod %s = %s, want %s", i, a, e, m, got, want)
		}
	}
}

func TestModPowEdgeCases(t *testing.T) {
	t.Parallel()
	if _, err := NewInt64(2).ModPow(NewInt64(3), NewInt64(-5)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative modulus: error = %v", err)
	}
	if _, err := NewInt64(2).ModPow(NewInt64(-3), NewInt64(5)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative exponent: error = %v", err)
	}
	if v, _ := NewInt64(2).ModPow(NewInt64(10), One); !v.IsZero() {
		t.Errorf("x**e mod 1 = %s, want 0", v)
	}
	if v, _ := NewInt64(10).ModPow(Zero, NewInt64(7)); v.String() != "1" {
		t.Errorf("x**0 mod 7 = %s, want 1", v)
	}
	if v, _ := NewInt64(-2).ModPow(NewInt64(3), NewInt64(5)); v.String() != "2" {
		t.Errorf("(-2)**3 mod 5 = %s, want 2", v)
	}
}

func TestGcd(t *testing.T) {
	t.Parallel()
	tests := []struct{ a, b, want string }{
		{"0", "0", "0"},
		{"0", "-12", "12"},
		{"-12", "0", "12"},
		{"1", "123456789", "1"},
		{"270", "192", "6"},
		{"-270", "192", "6"},
		{"17", "17", "17"},
		{"1234567890123456789012345678901234567890", "9876543210987654321098765432109876543210", "90000000009000000000900000000090"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.a).Gcd(MustParse(tt.b)); got.String() != tt.want {
			t.Errorf("gcd(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGcdMatchesBig(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(11, 12))
	for i := range 100 {
		a, b := randBig(r, 5), randBig(r, 5)
		got := toBig(t, fromBig(a).Gcd(fromBig(b)))
		want := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
		if got.Cmp(want) != 0 {
			t.Fatalf("case %d: gcd(%s, %s) = %s, want %s", i, a, b, got, want)
		}
	}
}

func TestSqrt(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(13, 14))
	for i := range 100 {
		a := randBig(r, 6)
		a.Abs(a)
		s, rem, err := fromBig(a).SqrtRem()
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if want := new(big.Int).Sqrt(a); toBig(t, s).Cmp(want) != 0 {
			t.Fatalf("case %d: sqrt(%s) = %s, want %s", i, a, s, want)
		}
		if !s.Square().Add(rem).Equal(fromBig(a)) || rem.Sign() < 0 {
			t.Fatalf("case %d: s² + r != x", i)
		}
	}
	if _, err := NewInt64(-4).Sqrt(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("sqrt(-4): error = %v, want ErrInvalidArgument", err)
	}
	for _, v := range []int64{0, 1, 2, 3, 4, 15, 16, 17} {
		s, _ := NewInt64(v).Sqrt()
		want := new(big.Int).Sqrt(big.NewInt(v))
		if toBig(t, s).Cmp(want) != 0 {
			t.Errorf("sqrt(%d) = %s, want %s", v, s, want)
		}
	}
}

func TestNegateAbs(t *testing.T) {
	t.Parallel()
	x := MustParse("-36893488147419103232")
	if x.Negate().String() != "36893488147419103232" || x.Abs().String() != "36893488147419103232" {
		t.Errorf("Negate/Abs of %s = %s, %s", x, x.Negate(), x.Abs())
	}
	if !x.Negate().Negate().Equal(x) {
		t.Error("double negation changed the value")
	}
}

func TestKaratsubaThresholdRoundTrip(t *testing.T) {
	// Not parallel: the threshold is process-wide.
	prev := SetKaratsubaThreshold(4)
	defer SetKaratsubaThreshold(prev)

	r := rand.New(rand.NewPCG(15, 16))
	a, b := randWords(r, 37), randWords(r, 53)
	if got := toBig(t, fromBig(a).Multiply(fromBig(b))); got.Cmp(new(big.Int).Mul(a, b)) != 0 {
		t.Error("product with threshold 4 differs from math/big")
	}
	if KaratsubaThreshold() != 4 {
		t.Errorf("KaratsubaThreshold() = %d, want 4", KaratsubaThreshold())
	}
}

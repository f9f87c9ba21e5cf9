package bigint

import (
	"errors"
	"math"
	"math/big"
	"math/rand/v2"
	"testing"
)

// toBig converts through the decimal form.
func toBig(t testing.TB, x BigInteger) *big.Int {
	t.Helper()
	b, ok := new(big.Int).SetString(x.String(), 10)
	if !ok {
		t.Fatalf("math/big cannot parse %q", x.String())
	}
	return b
}

// fromBig builds a BigInteger from the two's-complement bytes of b, so it
// does not depend on the decimal parser.
func fromBig(b *big.Int) BigInteger {
	switch b.Sign() {
	case 0:
		return Zero
	case 1:
		mag := b.Bytes()
		return FromBytes(append([]byte{0}, mag...), false)
	}
	// -b - 1 has the same bit pattern as ^b.
	m := new(big.Int).Neg(b)
	m.Sub(m, big.NewInt(1))
	raw := m.Bytes()
	enc := make([]byte, len(raw)+1)
	enc[0] = 0xFF
	for i, c := range raw {
		enc[i+1] = ^c
	}
	return FromBytes(enc, false)
}

// randBig returns a random signed value of up to maxWords 64-bit words.
func randBig(r *rand.Rand, maxWords int) *big.Int {
	n := r.IntN(maxWords + 1)
	buf := make([]byte, 8*n)
	for i := range buf {
		buf[i] = byte(r.Uint32())
	}
	b := new(big.Int).SetBytes(buf)
	if r.IntN(2) == 0 {
		b.Neg(b)
	}
	return b
}

func TestZeroValue(t *testing.T) {
	t.Parallel()
	var z BigInteger
	if !z.IsZero() || z.Sign() != 0 || z.String() != "0" {
		t.Errorf("zero value = %v (sign %d), want 0", z, z.Sign())
	}
	if !z.Equal(Zero) || !z.Equal(NewInt64(0)) {
		t.Error("zero value is not equal to Zero")
	}
	if z.Negate().Sign() != 0 {
		t.Error("-0 must not be negative")
	}
	if z.Hash() != NewInt64(0).Hash() {
		t.Error("hash of zero value differs from NewInt64(0)")
	}
}

func TestNewInt64(t *testing.T) {
	t.Parallel()
	tests := []int64{0, 1, -1, 42, -42, math.MaxInt32, math.MinInt32, math.MaxInt64, math.MinInt64}
	for _, v := range tests {
		x := NewInt64(v)
		if got := toBig(t, x); got.Cmp(big.NewInt(v)) != 0 {
			t.Errorf("NewInt64(%d) = %s", v, got)
		}
		back, err := x.Int64()
		if err != nil || back != v {
			t.Errorf("NewInt64(%d).Int64() = %d, %v", v, back, err)
		}
		if !x.IsInt64() {
			t.Errorf("NewInt64(%d).IsInt64() = false", v)
		}
	}
}

func TestNewUint64(t *testing.T) {
	t.Parallel()
	for _, v := range []uint64{0, 1, 1 << 32, 1<<63 + 5, math.MaxUint64} {
		x := NewUint64(v)
		if got := toBig(t, x); got.Cmp(new(big.Int).SetUint64(v)) != 0 {
			t.Errorf("NewUint64(%d) = %s", v, got)
		}
		back, err := x.Uint64()
		if err != nil || back != v {
			t.Errorf("NewUint64(%d).Uint64() = %d, %v", v, back, err)
		}
	}
}

func TestNarrowingOverflow(t *testing.T) {
	t.Parallel()
	big64 := NewUint64(math.MaxUint64)
	tests := []struct {
		name string
		fn   func() error
	}{
		{"Int64 of 2^64-1", func() error { _, err := big64.Int64(); return err }},
		{"Int64 of 2^63", func() error { _, err := NewUint64(1 << 63).Int64(); return err }},
		{"Int64 of -2^63-1", func() error { _, err := NewInt64(math.MinInt64).Subtract(One).Int64(); return err }},
		{"Int32 of 2^31", func() error { _, err := NewInt64(1 << 31).Int32(); return err }},
		{"Int32 of -2^31-1", func() error { _, err := NewInt64(math.MinInt32 - 1).Int32(); return err }},
		{"Uint64 of -1", func() error { _, err := NewInt64(-1).Uint64(); return err }},
		{"Uint64 of 2^64", func() error { _, err := big64.Add(One).Uint64(); return err }},
	}
	for _, tt := range tests {
		err := tt.fn()
		if !errors.Is(err, ErrOverflow) {
			t.Errorf("%s: error = %v, want ErrOverflow", tt.name, err)
		}
		var ae ArithmeticError
		if !errors.As(err, &ae) {
			t.Errorf("%s: error %T is not an ArithmeticError", tt.name, err)
		}
	}
	if v, err := NewInt64(math.MinInt32).Int32(); err != nil || v != math.MinInt32 {
		t.Errorf("Int32(MinInt32) = %d, %v", v, err)
	}
}

func TestSignPredicates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		v          int64
		sign       int
		even, zero bool
	}{
		{0, 0, true, true},
		{1, 1, false, false},
		{-1, -1, false, false},
		{2, 1, true, false},
		{-4, -1, true, false},
	}
	for _, tt := range tests {
		x := NewInt64(tt.v)
		if x.Sign() != tt.sign || x.IsEven() != tt.even || x.IsOdd() == tt.even || x.IsZero() != tt.zero {
			t.Errorf("%d: Sign=%d IsEven=%v IsOdd=%v IsZero=%v", tt.v, x.Sign(), x.IsEven(), x.IsOdd(), x.IsZero())
		}
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()
	values := []string{
		"-340282366920938463463374607431768211456",
		"-18446744073709551616",
		"-5",
		"0",
		"3",
		"18446744073709551615",
		"18446744073709551616",
		"340282366920938463463374607431768211456",
	}
	for i, a := range values {
		for j, b := range values {
			want := 0
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}
			if got := MustParse(a).Compare(MustParse(b)); got != want {
				t.Errorf("Compare(%s, %s) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	t.Parallel()
	a := MustParse("123456789012345678901234567890")
	b := MustParse("123456789012345678901234567889").Add(One)
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Errorf("equal values hash differently: %x vs %x", a.Hash(), b.Hash())
	}
	if a.Hash() == a.Negate().Hash() {
		t.Error("x and -x hash to the same value")
	}
}

func TestValuesAreImmutable(t *testing.T) {
	t.Parallel()
	x := MustParse("-98765432109876543210987654321")
	orig := x.String()
	_ = x.Add(x)
	_ = x.Multiply(x)
	_ = x.Negate()
	_ = x.Abs()
	_ = x.ShiftLeft(77)
	_ = x.ShiftRight(13)
	_ = x.SetBit(200)
	_ = x.FlipBit(3)
	_, _ = x.Mod(NewInt64(97))
	_ = x.Bytes(true)
	if x.String() != orig {
		t.Errorf("operand changed to %s, want %s", x, orig)
	}
}

// TestScenarios checks the worked examples the engine is documented with.
func TestScenarios(t *testing.T) {
	t.Parallel()

	const long = "-123456789012345678901234567890"
	if got := MustParse(long).String(); got != long {
		t.Errorf("round trip = %s, want %s", got, long)
	}

	sq := NewInt64(65536).Multiply(NewInt64(65536))
	if sq.String() != "4294967296" || sq.UnsignedBitLength() != 33 {
		t.Errorf("65536² = %s with %d bits", sq, sq.UnsignedBitLength())
	}

	p64 := One.ShiftLeft(64).Bytes(false)
	want := []byte{1, 0, 0, 0, 0, 0, 0, 0, 0}
	if string(p64) != string(want) {
		t.Errorf("Bytes(2^64) = % x, want % x", p64, want)
	}

	m7, two := NewInt64(-7), NewInt64(2)
	q, _ := m7.Divide(two)
	r, _ := m7.Remainder(two)
	mod, _ := m7.Mod(two)
	if q.String() != "-3" || r.String() != "-1" || mod.String() != "1" {
		t.Errorf("-7/2: q=%s r=%s mod=%s, want -3 -1 1", q, r, mod)
	}
	if s := m7.ShiftRight(1); s.String() != "-4" {
		t.Errorf("-7>>1 = %s, want -4", s)
	}

	if g := NewInt64(270).Gcd(NewInt64(192)); g.String() != "6" {
		t.Errorf("gcd(270, 192) = %s, want 6", g)
	}

	if s, _ := NewInt64(1000000).Sqrt(); s.String() != "1000" {
		t.Errorf("sqrt(1000000) = %s, want 1000", s)
	}
	if s, _ := NewInt64(999999).Sqrt(); s.String() != "999" {
		t.Errorf("sqrt(999999) = %s, want 999", s)
	}
}

package nat

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// checkDiv verifies q*v + r == u and r < v against math/big.
func checkDiv(t *testing.T, u, v []Word) {
	t.Helper()
	q, r := Div(u, v)
	bu, bv := toBig(u), toBig(v)
	wantQ, wantR := new(big.Int).QuoRem(bu, bv, new(big.Int))
	if toBig(q).Cmp(wantQ) != 0 || toBig(r).Cmp(wantR) != 0 {
		t.Fatalf("Div(%v, %v) = (%v, %v), want (%v, %v)", bu, bv, toBig(q), toBig(r), wantQ, wantR)
	}
	if len(q) > 0 && q[len(q)-1] == 0 || len(r) > 0 && r[len(r)-1] == 0 {
		t.Fatalf("Div returned unnormalized results: q=%v r=%v", q, r)
	}
}

func TestDivShortCircuits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		u, v  []Word
		wantQ int
	}{
		{"zero dividend", nil, []Word{7}, 0},
		{"shorter dividend", []Word{5}, []Word{1, 1}, 0},
		{"equal length smaller", []Word{1, 1}, []Word{2, 1}, 0},
		{"single limb divisor", []Word{0, 0, 1}, []Word{3}, 2},
		{"divide by one", []Word{9, 8}, []Word{1}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, _ := Div(tt.u, tt.v)
			if len(q) != tt.wantQ {
				t.Errorf("len(q) = %d, want %d", len(q), tt.wantQ)
			}
			checkDiv(t, tt.u, tt.v)
		})
	}
}

func TestDivZeroPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("Div by zero did not panic")
		}
	}()
	Div([]Word{1}, []Word{0, 0})
}

func TestDivMatchesBig(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(21, 22))
	for _, s := range [][2]int{{2, 2}, {3, 2}, {10, 3}, {40, 17}, {64, 32}, {200, 199}, {300, 5}} {
		t.Run(fmt.Sprintf("%d/%d", s[0], s[1]), func(t *testing.T) {
			for range 20 {
				checkDiv(t, randWords(r, s[0]), randWords(r, s[1]))
			}
		})
	}
}

func TestDivAllOnesDivisor(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(23, 24))
	for n := 2; n <= 6; n++ {
		v := make([]Word, n)
		for i := range v {
			v[i] = M
		}
		for range 50 {
			checkDiv(t, randWords(r, n+3), v)
		}
		// Top two limbs all ones, low limbs arbitrary.
		w := randWords(r, n)
		w[n-1], w[n-2] = M, M
		checkDiv(t, randWords(r, 2*n), w)
	}
	// Dividends made of all-ones limbs push every window to its maximum.
	u := make([]Word, 8)
	for i := range u {
		u[i] = M
	}
	checkDiv(t, u, []Word{M, M, M})
}

func TestDivCorrectionPath(t *testing.T) {
	t.Parallel()
	// Divisors with a lone top bit and a nonzero low limb force the
	// estimate refinement and correction steps.
	u := []Word{M, M, M, 0}
	v := []Word{1, 1 << (W - 1)}
	checkDiv(t, u, v)
	checkDiv(t, []Word{0, 0, 0, 1 << (W - 1)}, []Word{1, 0, 1 << (W - 1)})
}

func TestEstimateQuotient(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name               string
		u2, u1, u0, v1, v0 Word
		want               Word
	}{
		{"top equals divisor caps at max", 1 << (W - 1), 0, 0, 1 << (W - 1), 0, M},
		{"exact single step", 0, 1 << (W - 1), 0, 1 << (W - 1), 0, 1},
		{"all ones divisor reads dividend", 5, 9, 9, M, M, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := estimateQuotient(tt.u2, tt.u1, tt.u0, tt.v1, tt.v0); got != tt.want {
				t.Errorf("estimateQuotient = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDivIdentityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("q*v + r == u and r < v", prop.ForAll(
		func(a, b []uint64) bool {
			u, v := wordsOf(a), wordsOf(b)
			if len(v) == 0 {
				return true
			}
			q, r := Div(u, v)
			back := new(big.Int).Mul(toBig(q), toBig(v))
			back.Add(back, toBig(r))
			return back.Cmp(toBig(u)) == 0 && toBig(r).Cmp(toBig(v)) < 0
		},
		gen.SliceOf(gen.UInt64()),
		gen.SliceOfN(4, gen.UInt64()),
	))

	properties.TestingRun(t)
}

func FuzzDiv(f *testing.F) {
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, []byte{0x80, 0, 0, 0, 0, 0, 0, 0, 1})
	f.Add([]byte{1, 2, 3}, []byte{7})
	f.Fuzz(func(t *testing.T, a, b []byte) {
		bv := new(big.Int).SetBytes(b)
		if bv.Sign() == 0 {
			return
		}
		checkDiv(t, fromBig(new(big.Int).SetBytes(a)), fromBig(bv))
	})
}

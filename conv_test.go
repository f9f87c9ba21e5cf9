package bigint

import (
	"errors"
	"math/big"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"0", "0"},
		{"-0", "0"},
		{"+0", "0"},
		{"000123", "123"},
		{"+42", "42"},
		{"-42", "-42"},
		{"18446744073709551615", "18446744073709551615"},
		{"18446744073709551616", "18446744073709551616"},
		{"-10000000000000000000", "-10000000000000000000"},
		{"9999999999999999999", "9999999999999999999"},
		{"1" + strings.Repeat("0", 100), "1" + strings.Repeat("0", 100)},
	}
	for _, tt := range tests {
		x, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got := x.String(); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseRejects(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "-", "+", "12a", " 1", "1 ", "0x10", "1_000", "--1", "+-1", "١٢"} {
		_, err := Parse(in)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Parse(%q): error = %v, want ErrInvalidArgument", in, err)
			continue
		}
		var ne *NumberError
		if !errors.As(err, &ne) || ne.Func != "Parse" || ne.Input != in {
			t.Errorf("Parse(%q): error %#v does not record the input", in, err)
		}
	}
}

func TestParseSubstring(t *testing.T) {
	t.Parallel()
	const s = "x=-12345;"
	x, err := ParseSubstring(s, 2, 8)
	if err != nil || x.String() != "-12345" {
		t.Errorf("ParseSubstring(%q, 2, 8) = %s, %v", s, x, err)
	}
	for _, r := range [][2]int{{-1, 3}, {3, 2}, {0, len(s) + 1}, {0, 2}, {8, 8}} {
		if _, err := ParseSubstring(s, r[0], r[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseSubstring(%q, %d, %d): error = %v, want ErrInvalidArgument", s, r[0], r[1], err)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on malformed input")
		}
	}()
	_ = MustParse("nope")
}

func TestStringMatchesBig(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(31, 32))
	for i := range 200 {
		a := randBig(r, 10)
		if got := fromBig(a).String(); got != a.String() {
			t.Fatalf("case %d: String = %s, want %s", i, got, a.String())
		}
	}
}

func TestStringGroupPadding(t *testing.T) {
	t.Parallel()
	// Inner digit groups that start with zeros must keep them.
	for _, s := range []string{
		"100000000000000000000000000000000000001",
		"-18446744073709551616000000000000000000000",
		"340282366920938463463374607431768211456",
	} {
		if got := MustParse(s).String(); got != s {
			t.Errorf("round trip of %s = %s", s, got)
		}
	}
}

func TestDigitCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want int
	}{
		{"0", 1},
		{"9", 1},
		{"-10", 2},
		{"18446744073709551615", 20},
		{"18446744073709551616", 20},
		{"99999999999999999999", 20},
		{"100000000000000000000", 21},
	}
	for _, tt := range tests {
		if got := MustParse(tt.in).DigitCount(); got != tt.want {
			t.Errorf("DigitCount(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
	// Powers of ten and their neighbours sit on the boundaries of the
	// bit-length estimate.
	for k := uint(1); k < 200; k++ {
		p := Pow10(k)
		if got := p.DigitCount(); got != int(k)+1 {
			t.Fatalf("DigitCount(10^%d) = %d", k, got)
		}
		if got := p.Subtract(One).DigitCount(); got != int(k) {
			t.Fatalf("DigitCount(10^%d - 1) = %d", k, got)
		}
	}
}

func TestDigitCountMatchesString(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(33, 34))
	for i := range 200 {
		a := randBig(r, 6)
		want := len(new(big.Int).Abs(a).String())
		if got := fromBig(a).DigitCount(); got != want {
			t.Fatalf("case %d: DigitCount(%s) = %d, want %d", i, a, got, want)
		}
	}
}

func FuzzParseString(f *testing.F) {
	for _, seed := range []string{"0", "-1", "+7", "18446744073709551616", "-000", "12x", ""} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		x, err := Parse(s)
		want, ok := new(big.Int).SetString(s, 10)
		// math/big also accepts underscores only with base 0, so the
		// accepted languages agree for base 10.
		if (err == nil) != ok {
			t.Fatalf("Parse(%q) error = %v, math/big ok = %v", s, err, ok)
		}
		if err != nil {
			return
		}
		if x.String() != want.String() {
			t.Fatalf("Parse(%q) = %s, want %s", s, x, want)
		}
		if y := MustParse(x.String()); !y.Equal(x) {
			t.Fatalf("round trip of %s = %s", x, y)
		}
	})
}

package bigint

import (
	"math"
	"slices"

	"github.com/agbru/bigint/internal/nat"
)

// pow10Word[i] is 10^i for 0 <= i <= nat.DecDigits.
var pow10Word = func() (t [nat.DecDigits + 1]nat.Word) {
	t[0] = 1
	for i := 1; i < len(t); i++ {
		t[i] = t[i-1] * 10
	}
	return t
}()

// log2of10 is an upper bound for log2(10), used to size parse buffers.
const log2of10 = 3.3219280948873626

// Parse converts a decimal string to a BigInteger. The syntax is an optional
// '+' or '-' followed by one or more ASCII digits; nothing else is accepted.
func Parse(s string) (BigInteger, error) {
	x, ok := parseDecimal(s)
	if !ok {
		return Zero, syntaxError("Parse", s)
	}
	return x, nil
}

// ParseSubstring converts s[start:end] like Parse. Indices outside s are
// reported as ErrInvalidArgument.
func ParseSubstring(s string, start, end int) (BigInteger, error) {
	if start < 0 || end > len(s) || start > end {
		return Zero, syntaxError("ParseSubstring", s)
	}
	x, ok := parseDecimal(s[start:end])
	if !ok {
		return Zero, syntaxError("ParseSubstring", s[start:end])
	}
	return x, nil
}

// MustParse is like Parse but panics on malformed input. It simplifies
// initialization of package-level constants.
func MustParse(s string) BigInteger {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

func parseDecimal(s string) (BigInteger, bool) {
	negative := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	if len(s) == 0 {
		return Zero, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Zero, false
		}
	}

	z := nat.Make(int(float64(len(s))*log2of10)/nat.W + 1)
	used := 0

	// The first chunk is short so the rest are exactly nat.DecDigits long.
	// Each chunk is accumulated in a native word, then folded into the
	// magnitude as z = z*10^k + chunk.
	k := len(s) % nat.DecDigits
	if k == 0 {
		k = nat.DecDigits
	}
	for len(s) > 0 {
		var acc nat.Word
		for _, ch := range []byte(s[:k]) {
			acc = acc*10 + nat.Word(ch-'0')
		}
		s = s[k:]
		c := nat.MulAddVWW(z[:used], z[:used], pow10Word[k], acc)
		if c != 0 {
			if used == len(z) {
				z = append(z, 0)
			}
			z[used] = c
			used++
		}
		k = nat.DecDigits
	}
	return newInt(negative, z[:used]), true
}

// String returns the decimal representation of x.
func (x BigInteger) String() string {
	return string(x.appendDecimal(make([]byte, 0, x.estimateDigits()+1)))
}

// appendDecimal appends the decimal form of x to buf. Digits are produced
// least significant first by dividing by nat.DecBase, then reversed.
func (x BigInteger) appendDecimal(buf []byte) []byte {
	if len(x.mag) == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	q := nat.Clone(x.mag)
	for len(q) > 1 {
		r := nat.DivW(q, q, nat.DecBase)
		q = nat.Norm(q)
		for range nat.DecDigits {
			buf = append(buf, byte('0'+r%10))
			r /= 10
		}
	}
	for w := q[0]; w != 0; w /= 10 {
		buf = append(buf, byte('0'+w%10))
	}
	if x.negative {
		buf = append(buf, '-')
	}
	slices.Reverse(buf[start:])
	return buf
}

// estimateDigits returns an upper bound for the number of decimal digits.
func (x BigInteger) estimateDigits() int {
	return int(float64(nat.BitLen(x.mag))*math.Log10(2)) + 1
}

// nearInteger reports whether f lies so close to an integer that float64
// rounding could move floor(f) across it.
func nearInteger(f float64) bool {
	frac := f - math.Floor(f)
	return frac < 1e-9 || frac > 1-1e-9
}

// DigitCount returns the number of decimal digits of |x|; 0 has one digit.
func (x BigInteger) DigitCount() int {
	switch len(x.mag) {
	case 0:
		return 1
	case 1:
		return wordDigits(x.mag[0])
	}
	// 2^(n-1) <= |x| < 2^n bounds the count between floor((n-1)·log10 2)+1
	// and floor(n·log10 2)+1. When both agree the answer is exact.
	n := float64(nat.BitLen(x.mag))
	lo, hi := (n-1)*math.Log10(2), n*math.Log10(2)
	if math.Floor(lo) == math.Floor(hi) && !nearInteger(lo) && !nearInteger(hi) {
		return int(hi) + 1
	}
	d := int(hi) + 1
	abs := x.Abs()
	for d > 1 && abs.Compare(Pow10(uint(d-1))) < 0 {
		d--
	}
	for abs.Compare(Pow10(uint(d))) >= 0 {
		d++
	}
	return d
}

// wordDigits returns the number of decimal digits of w.
func wordDigits(w nat.Word) int {
	d := 1
	for d < len(pow10Word) && w >= pow10Word[d] {
		d++
	}
	return d
}

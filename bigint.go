package bigint

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/nat"
)

// BigInteger is an immutable arbitrary-precision signed integer.
//
// The zero value is 0 and ready to use. Every operation returns a new
// value and leaves its operands untouched, so a BigInteger can be shared
// between goroutines freely once it has been returned.
type BigInteger struct {
	negative bool
	// mag is the little-endian magnitude. len(mag) is the significant-limb
	// count: either 0 or mag[len(mag)-1] != 0.
	mag []nat.Word
}

// Commonly used values.
var (
	Zero = BigInteger{}
	One  = NewInt64(1)
	Ten  = NewInt64(10)
)

// newInt publishes a freshly computed magnitude. mag must not be referenced
// anywhere else.
func newInt(negative bool, mag []nat.Word) BigInteger {
	mag = nat.Norm(mag)
	if len(mag) == 0 {
		return BigInteger{}
	}
	return BigInteger{negative: negative, mag: mag}
}

// magFromUint64 returns the magnitude of u.
func magFromUint64(u uint64) []nat.Word {
	if u == 0 {
		return nil
	}
	if nat.W == 64 {
		z := nat.Make(1)
		z[0] = nat.Word(u)
		return z
	}
	z := nat.Make(2)
	z[0] = nat.Word(u & math.MaxUint32)
	z[1] = nat.Word(u >> 32)
	return nat.Norm(z)
}

// NewInt64 returns v as a BigInteger.
func NewInt64(v int64) BigInteger {
	u := uint64(v)
	if v < 0 {
		// Negating in unsigned arithmetic also covers math.MinInt64, whose
		// magnitude does not fit in an int64.
		u = -u
	}
	return newInt(v < 0, magFromUint64(u))
}

// NewInt32 returns v as a BigInteger.
func NewInt32(v int32) BigInteger { return NewInt64(int64(v)) }

// NewUint64 returns v as a BigInteger.
func NewUint64(v uint64) BigInteger { return newInt(false, magFromUint64(v)) }

// ─────────────────────────────────────────────────────────────────────────────
// Predicates
// ─────────────────────────────────────────────────────────────────────────────

// Sign returns -1, 0 or +1.
func (x BigInteger) Sign() int {
	switch {
	case len(x.mag) == 0:
		return 0
	case x.negative:
		return -1
	}
	return 1
}

// IsZero reports whether x == 0.
func (x BigInteger) IsZero() bool { return len(x.mag) == 0 }

// IsEven reports whether x is divisible by two.
func (x BigInteger) IsEven() bool { return len(x.mag) == 0 || x.mag[0]&1 == 0 }

// IsOdd reports whether x is not divisible by two.
func (x BigInteger) IsOdd() bool { return !x.IsEven() }

// ─────────────────────────────────────────────────────────────────────────────
// Narrowing conversions
// ─────────────────────────────────────────────────────────────────────────────

// magUint64 returns the magnitude as a uint64 and whether it fits.
func (x BigInteger) magUint64() (uint64, bool) {
	if nat.BitLen(x.mag) > 64 {
		return 0, false
	}
	var u uint64
	for i, w := range x.mag {
		u |= uint64(w) << (uint(i) * nat.W)
	}
	return u, true
}

// Uint64 returns x as a uint64, or ErrOverflow if x is negative or too large.
func (x BigInteger) Uint64() (uint64, error) {
	u, ok := x.magUint64()
	if !ok || x.negative {
		return 0, apperrors.NewArithmeticError("uint64", ErrOverflow)
	}
	return u, nil
}

// Int64 returns x as an int64, or ErrOverflow if it does not fit.
func (x BigInteger) Int64() (int64, error) {
	u, ok := x.magUint64()
	switch {
	case !ok:
	case x.negative && u <= 1<<63:
		return -int64(u), nil
	case !x.negative && u <= math.MaxInt64:
		return int64(u), nil
	}
	return 0, apperrors.NewArithmeticError("int64", ErrOverflow)
}

// Int32 returns x as an int32, or ErrOverflow if it does not fit.
func (x BigInteger) Int32() (int32, error) {
	v, err := x.Int64()
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, apperrors.NewArithmeticError("int32", ErrOverflow)
	}
	return int32(v), nil
}

// IsInt64 reports whether x can be represented as an int64.
func (x BigInteger) IsInt64() bool {
	_, err := x.Int64()
	return err == nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Comparison and hashing
// ─────────────────────────────────────────────────────────────────────────────

// cmpMag compares two normalized magnitudes.
func cmpMag(x, y []nat.Word) int {
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return nat.Compare(x, y)
}

// Compare returns -1, 0 or +1 depending on whether x is less than, equal to
// or greater than y.
func (x BigInteger) Compare(y BigInteger) int {
	switch {
	case x.negative != y.negative:
		if x.negative {
			return -1
		}
		return 1
	case x.negative:
		return -cmpMag(x.mag, y.mag)
	}
	return cmpMag(x.mag, y.mag)
}

// Equal reports whether x == y.
func (x BigInteger) Equal(y BigInteger) bool { return x.Compare(y) == 0 }

// Hash returns a hash of x consistent with Equal.
func (x BigInteger) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	if x.negative {
		buf[0] = 1
	}
	_, _ = d.Write(buf[:1])
	for _, w := range x.mag {
		binary.LittleEndian.PutUint64(buf[:], uint64(w))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

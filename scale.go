package bigint

// smallPowers is the size of the cached power tables.
const smallPowers = 64

var (
	pow10Table = powerTable(10)
	pow5Table  = powerTable(5)
)

func powerTable(base int64) []BigInteger {
	t := make([]BigInteger, smallPowers)
	t[0] = NewInt64(1)
	b := NewInt64(base)
	for i := 1; i < len(t); i++ {
		t[i] = t[i-1].Multiply(b)
	}
	return t
}

// Pow10 returns 10**k. Small powers are served from a shared table.
func Pow10(k uint) BigInteger {
	if k < smallPowers {
		return pow10Table[k]
	}
	return pow5Table[1].Pow(uint64(k)).ShiftLeft(int(k))
}

// Pow5 returns 5**k.
func Pow5(k uint) BigInteger {
	if k < smallPowers {
		return pow5Table[k]
	}
	return pow5Table[1].Pow(uint64(k))
}

// MultiplyByPow5 returns x * 5**k.
func (x BigInteger) MultiplyByPow5(k uint) BigInteger {
	return x.Multiply(Pow5(k))
}

// MultiplyByPow10 returns x * 10**k, computed as (x * 5**k) << k.
func (x BigInteger) MultiplyByPow10(k uint) BigInteger {
	return x.Multiply(Pow5(k)).ShiftLeft(int(k))
}

// DivideByPow10 returns x / 10**k truncated toward zero.
func (x BigInteger) DivideByPow10(k uint) BigInteger {
	if k == 0 || x.IsZero() {
		return x
	}
	if uint64(k) > uint64(x.DigitCount()) {
		return Zero
	}
	q, _ := x.Divide(Pow10(k))
	return q
}

// ScaleByPow10 returns x * 10**k for k >= 0 and x / 10**-k, truncated toward
// zero, for k < 0.
func (x BigInteger) ScaleByPow10(k int) BigInteger {
	if k >= 0 {
		return x.MultiplyByPow10(uint(k))
	}
	return x.DivideByPow10(uint(-k))
}

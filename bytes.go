package bigint

import (
	"slices"

	"github.com/agbru/bigint/internal/nat"
)

// wordBytes is the number of bytes in a limb.
const wordBytes = nat.W / 8

// FromBytes interprets b as a two's-complement integer. The most significant
// byte comes first unless littleEndian is set. An empty slice is 0.
func FromBytes(b []byte, littleEndian bool) BigInteger {
	n := len(b)
	if n == 0 {
		return Zero
	}
	// at(i) is the i-th byte counting from the least significant one.
	at := func(i int) byte { return b[n-1-i] }
	if littleEndian {
		at = func(i int) byte { return b[i] }
	}

	z := nat.Make((n + wordBytes - 1) / wordBytes)
	for i := range n {
		z[i/wordBytes] |= nat.Word(at(i)) << (uint(i%wordBytes) * 8)
	}
	negative := at(n-1)&0x80 != 0
	if negative {
		if r := n % wordBytes; r != 0 {
			z[len(z)-1] |= nat.M << (uint(r) * 8)
		}
		nat.TwosComplement(z)
	}
	return newInt(negative, z)
}

// Bytes returns the minimal two's-complement encoding of x: the shortest byte
// string whose top bit is the sign. Zero encodes as a single 0x00 byte.
// The most significant byte comes first unless littleEndian is set.
func (x BigInteger) Bytes(littleEndian bool) []byte {
	if len(x.mag) == 0 {
		return []byte{0}
	}
	// One spare limb guarantees room for the sign bit.
	t := nat.Make(len(x.mag) + 1)
	copy(t, x.mag)
	pad := byte(0)
	if x.negative {
		nat.TwosComplement(t)
		pad = 0xFF
	}

	buf := make([]byte, len(t)*wordBytes)
	for i, w := range t {
		for j := range wordBytes {
			buf[len(buf)-1-i*wordBytes-j] = byte(w >> (uint(j) * 8))
		}
	}

	// Drop sign padding while the next byte still carries the right sign.
	start := 0
	for start < len(buf)-1 && buf[start] == pad && buf[start+1]&0x80 == pad&0x80 {
		start++
	}
	buf = buf[start:]
	if littleEndian {
		slices.Reverse(buf)
	}
	return buf
}

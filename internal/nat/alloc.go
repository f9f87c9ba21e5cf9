// This file provides magnitude allocation with capacity rounding, plus the
// size-class pools that back scratch arenas.

package nat

import (
	"math/bits"
	"sync"
)

// RoundCapacity returns the capacity used for an n-limb buffer: exact even
// sizes up to 16 limbs, then 32 or 64, then the next power of two. Even,
// mostly power-of-two capacities let the recursive engines split buffers
// in place and let results be reused without frequent reallocation.
func RoundCapacity(n int) int {
	switch {
	case n <= 0:
		return 0
	case n <= 16:
		return (n + 1) &^ 1
	case n <= 32:
		return 32
	case n <= 64:
		return 64
	}
	return 1 << bits.Len(uint(n-1))
}

// Make returns a zeroed n-limb slice whose capacity follows RoundCapacity.
func Make(n int) []Word {
	return make([]Word, n, RoundCapacity(n))
}

// Clone returns a copy of x with rounded capacity, or nil when x is empty.
func Clone(x []Word) []Word {
	if len(x) == 0 {
		return nil
	}
	z := Make(len(x))
	copy(z, x)
	return z
}

// ─────────────────────────────────────────────────────────────────────────────
// Word Slice Pools
// ─────────────────────────────────────────────────────────────────────────────

// wordSlicePools pools []Word slices by size class.
// Size classes are powers of four from 64 to 16M words to avoid fragmentation.
var wordSlicePools = [...]sync.Pool{
	{New: func() any { return make([]Word, 64) }},
	{New: func() any { return make([]Word, 256) }},
	{New: func() any { return make([]Word, 1024) }},
	{New: func() any { return make([]Word, 4096) }},
	{New: func() any { return make([]Word, 16384) }},
	{New: func() any { return make([]Word, 65536) }},
	{New: func() any { return make([]Word, 262144) }},
	{New: func() any { return make([]Word, 1048576) }},  // 8MB on 64-bit
	{New: func() any { return make([]Word, 4194304) }},  // 32MB on 64-bit
	{New: func() any { return make([]Word, 16777216) }}, // 128MB on 64-bit
}

var wordSliceSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304, 16777216}

// poolIndex returns the pool index for a given size, or -1 if the size is
// too large for pooling. Size class i holds 4^(i+3) words, so the index
// falls out of bits.Len directly.
func poolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > wordSliceSizes[len(wordSliceSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireWords returns a slice of exactly size limbs from the pool. The
// contents are unspecified; Arena.Alloc clears what it hands out.
func acquireWords(size int) []Word {
	idx := poolIndex(size)
	if idx < 0 {
		return make([]Word, size)
	}
	slice := wordSlicePools[idx].Get().([]Word)
	return slice[:size]
}

// releaseWords returns a slice obtained from acquireWords to its pool.
// Slices whose capacity does not match a size class are left to the GC.
func releaseWords(slice []Word) {
	if slice == nil {
		return
	}
	c := cap(slice)
	idx := poolIndex(c)
	if idx >= 0 && wordSliceSizes[idx] == c {
		wordSlicePools[idx].Put(slice[:c])
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Scratch arena
// ─────────────────────────────────────────────────────────────────────────────

// Arena is the scratch space of one top-level multiply, square or divide.
// It hands out sub-slices of one pooled buffer with a bump pointer; the
// recursion brackets its temporaries with Mark and Release so every level
// reuses the space its children freed. When the buffer is exhausted Alloc
// falls back to the heap, so sizing only affects performance.
type Arena struct {
	buf    []Word
	offset int
}

// NewArena returns an arena with room for at least words limbs.
func NewArena(words int) *Arena {
	if words <= 0 {
		return &Arena{}
	}
	return &Arena{buf: acquireWords(words)}
}

// Alloc returns a zeroed slice of n limbs.
func (a *Arena) Alloc(n int) []Word {
	if n <= 0 {
		return nil
	}
	if a.offset+n > len(a.buf) {
		return make([]Word, n)
	}
	s := a.buf[a.offset : a.offset+n : a.offset+n]
	a.offset += n
	clear(s)
	return s
}

// Mark returns the current allocation offset.
func (a *Arena) Mark() int { return a.offset }

// Release frees everything allocated since the matching Mark.
func (a *Arena) Release(mark int) { a.offset = mark }

// Reset frees every allocation without returning the buffer.
func (a *Arena) Reset() { a.offset = 0 }

// UsedWords returns the number of limbs currently allocated.
func (a *Arena) UsedWords() int { return a.offset }

// CapacityWords returns the size of the backing buffer.
func (a *Arena) CapacityWords() int { return len(a.buf) }

// Free returns the backing buffer to its pool. The arena must not be used
// afterwards.
func (a *Arena) Free() {
	releaseWords(a.buf)
	a.buf = nil
	a.offset = 0
}

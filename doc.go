// Package bigint implements an immutable arbitrary-precision signed integer.
//
// A BigInteger is a sign and a little-endian slice of machine-word limbs.
// The zero value is 0. Every operation returns a fresh value, so results can
// be shared between goroutines without locking.
//
// # Arithmetic
//
// Multiplication switches from schoolbook rows to Karatsuba recursion once
// the shorter operand reaches a threshold (see SetKaratsubaThreshold).
// Operands of different lengths are cut into blocks of the shorter length.
// Division is Knuth's Algorithm D with a single-limb fast path and truncates
// toward zero; Mod gives the Euclidean remainder.
//
// # Two's complement
//
// Shifts and bit operations treat negative values as infinite
// two's-complement bit strings: ShiftRight rounds toward negative infinity
// and TestBit(n) is true for every large enough n when x < 0. Bytes and
// FromBytes use the minimal two's-complement encoding, big-endian by default.
//
// # Errors
//
// Failures are reported with errors wrapping ErrInvalidArgument,
// ErrDivideByZero or ErrOverflow. Operands are validated before any work is
// done.
package bigint

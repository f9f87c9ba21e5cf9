// Package ops is the catalog of operations exposed by the bigcalc tool. Each
// entry knows its arity, how to evaluate itself on the engine, and how to
// draw random operands for the verifier.
package ops

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/agbru/bigint"
	apperrors "github.com/agbru/bigint/internal/errors"
)

// EvalFunc evaluates an operation on the engine. Most operations produce one
// result; divrem and sqrtrem produce two.
type EvalFunc func(args []bigint.BigInteger) ([]bigint.BigInteger, error)

// OperandFunc draws random operands for one verification case.
type OperandFunc func(r *rand.Rand, maxLimbs int) []bigint.BigInteger

// Operation describes one entry of the catalog.
type Operation struct {
	// Name is the lower-case command name, e.g. "divrem".
	Name string
	// Arity is the number of operands.
	Arity int
	// Usage names the operands, e.g. "<x> <shift>".
	Usage string
	// Summary is the one-line help text.
	Summary string
	// Eval runs the operation on the engine.
	Eval EvalFunc
	// Operands draws random operands for the verifier.
	Operands OperandFunc
}

// Apply checks the arity and evaluates the operation.
func (op Operation) Apply(args []bigint.BigInteger) ([]bigint.BigInteger, error) {
	if len(args) != op.Arity {
		return nil, apperrors.NewConfigError("%s: expected %d operand(s), got %d", op.Name, op.Arity, len(args))
	}
	return op.Eval(args)
}

// ParseArgs converts decimal operands. A "0x" prefix is accepted and read as
// big-endian two's complement, so values printed with -hex round-trip.
func ParseArgs(args []string) ([]bigint.BigInteger, error) {
	out := make([]bigint.BigInteger, len(args))
	for i, s := range args {
		x, err := ParseOperand(s)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

// ParseOperand parses a single decimal or 0x-prefixed hexadecimal operand.
func ParseOperand(s string) (bigint.BigInteger, error) {
	s = strings.TrimSpace(s)
	if h, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		b, err := decodeHex(h)
		if err != nil {
			return bigint.Zero, &bigint.NumberError{Func: "Parse", Input: s, Err: bigint.ErrInvalidArgument}
		}
		return bigint.FromBytes(b, false), nil
	}
	return bigint.Parse(s)
}

// FormatHex renders x as 0x-prefixed big-endian two's complement.
func FormatHex(x bigint.BigInteger) string {
	const digits = "0123456789abcdef"
	b := x.Bytes(false)
	out := make([]byte, 2, 2+2*len(b))
	out[0], out[1] = '0', 'x'
	for _, c := range b {
		out = append(out, digits[c>>4], digits[c&0x0F])
	}
	return string(out)
}

func decodeHex(h string) ([]byte, error) {
	if h == "" {
		return nil, bigint.ErrInvalidArgument
	}
	if len(h)%2 == 1 {
		h = "0" + h
	}
	b := make([]byte, len(h)/2)
	for i := range b {
		hi, ok1 := hexVal(h[2*i])
		lo, ok2 := hexVal(h[2*i+1])
		if !ok1 || !ok2 {
			return nil, bigint.ErrInvalidArgument
		}
		b[i] = hi<<4 | lo
	}
	return b, nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// ─────────────────────────────────────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────────────────────────────────────

var registry = map[string]Operation{}

func register(op Operation) {
	if _, dup := registry[op.Name]; dup {
		panic("ops: duplicate operation " + op.Name)
	}
	registry[op.Name] = op
}

// Get returns the named operation.
func Get(name string) (Operation, bool) {
	op, ok := registry[strings.ToLower(name)]
	return op, ok
}

// Names returns all operation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns every operation sorted by name.
func All() []Operation {
	names := Names()
	out := make([]Operation, len(names))
	for i, n := range names {
		out[i] = registry[n]
	}
	return out
}

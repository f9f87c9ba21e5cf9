// Package oracle provides reference implementations the verifier checks the
// engine against. math/big is always available; GMP registers itself when
// the binary is built with the "gmp" tag.
package oracle

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/agbru/bigint"
)

// ErrUnsupported is returned by Evaluate for an operation the oracle does
// not implement.
var ErrUnsupported = errors.New("operation not supported by oracle")

// Oracle evaluates catalog operations with an independent implementation.
// Errors must match the engine's classes: bigint.ErrInvalidArgument,
// bigint.ErrDivideByZero or bigint.ErrOverflow.
type Oracle interface {
	Name() string
	Supports(op string) bool
	Evaluate(op string, args []bigint.BigInteger) ([]bigint.BigInteger, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Oracle{}
)

// Register makes an oracle available under name. It panics on duplicates,
// since registration happens from init functions.
func Register(name string, factory func() Oracle) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic("oracle: duplicate registration of " + name)
	}
	registry[name] = factory
}

// List returns the registered oracle names in sorted order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get instantiates the named oracle.
func Get(name string) (Oracle, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown oracle %q (available: %v)", name, List())
	}
	return factory(), nil
}

// Select instantiates the named oracles in order.
func Select(names []string) ([]Oracle, error) {
	out := make([]Oracle, 0, len(names))
	for _, name := range names {
		o, err := Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// ErrorClass maps an error to the sentinel it wraps, so engine and oracle
// failures can be compared. It returns nil for nil and err itself for
// errors outside the three arithmetic classes.
func ErrorClass(err error) error {
	for _, sentinel := range []error{bigint.ErrInvalidArgument, bigint.ErrDivideByZero, bigint.ErrOverflow} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return err
}

package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Process exit statuses.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // an oracle disagreed with the engine
	ExitErrorConfig   = 4
	ExitErrorCanceled = 130 // SIGINT
)

// Arithmetic failure classes. Every error returned by the bigint package
// matches exactly one of these through errors.Is.
var (
	// ErrInvalidArgument reports a malformed decimal string, an out-of-range
	// sub-range index, or an argument outside an operation's domain such as
	// a negative exponent.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDivideByZero reports a division, remainder or modulus by zero.
	ErrDivideByZero = errors.New("division by zero")

	// ErrOverflow reports a narrowing conversion whose target cannot hold
	// the value, or a result too large to be represented at all.
	ErrOverflow = errors.New("value out of range")
)

// ConfigError is a bad flag, environment variable or operand. The process
// exits with ExitErrorConfig.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError marks an engine failure surfaced to the user. The
// arithmetic sentinel stays reachable through Unwrap.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

func (e CalculationError) Unwrap() error { return e.Cause }

// ArithmeticError reports which operation rejected its operands.
type ArithmeticError struct {
	// Op is the name of the operation, e.g. "divide" or "sqrt".
	Op string
	// Cause is one of the package sentinels.
	Cause error
}

// Error returns "<op>: <cause>".
func (e ArithmeticError) Error() string { return e.Op + ": " + e.Cause.Error() }

func (e ArithmeticError) Unwrap() error { return e.Cause }

// NewArithmeticError builds an ArithmeticError for op with the given sentinel.
func NewArithmeticError(op string, cause error) error {
	return ArithmeticError{Op: op, Cause: cause}
}

// NumberError records a failed decimal conversion, in the shape of
// strconv.NumError.
type NumberError struct {
	Func  string // Parse, ParseSubstring, UnmarshalText
	Input string
	Err   error
}

// Error returns a message of the form `bigint.Parse: parsing "12x": invalid argument`.
func (e *NumberError) Error() string {
	return "bigint." + e.Func + ": parsing " + strconv.Quote(e.Input) + ": " + e.Err.Error()
}

func (e *NumberError) Unwrap() error { return e.Err }

// TimeoutError is returned when an evaluation or a verification run
// outlives the -timeout limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap lets errors.Is(err, context.DeadlineExceeded) hold for timeouts.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// WrapError prefixes err with a formatted message. It returns nil for a nil
// err.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error returned by the application to its process exit
// status. Unknown errors map to ExitErrorGeneric.
func ExitCode(err error) int {
	var cfgErr ConfigError
	var timeoutErr TimeoutError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

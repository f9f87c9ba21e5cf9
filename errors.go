package bigint

import apperrors "github.com/agbru/bigint/internal/errors"

// Errors returned by this package. Use errors.Is to classify a failure;
// the concrete error carries the failing operation or input.
var (
	ErrInvalidArgument = apperrors.ErrInvalidArgument
	ErrDivideByZero    = apperrors.ErrDivideByZero
	ErrOverflow        = apperrors.ErrOverflow
)

// NumberError records a failed decimal conversion.
type NumberError = apperrors.NumberError

// ArithmeticError reports which operation rejected its operands.
type ArithmeticError = apperrors.ArithmeticError

func syntaxError(fn, input string) error {
	return &NumberError{Func: fn, Input: input, Err: ErrInvalidArgument}
}

// Package apperrors defines the error taxonomy shared by the arithmetic
// engine and the bigcalc tool: the arithmetic sentinels, wrappers naming the
// failing operation or input, and the application errors that decide the
// process exit code.
//
// Every wrapper implements Unwrap, so callers match with errors.Is and
// errors.As rather than on messages.
package apperrors

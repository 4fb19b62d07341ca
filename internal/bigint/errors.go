package bigint

import "errors"

var (
	// ErrInvalidFormat is returned when a decimal string cannot be parsed.
	ErrInvalidFormat = errors.New("bigint: invalid decimal format")
	// ErrDivisionByZero is returned by Quo, Rem and QuoRem for a zero divisor.
	ErrDivisionByZero = errors.New("bigint: division by zero")
)

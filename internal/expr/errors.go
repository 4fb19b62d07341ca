package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefined is returned when an expression reads a variable that has
	// never been assigned.
	ErrUndefined = errors.New("undefined variable")
	// ErrUnknownFunc is returned for a call to a name that is not a builtin.
	ErrUnknownFunc = errors.New("unknown function")
	// ErrArity is returned when a builtin receives the wrong number of
	// arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrShiftRange is returned when a shift amount does not fit in an int.
	ErrShiftRange = errors.New("shift amount out of range")
	// ErrDomain is returned when a builtin argument is outside its domain,
	// such as a negative exponent.
	ErrDomain = errors.New("argument out of domain")
	// ErrTooLarge is returned when a left shift or power would produce a
	// result wider than the evaluator's bit limit.
	ErrTooLarge = errors.New("result exceeds size limit")
)

// SyntaxError reports malformed source at a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

package expr

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned when a divisor evaluates to zero.
var ErrDivisionByZero = errors.New("division by zero")

// ErrNonFinite is returned when evaluation overflows to Inf or produces NaN.
var ErrNonFinite = errors.New("non-finite result")

// SyntaxError reports malformed input. Pos is a zero-based byte offset.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d in %q: %s", e.Pos, e.Input, e.Msg)
}

// UndefinedVariableError reports a reference to a name missing from Vars.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

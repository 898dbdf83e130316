package expr

import "errors"

var (
	// ErrSyntax indicates an expression could not be tokenized or parsed.
	ErrSyntax = errors.New("expression syntax error")
	// ErrUnknownVariable indicates an identifier absent from the variable scope.
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrDivisionByZero indicates a division whose divisor evaluated to exactly zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidParam indicates a param value that is neither a number, a
	// numeric string, nor a {{...}} expression.
	ErrInvalidParam = errors.New("invalid param value")
)

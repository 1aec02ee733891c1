package mip

import "errors"

var (
	// ErrTypeMismatch is returned when an algebraic operation receives an
	// operand that is neither a Var, a *LinExpr nor a real number.
	ErrTypeMismatch = errors.New("operand type not supported")

	// ErrLengthMismatch is returned when paired variable and coefficient
	// slices differ in length.
	ErrLengthMismatch = errors.New("variables and coefficients must be the same length")

	// ErrInvalidSense is returned when an expression carries, or would be
	// given, a sense outside {"", "=", "<", ">"}, or when an operation
	// requires a relational sense and the expression has none.
	ErrInvalidSense = errors.New("invalid sense")

	// ErrInvalidVarType is returned when assigning a variable type outside
	// {binary, integer, continuous}. The check happens before any solver
	// delegation.
	ErrInvalidVarType = errors.New("invalid variable type")

	// ErrMixedModels is returned when elements of different models are
	// combined in one expression, constraint or objective.
	ErrMixedModels = errors.New("elements are not part of the same model")
)

package graphqlcompile

import (
	"errors"
	"fmt"
)

// ErrMultiOperationsNotSupported is returned when a document does not
// contain exactly one operation definition; a document with none gets the
// same error.
var ErrMultiOperationsNotSupported = errors.New("graphqlcompile: document contains more than one operation")

// UnsupportedOperationError is returned for any operation kind other than
// query/mutation (i.e. subscription).
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("graphqlcompile: unsupported operation kind %q", e.Operation)
}

// UnsupportedSelectionKindError is returned for fragment spreads and
// inline fragments, which the compiler does not expand.
type UnsupportedSelectionKindError struct {
	Kind string
}

func (e *UnsupportedSelectionKindError) Error() string {
	return fmt.Sprintf("graphqlcompile: unsupported selection kind %q", e.Kind)
}

// UnsupportedArgumentError is returned when an argument's value falls
// outside the supported literal/variable/enum set.
type UnsupportedArgumentError struct {
	Name string
	Repr string
}

func (e *UnsupportedArgumentError) Error() string {
	return fmt.Sprintf("graphqlcompile: unsupported value for argument %q: %s", e.Name, e.Repr)
}

// UnknownVariableError is returned when an argument references a variable
// absent from the supplied variables map.
type UnknownVariableError struct {
	Variable string
	Arg      string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("graphqlcompile: variable %q referenced by argument %q is not defined", e.Variable, e.Arg)
}

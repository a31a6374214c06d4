// Package rpcerrors maps the core's domain error kinds to gRPC status
// codes at the service boundary, without standing up real gRPC
// transport — callers convert an EndpointError to a *status.Status only
// where an actual RPC layer needs one.
package rpcerrors

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type endpointKind int

const (
	kindValidation endpointKind = iota
	kindInternal
	kindOperation
)

// EndpointError is the boundary wrapper every RPC-facing handler returns:
// a validation failure, an internal failure, or a domain operation error
// that reports its own gRPC code.
type EndpointError struct {
	kind      endpointKind
	message   string
	operation CodedError
}

// CodedError is implemented by domain error kinds that know their own
// gRPC status code.
type CodedError interface {
	error
	Code() codes.Code
}

// Validation reports a request that failed input validation.
func Validation(msg string) *EndpointError {
	return &EndpointError{kind: kindValidation, message: msg}
}

// Internal reports an unclassified internal failure.
func Internal() *EndpointError {
	return &EndpointError{kind: kindInternal}
}

// Operation wraps a domain error that already knows its gRPC code.
func Operation(err CodedError) *EndpointError {
	return &EndpointError{kind: kindOperation, operation: err}
}

func (e *EndpointError) Error() string {
	switch e.kind {
	case kindValidation:
		return fmt.Sprintf("validation error: %s", e.message)
	case kindOperation:
		return fmt.Sprintf("operation error: %v", e.operation)
	default:
		return "internal service error"
	}
}

func (e *EndpointError) Unwrap() error {
	if e.kind == kindOperation {
		return e.operation
	}
	return nil
}

// Code returns the gRPC code this error maps to.
func (e *EndpointError) Code() codes.Code {
	switch e.kind {
	case kindValidation:
		return codes.InvalidArgument
	case kindOperation:
		return e.operation.Code()
	default:
		return codes.Internal
	}
}

// Status converts e into a gRPC status.
func (e *EndpointError) Status() *status.Status {
	return status.New(e.Code(), e.Error())
}

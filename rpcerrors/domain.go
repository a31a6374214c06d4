package rpcerrors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"

	"github.com/gov-dx-sandbox/identity-authz-core/graphqlcompile"
	"github.com/gov-dx-sandbox/identity-authz-core/permissions"
)

// NotFoundError reports that account_id was present but absent from the
// permissions store.
type NotFoundError struct{}

func (NotFoundError) Error() string    { return "account not found" }
func (NotFoundError) Code() codes.Code { return codes.NotFound }

// InvalidResourcePathError reports a syntactically invalid path supplied
// directly in an access request (as opposed to a stored, already-trusted
// policy path).
type InvalidResourcePathError struct {
	Index int
	Text  string
}

func (e InvalidResourcePathError) Error() string {
	return fmt.Sprintf("resource path %d (%q) is invalid", e.Index, e.Text)
}
func (InvalidResourcePathError) Code() codes.Code { return codes.InvalidArgument }

// CorruptPolicyError reports a stored policy path that failed to parse;
// this is a server-side data integrity fault, not a caller mistake.
type CorruptPolicyError struct {
	Underlying *permissions.CorruptPolicyError
}

func (e CorruptPolicyError) Error() string  { return e.Underlying.Error() }
func (CorruptPolicyError) Code() codes.Code { return codes.Internal }

// TransientStoreError reports a datastore I/O failure.
type TransientStoreError struct{}

func (TransientStoreError) Error() string    { return "transient store failure" }
func (TransientStoreError) Code() codes.Code { return codes.Internal }

// FromDomainError maps an error returned by the compiler or the
// permissions engine to a CodedError, per the kind table in §7 of the
// boundary contract. Unrecognized errors map to Internal.
func FromDomainError(err error) CodedError {
	switch e := err.(type) {
	case *graphqlcompile.UnsupportedOperationError:
		return invalidArgument{e}
	case *graphqlcompile.UnsupportedSelectionKindError:
		return invalidArgument{e}
	case *graphqlcompile.UnsupportedArgumentError:
		return invalidArgument{e}
	case *graphqlcompile.UnknownVariableError:
		return invalidArgument{e}
	case *permissions.CorruptPolicyError:
		return CorruptPolicyError{Underlying: e}
	}

	switch {
	case errors.Is(err, graphqlcompile.ErrMultiOperationsNotSupported):
		return invalidArgument{err}
	case errors.Is(err, permissions.ErrNotFound):
		return NotFoundError{}
	case errors.Is(err, permissions.ErrTransientStore):
		return TransientStoreError{}
	default:
		return internalError{err}
	}
}

// invalidArgument adapts any error value into a CodedError that always
// reports InvalidArgument, for the compiler's argument/selection/variable
// error kinds.
type invalidArgument struct{ err error }

func (e invalidArgument) Error() string  { return e.err.Error() }
func (invalidArgument) Code() codes.Code { return codes.InvalidArgument }

// internalError adapts an unrecognized error into a CodedError that
// reports Internal, losing none of the original message for logging.
type internalError struct{ err error }

func (e internalError) Error() string    { return e.err.Error() }
func (internalError) Code() codes.Code   { return codes.Internal }

package permissions

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Store when the requested account has no
// stored PermissionsDocument.
var ErrNotFound = errors.New("permissions: account not found")

// ErrTransientStore wraps any failure to reach the datastore itself
// (as opposed to the account simply being absent).
var ErrTransientStore = errors.New("permissions: transient store failure")

// CorruptPolicyError reports a stored path that failed to parse during
// composition of the effective permission set.
type CorruptPolicyError struct {
	StatementIndex int
	PathIndex      int
	Text           string
	Err            error
}

func (e *CorruptPolicyError) Error() string {
	return fmt.Sprintf("permissions: statement %d path %d %q is unparseable: %v",
		e.StatementIndex, e.PathIndex, e.Text, e.Err)
}

func (e *CorruptPolicyError) Unwrap() error { return e.Err }

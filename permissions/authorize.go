package permissions

import (
	"context"
	"fmt"

	"github.com/gov-dx-sandbox/identity-authz-core/pathcodec"
	"github.com/gov-dx-sandbox/identity-authz-core/pathlang"
	"github.com/gov-dx-sandbox/identity-authz-core/resourcepath"
)

// Authorize implements the decision algorithm (C6): it composes the
// built-in anonymous/default permissions with the caller's stored
// statements into an allow-set, and checks whether that set covers the
// access request.
//
// accountID nil means an anonymous caller: no store lookup happens and
// DefaultPermissions is not granted.
func Authorize(ctx context.Context, store Store, accountID *string, request resourcepath.AccessRequest) (bool, error) {
	var stored *pathcodec.Document
	if accountID != nil {
		doc, err := store.GetPermissions(ctx, *accountID)
		if err != nil {
			return false, err
		}
		stored = doc
	} else {
		stored = &pathcodec.Document{}
	}

	statements := make([]PolicyStatement, 0, len(AnonymousPermissions())+len(DefaultPermissions())+len(stored.Statements))
	statements = append(statements, AnonymousPermissions()...)
	if accountID != nil {
		statements = append(statements, DefaultPermissions()...)
	}
	for _, s := range stored.Statements {
		kind, err := resourcepath.ParseAccessKind(s.AccessKind)
		if err != nil {
			return false, fmt.Errorf("permissions: stored statement has %w", err)
		}
		statements = append(statements, PolicyStatement{Kind: kind, Paths: s.Paths})
	}

	allowed := resourcepath.NewPathSet()
	for i, stmt := range statements {
		if stmt.Kind != request.Kind {
			continue
		}
		for j, text := range stmt.Paths {
			ps, err := pathlang.ParseAndCompile(text)
			if err != nil {
				return false, &CorruptPolicyError{StatementIndex: i, PathIndex: j, Text: text, Err: err}
			}
			allowed.Merge(ps)
		}
	}

	desired := request.ToPathSet()
	return allowed.IsSupersetOf(desired), nil
}

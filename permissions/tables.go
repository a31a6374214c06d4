package permissions

import (
	"fmt"
	"sync"

	"github.com/gov-dx-sandbox/identity-authz-core/pathlang"
	"github.com/gov-dx-sandbox/identity-authz-core/resourcepath"
)

// PolicyStatement is one grant: an access kind paired with the canonical
// textual paths it covers.
type PolicyStatement struct {
	Kind  resourcepath.AccessKind
	Paths []string
}

func composeStatement(kind resourcepath.AccessKind, paths []string) PolicyStatement {
	stmt := PolicyStatement{Kind: kind, Paths: paths}
	for i, p := range paths {
		if _, err := pathlang.ParseAndCompile(p); err != nil {
			panic(fmt.Sprintf("permissions: built-in path %d %q does not parse: %v", i, p, err))
		}
	}
	return stmt
}

var (
	anonymousOnce        sync.Once
	anonymousPermissions []PolicyStatement

	defaultOnce        sync.Once
	defaultPermissions []PolicyStatement
)

// AnonymousPermissions returns the permissions granted to every caller,
// authenticated or not. Lazily built on first use; a malformed table is a
// programmer error and panics the process.
func AnonymousPermissions() []PolicyStatement {
	anonymousOnce.Do(func() {
		anonymousPermissions = []PolicyStatement{
			composeStatement(resourcepath.Mutation, []string{"authenticate(email: *, password: *)::*"}),
		}
	})
	return anonymousPermissions
}

// DefaultPermissions returns the permissions granted additionally to any
// authenticated caller, on top of AnonymousPermissions.
func DefaultPermissions() []PolicyStatement {
	defaultOnce.Do(func() {
		defaultPermissions = []PolicyStatement{
			composeStatement(resourcepath.Mutation, []string{"generateAccessToken(refreshToken: *)::*"}),
		}
	})
	return defaultPermissions
}

package permissions

import (
	"testing"

	"github.com/gov-dx-sandbox/identity-authz-core/resourcepath"
)

func TestAnonymousPermissionsGrantsAuthenticate(t *testing.T) {
	stmts := AnonymousPermissions()
	if len(stmts) != 1 || stmts[0].Kind != resourcepath.Mutation {
		t.Fatalf("AnonymousPermissions() = %+v", stmts)
	}
	if stmts[0].Paths[0] != "authenticate(email: *, password: *)::*" {
		t.Fatalf("unexpected anonymous path: %q", stmts[0].Paths[0])
	}
}

func TestDefaultPermissionsGrantsGenerateAccessToken(t *testing.T) {
	stmts := DefaultPermissions()
	if len(stmts) != 1 || stmts[0].Kind != resourcepath.Mutation {
		t.Fatalf("DefaultPermissions() = %+v", stmts)
	}
	if stmts[0].Paths[0] != "generateAccessToken(refreshToken: *)::*" {
		t.Fatalf("unexpected default path: %q", stmts[0].Paths[0])
	}
}

func TestPermissionTablesAreStableAcrossCalls(t *testing.T) {
	first := AnonymousPermissions()
	second := AnonymousPermissions()
	if &first[0] != &second[0] {
		t.Fatal("AnonymousPermissions() should return the same backing array across calls")
	}
}

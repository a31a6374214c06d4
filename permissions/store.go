package permissions

import (
	"context"

	"github.com/gov-dx-sandbox/identity-authz-core/pathcodec"
)

// Store resolves an account's stored PermissionsDocument by its opaque
// account ID. Implementations must be safe for concurrent use and should
// honor ctx cancellation for any network I/O they perform.
type Store interface {
	GetPermissions(ctx context.Context, accountID string) (*pathcodec.Document, error)
}

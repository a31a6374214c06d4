package permissions

import (
	"context"
	"sync"

	"github.com/gov-dx-sandbox/identity-authz-core/pathcodec"
)

// MemoryStore is an in-memory Store. Useful for tests and local demos;
// not durable across process restarts.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*pathcodec.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*pathcodec.Document)}
}

// Put installs (or replaces) the PermissionsDocument for accountID.
func (m *MemoryStore) Put(accountID string, doc *pathcodec.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[accountID] = doc
}

func (m *MemoryStore) GetPermissions(ctx context.Context, accountID string) (*pathcodec.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[accountID]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

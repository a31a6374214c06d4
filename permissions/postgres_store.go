package permissions

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/gov-dx-sandbox/identity-authz-core/pathcodec"
)

// PostgresStore persists one PermissionsDocument per account as a JSONB
// blob.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool and ensures the backing table
// exists.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("permissions: failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("permissions: failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.createTables(); err != nil {
		return nil, fmt.Errorf("permissions: failed to create tables: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) createTables() error {
	const createAccountPermissionsTable = `
	CREATE TABLE IF NOT EXISTS account_permissions (
		account_id VARCHAR(64) PRIMARY KEY,
		document JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	if _, err := s.db.Exec(createAccountPermissionsTable); err != nil {
		return fmt.Errorf("failed to create account_permissions table: %w", err)
	}
	return nil
}

// GetPermissions implements Store.
func (s *PostgresStore) GetPermissions(ctx context.Context, accountID string) (*pathcodec.Document, error) {
	const query = `SELECT document FROM account_permissions WHERE account_id = $1`

	var raw []byte
	err := s.db.QueryRowContext(ctx, query, accountID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrTransientStore, err)
	}

	doc, err := pathcodec.DecodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("permissions: stored document for account %q: %w", accountID, err)
	}
	return doc, nil
}

// PutPermissions upserts an account's PermissionsDocument. Used by
// administrative tooling, not by the authorize hot path.
func (s *PostgresStore) PutPermissions(ctx context.Context, accountID string, doc *pathcodec.Document) error {
	data, err := pathcodec.EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("permissions: encoding document for account %q: %w", accountID, err)
	}

	const query = `
		INSERT INTO account_permissions (account_id, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (account_id) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, accountID, data); err != nil {
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	return nil
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/gov-dx-sandbox/identity-authz-core/configs"
	"github.com/gov-dx-sandbox/identity-authz-core/logger"
	"github.com/gov-dx-sandbox/identity-authz-core/middleware"
	"github.com/gov-dx-sandbox/identity-authz-core/permissions"
	"github.com/gov-dx-sandbox/identity-authz-core/server"
	"github.com/gov-dx-sandbox/identity-authz-core/telemetry"
)

func main() {
	logger.Init()

	ctx := context.Background()
	shutdown, err := telemetry.Init(ctx, "identity-authz-core")
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		_ = shutdown(context.Background())
	}()

	config, err := configs.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	auditServiceURL := os.Getenv("CHOREO_AUDIT_CONNECTION_SERVICEURL")
	middleware.NewAuditMiddleware(auditServiceURL)

	store, err := newStore(config.Store)
	if err != nil {
		log.Fatalf("Failed to initialize permissions store: %v", err)
	}

	server.RunServer(store, config.Server.Port)
}

func newStore(cfg configs.StoreConfig) (permissions.Store, error) {
	switch cfg.Driver {
	case "postgres":
		return permissions.NewPostgresStore(cfg.ConnectionString)
	case "memory", "":
		return permissions.NewMemoryStore(), nil
	default:
		log.Fatalf("unknown store driver %q", cfg.Driver)
		return nil, nil
	}
}

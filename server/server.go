package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/grpc/codes"

	"github.com/gov-dx-sandbox/identity-authz-core/authzext"
	"github.com/gov-dx-sandbox/identity-authz-core/logger"
	"github.com/gov-dx-sandbox/identity-authz-core/pathlang"
	"github.com/gov-dx-sandbox/identity-authz-core/permissions"
	"github.com/gov-dx-sandbox/identity-authz-core/resourcepath"
	"github.com/gov-dx-sandbox/identity-authz-core/rpcerrors"
	"github.com/gov-dx-sandbox/identity-authz-core/telemetry"
)

type healthResponse struct {
	Message string `json:"message"`
}

// AuthorizeRequest is the direct, RPC-shaped request body for /authorize:
// a caller supplies the access kind and a resource path in canonical
// textual form instead of a full GraphQL document.
type AuthorizeRequest struct {
	AccountID *string `json:"accountId,omitempty"`
	Kind      string  `json:"kind"`
	Path      string  `json:"path"`
}

type authorizeResponse struct {
	Allowed bool `json:"allowed"`
}

const DefaultPort = "4000"

// RunServer starts the authorization HTTP server: a health check, metrics,
// a direct /authorize RPC endpoint, and a GraphQL endpoint gated by the
// authzext extension hook.
func RunServer(store permissions.Store, port string) {
	if port == "" {
		port = DefaultPort
	}
	if port[0] != ':' {
		port = ":" + port
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(telemetry.HTTPMetricsMiddleware)
	r.Use(corsMiddleware)

	r.Get("/health", handleHealth)
	r.Handle("/metrics", telemetry.Handler())
	r.Post("/authorize", handleAuthorize(store))
	r.Handle("/graphql", authzext.Middleware(store, http.HandlerFunc(handleGraphQLExecute)))

	logger.Log.Info("server is listening", "port", port)
	if err := http.ListenAndServe(port, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(healthResponse{Message: "identity-authz-core is healthy"})
}

// handleAuthorize answers a direct authorization question without going
// through a GraphQL document: the caller already knows the access kind
// and the resource path it wants to reach.
func handleAuthorize(store permissions.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AuthorizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		kind, err := resourcepath.ParseAccessKind(req.Kind)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		pathSet, err := pathlang.ParseAndCompile(req.Path)
		if err != nil {
			coded := rpcerrors.InvalidResourcePathError{Index: 0, Text: req.Path}
			logger.Log.Warn("rejecting malformed authorize path", "error", err)
			writeJSONError(w, http.StatusBadRequest, coded.Error())
			return
		}

		roots := make([]*resourcepath.PathNode, 0, len(pathSet.Roots))
		for _, root := range pathSet.Roots {
			roots = append(roots, root)
		}
		accessRequest := resourcepath.AccessRequest{Kind: kind, Paths: roots}

		start := time.Now()
		granted, err := permissions.Authorize(r.Context(), store, req.AccountID, accessRequest)
		duration := time.Since(start)
		telemetry.RecordAuthorizeDecision(r.Context(), kind.String(), granted && err == nil, duration)

		if err != nil {
			coded := rpcerrors.FromDomainError(err)
			logger.Log.Error("authorize decision failed", "error", err)
			status := http.StatusInternalServerError
			if coded.Code() == codes.NotFound {
				status = http.StatusForbidden
			}
			writeJSONError(w, status, coded.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(authorizeResponse{Allowed: granted})
	}
}

// handleGraphQLExecute is the handler authzext.Middleware wraps: by the
// time it runs, the caller is already known to be authorized to execute
// the compiled request. Executing the query itself is a GraphQL
// front-end concern this core does not own.
func handleGraphQLExecute(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "authorized"})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// corsMiddleware sets permissive CORS headers, matching the teacher's
// own server.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

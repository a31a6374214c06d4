// Package authzext implements the GraphQL extension hook (C8): it sits
// in front of query execution, compiles the incoming document into an
// AccessRequest, and asks the authorize decision engine whether the
// caller may proceed.
package authzext

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"google.golang.org/grpc/codes"

	"github.com/gov-dx-sandbox/identity-authz-core/graphqlcompile"
	"github.com/gov-dx-sandbox/identity-authz-core/jwtclaims"
	"github.com/gov-dx-sandbox/identity-authz-core/logger"
	"github.com/gov-dx-sandbox/identity-authz-core/middleware"
	"github.com/gov-dx-sandbox/identity-authz-core/permissions"
	"github.com/gov-dx-sandbox/identity-authz-core/resourcepath"
	"github.com/gov-dx-sandbox/identity-authz-core/rpcerrors"
	"github.com/gov-dx-sandbox/identity-authz-core/telemetry"
)

// GraphQLRequest is the wire shape of an incoming GraphQL operation.
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Middleware wraps next with the parse → compile → authorize pipeline.
// On deny or failure it writes the GraphQL-shaped error response itself
// and does not call next; on allow it calls next unchanged.
func Middleware(store permissions.Store, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GraphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("invalid request body: %v", err))
			return
		}

		doc, gqlErr := parser.ParseQuery(&ast.Source{Input: req.Query})
		if gqlErr != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", gqlErr.Error())
			return
		}

		accessRequest, err := graphqlcompile.Compile(doc, req.Variables)
		if err != nil {
			coded := rpcerrors.FromDomainError(err)
			logger.Log.Warn("failed to compile access request", "error", err)
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", coded.Error())
			return
		}

		var accountID *string
		claims, claimsErr := jwtclaims.FromRequest(r)
		if claimsErr == nil {
			accountID = &claims.Sub
		} else if claimsErr != jwtclaims.ErrMissingToken {
			logger.Log.Warn("ignoring malformed bearer token, treating caller as anonymous", "error", claimsErr)
		}

		start := time.Now()
		granted, err := permissions.Authorize(r.Context(), store, accountID, accessRequest)
		duration := time.Since(start)
		kind := accessRequest.Kind.String()

		requestedPath := ""
		if len(accessRequest.Paths) > 0 {
			requestedPath = resourcepath.RenderPathNode(accessRequest.Paths[0])
		}
		callerID := ""
		if accountID != nil {
			callerID = *accountID
		}

		if err != nil {
			coded := rpcerrors.FromDomainError(err)
			logger.Log.Error("authorize decision failed", "error", err)
			telemetry.RecordAuthorizeDecision(r.Context(), kind, false, duration)
			middleware.LogAuthorizeDecision(callerID, kind, requestedPath, false)
			if coded.Code() == codes.NotFound {
				writeError(w, http.StatusForbidden, "PERMISSION_DENIED", "account not found")
			} else {
				writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
			}
			return
		}

		telemetry.RecordAuthorizeDecision(r.Context(), kind, granted, duration)
		middleware.LogAuthorizeDecision(callerID, kind, requestedPath, granted)

		if !granted {
			writeError(w, http.StatusForbidden, "PERMISSION_DENIED", "the caller is not authorized to perform this operation")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"errors": []map[string]interface{}{
			{
				"message": message,
				"extensions": map[string]interface{}{
					"code": code,
				},
			},
		},
	}
	json.NewEncoder(w).Encode(response)
}

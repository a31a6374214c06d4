package authzext

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gov-dx-sandbox/identity-authz-core/logger"
	"github.com/gov-dx-sandbox/identity-authz-core/pathcodec"
	"github.com/gov-dx-sandbox/identity-authz-core/permissions"
)

func init() {
	logger.Init()
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newRequest(t *testing.T, body GraphQLRequest) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(data))
}

func TestMiddlewareAllowsAnonymousAuthenticateMutation(t *testing.T) {
	store := permissions.NewMemoryStore()
	handler := Middleware(store, okHandler())

	req := newRequest(t, GraphQLRequest{Query: `mutation { authenticate(email: "a@example.com", password: "x") }`})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestMiddlewareDeniesAnonymousGenerateAccessToken(t *testing.T) {
	store := permissions.NewMemoryStore()
	handler := Middleware(store, okHandler())

	req := newRequest(t, GraphQLRequest{Query: `mutation { generateAccessToken(refreshToken: "x") }`})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestMiddlewareRejectsInvalidQuery(t *testing.T) {
	store := permissions.NewMemoryStore()
	handler := Middleware(store, okHandler())

	req := newRequest(t, GraphQLRequest{Query: `{ not valid`})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestMiddlewareUsesAccountIDFromBearerToken(t *testing.T) {
	store := permissions.NewMemoryStore()
	store.Put("acct-1", &pathcodec.Document{})
	handler := Middleware(store, okHandler())

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "acct-1"})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	req := newRequest(t, GraphQLRequest{Query: `mutation { generateAccessToken(refreshToken: "x") }`})
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

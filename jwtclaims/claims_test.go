package jwtclaims

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func unsignedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return s
}

func TestFromTokenDecodesClaims(t *testing.T) {
	tok := unsignedToken(t, jwt.MapClaims{
		"sub":        "acct-1",
		"email":      "a@example.com",
		"first_name": "Ada",
		"last_name":  "Lovelace",
	})

	claims, err := FromToken(tok)
	if err != nil {
		t.Fatalf("FromToken() error = %v", err)
	}
	if claims.Sub != "acct-1" || claims.Email != "a@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestFromTokenRejectsMalformedToken(t *testing.T) {
	if _, err := FromToken("not.a.token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestFromRequestMissingHeaderYieldsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	_, err := FromRequest(req)
	if err != ErrMissingToken {
		t.Fatalf("FromRequest() error = %v, want ErrMissingToken", err)
	}
}

func TestFromRequestRejectsNonBearerScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Basic abcdef")
	if _, err := FromRequest(req); err == nil {
		t.Fatal("expected an error for a non-bearer scheme")
	}
}

func TestFromRequestExtractsBearerToken(t *testing.T) {
	tok := unsignedToken(t, jwt.MapClaims{"sub": "acct-2"})
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	claims, err := FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest() error = %v", err)
	}
	if claims.Sub != "acct-2" {
		t.Fatalf("claims.Sub = %q", claims.Sub)
	}
}

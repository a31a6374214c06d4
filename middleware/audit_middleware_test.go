package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuditMiddlewareWithEmptyURLIsNoOp(t *testing.T) {
	ResetGlobalAuditMiddleware()
	mw := NewAuditMiddleware("")
	assert.Nil(t, mw.httpClient)
}

func TestLogDecisionPostsEvent(t *testing.T) {
	ResetGlobalAuditMiddleware()

	auditReceived := make(chan AuthorizeDecisionAuditRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var received AuthorizeDecisionAuditRequest
		err := json.NewDecoder(r.Body).Decode(&received)
		require.NoError(t, err)
		w.WriteHeader(http.StatusCreated)
		auditReceived <- received
	}))
	defer server.Close()

	mw := NewAuditMiddleware(server.URL)
	mw.LogDecision("acct-1", "Mutation", "authenticate(email: *, password: *)::*", true)

	select {
	case received := <-auditReceived:
		assert.NotEmpty(t, received.EventID)
		assert.Equal(t, "acct-1", received.AccountID)
		assert.Equal(t, "Mutation", received.AccessKind)
		assert.True(t, received.Granted)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for audit event")
	}
}

func TestLogAuthorizeDecisionWithoutGlobalInstanceDoesNotPanic(t *testing.T) {
	ResetGlobalAuditMiddleware()
	// No global instance installed: should warn, not panic.
	assert.NotPanics(t, func() {
		LogAuthorizeDecision("acct-1", "Query", "foo", false)
	})
}

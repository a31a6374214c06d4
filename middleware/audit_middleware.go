package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditMiddleware fire-and-forget-logs authorize decisions to an external
// audit service.
type AuditMiddleware struct {
	auditServiceURL string
	httpClient      *http.Client
}

// Global audit middleware instance for easy access from handlers.
var (
	globalAuditMiddleware *AuditMiddleware
	globalAuditOnce       sync.Once
)

// AuthorizeDecisionAuditRequest is the audit service API structure for an
// authorize decision.
type AuthorizeDecisionAuditRequest struct {
	EventID       string `json:"eventId" validate:"required"`
	Timestamp     string `json:"timestamp" validate:"required"`
	AccountID     string `json:"accountId,omitempty"`
	AccessKind    string `json:"accessKind" validate:"required"`
	RequestedPath string `json:"requestedPath" validate:"required"`
	Granted       bool   `json:"granted"`
}

// NewAuditMiddleware creates a new audit middleware with thread-safe global
// initialization. Typically called once during application startup;
// subsequent calls return a new instance but don't update the global one.
func NewAuditMiddleware(auditServiceURL string) *AuditMiddleware {
	var mw *AuditMiddleware

	if auditServiceURL == "" {
		mw = &AuditMiddleware{auditServiceURL: "", httpClient: nil}
	} else {
		mw = &AuditMiddleware{
			auditServiceURL: auditServiceURL,
			httpClient:      &http.Client{},
		}
	}

	globalAuditOnce.Do(func() {
		globalAuditMiddleware = mw
	})

	return mw
}

// LogDecision records an authorize decision, asynchronously.
func (m *AuditMiddleware) LogDecision(accountID, accessKind, requestedPath string, granted bool) {
	if m.auditServiceURL == "" {
		return
	}

	event := AuthorizeDecisionAuditRequest{
		EventID:       uuid.New().String(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		AccountID:     accountID,
		AccessKind:    accessKind,
		RequestedPath: requestedPath,
		Granted:       granted,
	}

	go m.logDecisionEvent(context.Background(), event)
}

func (m *AuditMiddleware) logDecisionEvent(ctx context.Context, event AuthorizeDecisionAuditRequest) {
	if m.httpClient == nil {
		return
	}

	payloadBytes, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal audit request", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.auditServiceURL+"/authorize-decision-events", bytes.NewReader(payloadBytes))
	if err != nil {
		slog.Error("failed to create audit request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		slog.Error("failed to send audit request", "error", err)
		return
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			slog.Error("failed to close audit response body", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		slog.Error("audit service returned non-201 status", "status", resp.StatusCode, "body", string(bodyBytes))
		return
	}

	slog.Debug("authorize decision audit event logged successfully",
		"accountId", event.AccountID,
		"accessKind", event.AccessKind,
		"granted", event.Granted)
}

// LogAuthorizeDecision logs a decision using the global audit middleware
// instance.
func LogAuthorizeDecision(accountID, accessKind, requestedPath string, granted bool) {
	if globalAuditMiddleware != nil {
		globalAuditMiddleware.LogDecision(accountID, accessKind, requestedPath, granted)
	} else {
		slog.Warn("global AuditMiddleware is not initialized; decision not logged")
	}
}

// ResetGlobalAuditMiddleware is a helper function for tests to reset the
// global audit middleware instance.
func ResetGlobalAuditMiddleware() {
	globalAuditOnce = sync.Once{}
	globalAuditMiddleware = nil
}

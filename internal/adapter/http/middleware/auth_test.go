package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/service/session"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
)

type fakeSession struct {
	signature string
}

func (f *fakeSession) CurrentSignature() string { return f.signature }

func newTestMiddleware(sess *fakeSession, tokens *session.TokenManager) *Middleware {
	return NewMiddleware(tokens, sess, logger.InitLogger("middleware-test", logger.LevelError))
}

func okHandler(called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireSessionAcceptsFreshToken(t *testing.T) {
	tokens := session.NewTokenManager("test-secret", time.Hour)
	sess := &fakeSession{signature: "sig-1"}
	m := newTestMiddleware(sess, tokens)

	token, _, err := tokens.Issue("admin", "sig-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.RequireSession(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !called {
		t.Fatal("handler was not invoked")
	}
}

func TestRequireSessionRejectsStaleSignature(t *testing.T) {
	tokens := session.NewTokenManager("test-secret", time.Hour)
	sess := &fakeSession{signature: "sig-1"}
	m := newTestMiddleware(sess, tokens)

	token, _, err := tokens.Issue("admin", "sig-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Credential rotation moves the live signature.
	sess.signature = "sig-2"

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.RequireSession(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if called {
		t.Fatal("handler must not run on a stale token")
	}
}

func TestRequireSessionRejectsMissingAndMalformedHeaders(t *testing.T) {
	tokens := session.NewTokenManager("test-secret", time.Hour)
	m := newTestMiddleware(&fakeSession{signature: "sig-1"}, tokens)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "just-a-token"},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			m.RequireSession(okHandler(&called)).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if called {
				t.Fatal("handler must not run without a valid token")
			}
		})
	}
}

func TestRequireSessionRejectsTokenFromOtherSecret(t *testing.T) {
	tokens := session.NewTokenManager("test-secret", time.Hour)
	other := session.NewTokenManager("other-secret", time.Hour)
	m := newTestMiddleware(&fakeSession{signature: "sig-1"}, tokens)

	token, _, err := other.Issue("admin", "sig-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.RequireSession(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if called {
		t.Fatal("handler must not run with a foreign-signed token")
	}
}

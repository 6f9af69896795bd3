package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	"github.com/Daniyar8k/park-ledger-system/pkg/passhash"
)

type memSessionStore struct {
	mu    sync.Mutex
	state models.SessionState
}

func (m *memSessionStore) LoadSession() (models.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *memSessionStore) SaveSession(state models.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	return nil
}

type memCreds struct {
	mu    sync.Mutex
	creds models.Credentials
}

func (m *memCreds) Credentials() models.Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds
}

func (m *memCreds) set(c models.Credentials) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = c
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := passhash.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return h
}

func newTestGuard(t *testing.T, password string) (*Guard, *memSessionStore, *memCreds) {
	t.Helper()
	store := &memSessionStore{}
	creds := &memCreds{creds: models.Credentials{
		Username:     "admin",
		PasswordHash: mustHash(t, password),
	}}
	log := logger.InitLogger("session-test", logger.LevelError)
	return NewGuard(store, creds, log), store, creds
}

func TestLogin_CorrectAndWrongCredentials(t *testing.T) {
	guard, store, _ := newTestGuard(t, "secret")

	if guard.Login(context.Background(), "admin", "wrong") {
		t.Fatal("login must fail on wrong password")
	}
	if guard.Login(context.Background(), "someone", "secret") {
		t.Fatal("login must fail on unknown username")
	}
	if !guard.Login(context.Background(), "admin", "secret") {
		t.Fatal("login must succeed on correct credentials")
	}

	state, _ := store.LoadSession()
	if !state.LoggedIn || state.CredentialSignature == "" {
		t.Fatalf("persisted state incomplete: %+v", state)
	}
	if !guard.Valid() {
		t.Fatal("session must be valid after login")
	}
}

func TestLogout_ClearsFlagKeepsSignature(t *testing.T) {
	guard, store, _ := newTestGuard(t, "secret")

	if !guard.Login(context.Background(), "admin", "secret") {
		t.Fatal("login failed")
	}
	before, _ := store.LoadSession()

	guard.Logout(context.Background())

	after, _ := store.LoadSession()
	if after.LoggedIn {
		t.Fatal("flag must be cleared on logout")
	}
	if after.CredentialSignature != before.CredentialSignature {
		t.Fatal("signature must survive logout")
	}
	if guard.Valid() {
		t.Fatal("session must be invalid after logout")
	}
}

func TestRevalidate_InvalidatesOnCredentialRotation(t *testing.T) {
	guard, store, creds := newTestGuard(t, "secret")

	if !guard.Login(context.Background(), "admin", "secret") {
		t.Fatal("login failed")
	}
	if !guard.Revalidate(context.Background()) {
		t.Fatal("session must still be valid before rotation")
	}

	// Rotate the authoritative password.
	creds.set(models.Credentials{
		Username:     "admin",
		PasswordHash: mustHash(t, "rotated"),
	})

	if guard.Revalidate(context.Background()) {
		t.Fatal("session must be forced invalid after rotation")
	}

	state, _ := store.LoadSession()
	if state.LoggedIn {
		t.Fatal("logged-in flag must be cleared on invalidation")
	}

	// Direct re-login with the new credentials succeeds.
	if !guard.Login(context.Background(), "admin", "rotated") {
		t.Fatal("re-login with rotated credentials must succeed")
	}
	if !guard.Revalidate(context.Background()) {
		t.Fatal("session must be valid after re-login")
	}
}

func TestTokenManager_RoundTripAndSignatureBinding(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expires, err := tm.Issue("admin", "sig-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !expires.After(time.Now()) {
		t.Fatal("expiry must be in the future")
	}

	claims, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Username != "admin" || claims.Signature != "sig-1" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestTokenManager_RejectsTampered(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, _, err := other.Issue("admin", "sig-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tm.Validate(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
	if _, err := tm.Validate("not-a-token"); err == nil {
		t.Fatal("garbage must be rejected")
	}
}

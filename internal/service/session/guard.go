package session

import (
	"context"
	"sync"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/hasher"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
	"github.com/Daniyar8k/park-ledger-system/pkg/passhash"
)

type (
	// CacheStore persists the session flags between restarts.
	CacheStore interface {
		LoadSession() (models.SessionState, error)
		SaveSession(state models.SessionState) error
	}

	// CredentialSource exposes the currently loaded authoritative credentials.
	CredentialSource interface {
		Credentials() models.Credentials
	}
)

// Guard derives session validity from the authoritative credentials. The
// session is not stored data: it is valid only while the persisted logged-in
// flag is set and the persisted signature matches the signature of the
// current credentials. Any credential rotation therefore invalidates every
// previously logged-in device on its next load.
type Guard struct {
	mu    sync.Mutex
	state models.SessionState

	cache CacheStore
	creds CredentialSource
	log   logger.Logger
}

func NewGuard(cache CacheStore, creds CredentialSource, log logger.Logger) *Guard {
	return &Guard{
		cache: cache,
		creds: creds,
		log:   log,
	}
}

// Signature computes the credential signature the guard compares against.
// It is derived from the stored hash, so plaintext never leaves the login path.
func Signature(c models.Credentials) string {
	return hasher.Hash(signatureInput(c))
}

func signatureInput(c models.Credentials) string {
	return c.Username + "|" + c.PasswordHash
}

// Login checks the given credentials against the authoritative ones. An
// authentication failure is a boolean false, never an error. On success the
// logged-in flag and the credential signature are persisted.
func (g *Guard) Login(ctx context.Context, username, password string) bool {
	ctx = wrap.WithAction(ctx, types.ActionLogin)
	ctx = wrap.WithOperator(ctx, username)

	current := g.creds.Credentials()
	if username != current.Username {
		g.log.Debug(ctx, "login rejected: unknown username")
		return false
	}

	ok, err := passhash.VerifyPassword(password, current.PasswordHash)
	if err != nil {
		g.log.Error(ctx, "password verification failed", err)
		return false
	}
	if !ok {
		g.log.Debug(ctx, "login rejected: wrong password")
		return false
	}

	g.mu.Lock()
	g.state = models.SessionState{
		LoggedIn:            true,
		CredentialSignature: Signature(current),
	}
	state := g.state
	g.mu.Unlock()

	if err := g.cache.SaveSession(state); err != nil {
		g.log.Error(ctx, "failed to persist session", err)
	}

	g.log.Info(ctx, "operator logged in")

	return true
}

// Logout clears the logged-in flag. The signature stays in place so a later
// Revalidate can still tell whether credentials rotated in the meantime.
func (g *Guard) Logout(ctx context.Context) {
	ctx = wrap.WithAction(ctx, types.ActionLogout)

	g.mu.Lock()
	g.state.LoggedIn = false
	state := g.state
	g.mu.Unlock()

	if err := g.cache.SaveSession(state); err != nil {
		g.log.Error(ctx, "failed to persist session", err)
	}

	g.log.Info(ctx, "operator logged out")
}

// Revalidate recomputes session validity against the freshly loaded
// authoritative credentials. Called on startup and after every
// reconciliation reload. When the persisted signature no longer matches,
// the session is forced invalid and the flag cleared.
func (g *Guard) Revalidate(ctx context.Context) bool {
	stored, err := g.cache.LoadSession()
	if err != nil {
		g.log.Warn(ctx, "failed to load session from cache, forcing logout", "err", err.Error())
		stored = models.SessionState{}
	}

	valid := stored.LoggedIn &&
		hasher.Verify(signatureInput(g.creds.Credentials()), stored.CredentialSignature)

	if !valid && stored.LoggedIn {
		g.log.Info(ctx, "session invalidated by credential change")
		stored.LoggedIn = false
		if err := g.cache.SaveSession(stored); err != nil {
			g.log.Error(ctx, "failed to persist invalidated session", err)
		}
	}

	g.mu.Lock()
	g.state = stored
	g.mu.Unlock()

	return valid
}

// Valid reports whether the in-memory session is currently valid.
func (g *Guard) Valid() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.LoggedIn &&
		hasher.Verify(signatureInput(g.creds.Credentials()), g.state.CredentialSignature)
}

// CurrentSignature returns the signature of the authoritative credentials.
// The HTTP layer embeds it in tokens and rechecks it on every request.
func (g *Guard) CurrentSignature() string {
	return Signature(g.creds.Credentials())
}

// Package session centralizes the one piece of process-wide state the sync
// core depends on: the persisted credentials. Every storage read goes through
// the Guard instead of being scattered across operations.
package session

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Persisted session keys. UserToken and AdminToken are the two credential
// slots; the user token takes precedence when both are present.
const (
	KeyUserToken  = "userToken"
	KeyAdminToken = "adminToken"
	KeyUserData   = "userData"
)

// Storage is a string-keyed key-value store for session data, mirroring the
// browser's local storage the original frontend persisted into.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Navigator moves the application to a new destination. The sync controllers
// use it to force a login redirect on credential failure.
type Navigator interface {
	Navigate(destination string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(destination string)

func (f NavigatorFunc) Navigate(destination string) { f(destination) }

// Identity is the persisted profile snapshot stored under KeyUserData.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// MemoryStorage is an in-process Storage implementation.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStorage creates an empty in-memory session storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *MemoryStorage) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Guard gates sync operations on a valid session and provides the
// invalidate-and-redirect escape hatch.
type Guard struct {
	storage Storage
	nav     Navigator
	logger  *slog.Logger
	now     func() time.Time
}

// NewGuard creates a session guard over the given storage and navigator.
func NewGuard(storage Storage, nav Navigator, logger *slog.Logger) *Guard {
	return &Guard{
		storage: storage,
		nav:     nav,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the guard's time source. Test hook.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Token returns the active bearer credential. The user slot wins over the
// admin slot when both are populated.
func (g *Guard) Token() (string, bool) {
	if tok, ok := g.storage.Get(KeyUserToken); ok && tok != "" {
		return tok, true
	}
	if tok, ok := g.storage.Get(KeyAdminToken); ok && tok != "" {
		return tok, true
	}
	return "", false
}

// Identity returns the persisted identity snapshot, if any.
func (g *Guard) Identity() (Identity, bool) {
	raw, ok := g.storage.Get(KeyUserData)
	if !ok || raw == "" {
		return Identity{}, false
	}
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return Identity{}, false
	}
	if id.ID == "" {
		return Identity{}, false
	}
	return id, true
}

// UserID returns the persisted user identifier.
func (g *Guard) UserID() (string, bool) {
	id, ok := g.Identity()
	if !ok {
		return "", false
	}
	return id.ID, true
}

// HasSession reports whether both an identity and a bearer credential are
// present.
func (g *Guard) HasSession() bool {
	if _, ok := g.Token(); !ok {
		return false
	}
	_, ok := g.UserID()
	return ok
}

// IsSessionFresh decodes the credential's expiry claim without verifying the
// signature and compares it to the current time. Malformed credentials and
// credentials without an expiry are reported stale. This check is advisory;
// the server-side 401 path remains authoritative.
func (g *Guard) IsSessionFresh() bool {
	tok, ok := g.Token()
	if !ok {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return g.now().Before(exp.Time)
}

// SignIn persists a user credential and identity snapshot.
func (g *Guard) SignIn(token string, identity Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	g.storage.Set(KeyUserToken, token)
	g.storage.Set(KeyUserData, string(raw))
	return nil
}

// InvalidateAndRedirect clears every persisted session key, both credential
// slots included, and navigates to the given destination. Called by the sync
// controllers on authentication failure and by user-initiated logout.
func (g *Guard) InvalidateAndRedirect(destination string) {
	g.storage.Delete(KeyUserToken)
	g.storage.Delete(KeyAdminToken)
	g.storage.Delete(KeyUserData)

	if g.logger != nil {
		g.logger.Info("session invalidated", slog.String("redirect", destination))
	}

	g.nav.Navigate(destination)
}

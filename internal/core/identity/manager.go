package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNoSession is returned by Store.Load when no user record exists.
var ErrNoSession = errors.New("no active session")

// AuthError is returned when credentials are rejected.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// Store defines persistence for the single session user record.
type Store interface {
	// Load returns the persisted user. Returns ErrNoSession if none exists.
	Load(ctx context.Context) (User, error)
	// Save creates or replaces the persisted user.
	Save(ctx context.Context, u User) error
	// Clear removes the persisted user. Clearing an absent record is not
	// an error.
	Clear(ctx context.Context) error
}

// Manager owns the process-wide session state. There is no real
// credential check behind Login; it exists so the messaging core has a
// well-defined answer to "who is the outgoing sender".
type Manager struct {
	store   Store
	latency time.Duration
	log     zerolog.Logger

	mu      sync.RWMutex
	current *User
}

// NewManager creates a session manager backed by the given store.
// latency is the simulated credential-check delay applied on Login.
func NewManager(store Store, latency time.Duration, log zerolog.Logger) *Manager {
	return &Manager{
		store:   store,
		latency: latency,
		log:     log,
	}
}

// Restore loads a previously persisted session, if any. Called once at
// startup. Returns false when no session exists.
func (m *Manager) Restore(ctx context.Context) (User, bool, error) {
	u, err := m.store.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("restore session: %w", err)
	}

	m.mu.Lock()
	m.current = &u
	m.mu.Unlock()

	m.log.Debug().Str("username", u.Username).Msg("restored session")
	return u, true, nil
}

// Login validates credentials, waits out the simulated latency, and
// persists the resulting user. Empty username or password fails with
// AuthError and leaves session state unchanged.
func (m *Manager) Login(ctx context.Context, username, password string) (User, error) {
	if username == "" {
		return User{}, &AuthError{Reason: "username is required"}
	}
	if password == "" {
		return User{}, &AuthError{Reason: "password is required"}
	}

	if m.latency > 0 {
		select {
		case <-time.After(m.latency):
		case <-ctx.Done():
			return User{}, ctx.Err()
		}
	}

	u := User{
		ID:          uuid.NewString(),
		Username:    username,
		DisplayName: username,
		Avatar:      AvatarURL(username),
		Status:      "Available",
	}

	if err := m.store.Save(ctx, u); err != nil {
		return User{}, fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.current = &u
	m.mu.Unlock()

	m.log.Info().Str("username", username).Msg("logged in")
	return u, nil
}

// Logout clears the session from memory and storage.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	m.log.Info().Msg("logged out")
	return nil
}

// UpdateProfile merges the partial update into the current user and
// re-persists it. A no-op when no session is active.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) (User, error) {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return User{}, nil
	}
	u := update.Apply(*m.current)
	m.current = &u
	m.mu.Unlock()

	if err := m.store.Save(ctx, u); err != nil {
		return User{}, fmt.Errorf("persist profile: %w", err)
	}

	m.log.Debug().Str("username", u.Username).Msg("profile updated")
	return u, nil
}

// Current returns the session user, or false when logged out.
func (m *Manager) Current() (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return User{}, false
	}
	return *m.current, true
}

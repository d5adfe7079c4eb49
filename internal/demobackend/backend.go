// Package demobackend is an in-memory authentication backend for the demo
// host and tests. It verifies credentials against a map, logs magic-link
// and reset emails instead of sending them, and publishes every session
// change on the session bus.
package demobackend

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/authcard"
	"github.com/nfrund/authcard/sessionbus"
)

// Messages returned to the card are shown to the user verbatim.
var (
	errInvalidCredentials = errors.New("Invalid email or password.")
	errDuplicateAccount   = errors.New("An account with this email already exists.")
)

// Backend is a single-session, in-memory authcard.Backend.
type Backend struct {
	bus *sessionbus.Bus

	mu      sync.Mutex
	users   map[string]string
	current authcard.Observation
}

// New creates a backend with no accounts and no session.
func New(bus *sessionbus.Bus) *Backend {
	return &Backend{
		bus:     bus,
		users:   make(map[string]string),
		current: authcard.Absent(),
	}
}

// Seed registers an account without going through SignUp.
func (b *Backend) Seed(email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[email] = password
}

// SignInWithPassword verifies credentials and opens the session.
func (b *Backend) SignInWithPassword(ctx context.Context, email, password string) error {
	b.mu.Lock()
	stored, ok := b.users[email]
	b.mu.Unlock()
	if !ok || stored != password {
		return errInvalidCredentials
	}
	b.setSession(authcard.Present(authcard.User{ID: uuid.NewString(), Email: email}))
	return nil
}

// RequestMagicLink logs the link a real backend would email.
func (b *Backend) RequestMagicLink(ctx context.Context, email string) error {
	slog.Info("--- Magic link (logged) ---",
		"to", email,
		"link", "/auth/magic?token="+uuid.NewString(),
	)
	return nil
}

// SignUp registers the account and opens a session for it.
func (b *Backend) SignUp(ctx context.Context, email, password string) error {
	b.mu.Lock()
	if _, exists := b.users[email]; exists {
		b.mu.Unlock()
		return errDuplicateAccount
	}
	b.users[email] = password
	b.mu.Unlock()

	b.setSession(authcard.Present(authcard.User{ID: uuid.NewString(), Email: email}))
	return nil
}

// RequestPasswordReset logs the reset link. It succeeds for unknown emails
// too, so the demo does not leak which accounts exist.
func (b *Backend) RequestPasswordReset(ctx context.Context, email string) error {
	slog.Info("--- Password reset (logged) ---",
		"to", email,
		"link", "/auth/reset-password?token="+uuid.NewString(),
	)
	return nil
}

// ResetPassword stores a new password for the signed-in account.
func (b *Backend) ResetPassword(ctx context.Context, password string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.current.Authenticated() {
		return errors.New("Your reset link has expired. Please request a new one.")
	}
	b.users[b.current.User.Email] = password
	return nil
}

// SignOut closes the session.
func (b *Backend) SignOut(ctx context.Context) error {
	b.setSession(authcard.Absent())
	return nil
}

// Current implements echocard.SessionPeek.
func (b *Backend) Current(echo.Context) authcard.Observation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Backend) setSession(obs authcard.Observation) {
	b.mu.Lock()
	b.current = obs
	b.mu.Unlock()

	if b.bus == nil {
		return
	}
	if err := b.bus.Publish(obs); err != nil {
		slog.Warn("failed to publish session observation", "error", err)
	}
}

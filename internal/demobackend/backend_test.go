package demobackend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/authcard"
	"github.com/nfrund/authcard/sessionbus"
)

func TestSignInLifecycle(t *testing.T) {
	b := New(nil)
	b.Seed("demo@example.com", "password123")
	ctx := context.Background()

	assert.Error(t, b.SignInWithPassword(ctx, "demo@example.com", "wrong"))
	assert.False(t, b.Current(nil).Authenticated())

	require.NoError(t, b.SignInWithPassword(ctx, "demo@example.com", "password123"))
	obs := b.Current(nil)
	require.True(t, obs.Authenticated())
	assert.Equal(t, "demo@example.com", obs.User.Email)

	require.NoError(t, b.SignOut(ctx))
	assert.Equal(t, authcard.SessionAbsent, b.Current(nil).State)
}

func TestSignUpRejectsDuplicates(t *testing.T) {
	b := New(nil)
	ctx := context.Background()

	require.NoError(t, b.SignUp(ctx, "new@example.com", "secret"))
	assert.True(t, b.Current(nil).Authenticated())

	err := b.SignUp(ctx, "new@example.com", "other")
	assert.EqualError(t, err, "An account with this email already exists.")
}

func TestSessionChangesReachTheBus(t *testing.T) {
	bus := sessionbus.New()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan authcard.Observation, 2)
	require.NoError(t, bus.Subscribe(ctx, func(obs authcard.Observation) {
		received <- obs
	}))

	b := New(bus)
	b.Seed("demo@example.com", "password123")
	require.NoError(t, b.SignInWithPassword(ctx, "demo@example.com", "password123"))

	obs := <-received
	assert.True(t, obs.Authenticated())
}

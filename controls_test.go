package authcard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlsDeriveFromState(t *testing.T) {
	t.Run("login in password mode", func(t *testing.T) {
		w := New(testConfig(&fakeBackend{}))
		c := w.Snapshot().Controls

		assert.True(t, c.SubmitEnabled)
		assert.False(t, c.Spinner)
		assert.True(t, c.PasswordField)
		assert.True(t, c.ToggleSignupLogin)
		assert.True(t, c.MagicLinkToggle)
		assert.True(t, c.EnableMagicLink)
		assert.False(t, c.DisableMagicLink, "present but disabled while already in password mode")
	})

	t.Run("login in magic-link mode", func(t *testing.T) {
		w := New(testConfig(&fakeBackend{}))
		w.EnableMagicLink()
		c := w.Snapshot().Controls

		assert.False(t, c.PasswordField)
		assert.False(t, c.EnableMagicLink)
		assert.True(t, c.DisableMagicLink)
	})

	t.Run("non-login views render no mode toggle", func(t *testing.T) {
		for _, view := range []View{ViewSignup, ViewForgotPassword, ViewResetPassword, ViewLogout} {
			cfg := testConfig(&fakeBackend{})
			cfg.InitialView = view
			c := New(cfg).Snapshot().Controls

			assert.False(t, c.MagicLinkToggle, "view %s", view)
			assert.False(t, c.EnableMagicLink, "view %s", view)
			assert.False(t, c.DisableMagicLink, "view %s", view)
		}
	})

	t.Run("in flight disables submit and shows the spinner", func(t *testing.T) {
		backend := &fakeBackend{gate: make(chan struct{})}
		w := New(testConfig(backend))
		w.SetEmail("a@b.com")
		w.SetPassword("x")

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = w.Submit(context.Background())
		}()
		require.Eventually(t, w.InFlight, time.Second, time.Millisecond)

		c := w.Snapshot().Controls
		assert.False(t, c.SubmitEnabled)
		assert.True(t, c.Spinner)

		close(backend.gate)
		<-done
	})
}

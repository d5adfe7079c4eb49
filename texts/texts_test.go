package texts

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/nfrund/authcard"
)

func TestKeyDerivation(t *testing.T) {
	assert.Equal(t, "login_title", Key(authcard.ViewLogin, "_title"))
	assert.Equal(t, "forgot_password_button", Key(authcard.ViewForgotPassword, "_button"))
	assert.Equal(t, "reset_password_description", Key(authcard.ViewResetPassword, "_description"))
}

func TestLookupMissingKeyIsBlank(t *testing.T) {
	tb := Table{"login_title": "Sign in"}
	assert.Equal(t, "Sign in", tb.Lookup("login_title"))
	assert.Equal(t, "", tb.Lookup("login_nonexistent"))
	assert.Equal(t, "", Table(nil).Lookup("login_title"))
}

func TestDefaultTableCoversEveryView(t *testing.T) {
	tb := Default()
	for _, view := range authcard.Views {
		for _, suffix := range []string{"_title", "_description", "_button"} {
			assert.NotEmpty(t, tb.View(view, suffix), "missing %s", Key(view, suffix))
		}
	}
}

func TestMergeLayersOverrides(t *testing.T) {
	base := Table{"login_title": "Sign in", "login_button": "Sign in"}
	merged := Merge(base, Table{"login_title": "Welcome back"})

	assert.Equal(t, "Welcome back", merged.Lookup("login_title"))
	assert.Equal(t, "Sign in", merged.Lookup("login_button"))
	assert.Equal(t, "Sign in", base.Lookup("login_title"), "inputs stay unmodified")
}

func TestCatalogMatching(t *testing.T) {
	c := DefaultCatalog(nil)
	c.Add(language.German, Table{"login_title": "Anmelden"})

	assert.Equal(t, "Anmelden", c.Table("de-DE").Lookup("login_title"))
	assert.Equal(t, "Sign in", c.Table("en-US").Lookup("login_title"))
	assert.Equal(t, "Sign in", c.Table("").Lookup("login_title"))
	assert.Equal(t, "Sign in", c.Table("fr").Lookup("login_title"))

	// Keys missing from a language fall back to the default table.
	assert.Equal(t, Default().Lookup("signup_title"), c.Table("de").Lookup("signup_title"))
}

func TestCatalogFallbackUpdateReachesOtherLanguages(t *testing.T) {
	c := DefaultCatalog(nil)
	c.Add(language.German, Table{"login_title": "Anmelden"})

	// A later fallback update, as a texts file reload produces, backs the
	// keys German never defined.
	c.Add(FallbackTag, Table{"signup_title": "Join us"})

	assert.Equal(t, "Join us", c.Table("en").Lookup("signup_title"))
	assert.Equal(t, "Join us", c.Table("de").Lookup("signup_title"))
	assert.Equal(t, "Anmelden", c.Table("de").Lookup("login_title"), "language-specific keys keep winning")
}

func TestLoader(t *testing.T) {
	fs := afero.NewMemMapFs()

	t.Run("missing file keeps the base table", func(t *testing.T) {
		l := NewLoader(fs, "/texts.json", Default())
		assert.Error(t, l.Load())
		assert.Equal(t, Default().Lookup("login_title"), l.Table().Lookup("login_title"))
	})

	t.Run("overrides layer on the base table", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/texts.json", []byte(`{"login_title":"Hello again"}`), 0o644))

		var reloaded Table
		l := NewLoader(fs, "/texts.json", Default())
		l.OnReload = func(tb Table) { reloaded = tb }

		require.NoError(t, l.Load())
		assert.Equal(t, "Hello again", l.Table().Lookup("login_title"))
		assert.Equal(t, Default().Lookup("signup_title"), l.Table().Lookup("signup_title"))
		assert.NotNil(t, reloaded)
	})

	t.Run("malformed file keeps the previous table", func(t *testing.T) {
		l := NewLoader(fs, "/texts.json", Default())
		require.NoError(t, l.Load())

		require.NoError(t, afero.WriteFile(fs, "/texts.json", []byte(`{not json`), 0o644))
		assert.Error(t, l.Load())
		assert.Equal(t, "Hello again", l.Table().Lookup("login_title"))
	})
}

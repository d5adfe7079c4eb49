// Package texts supplies the localized strings the card renders. Keys are
// derived mechanically from the active view name; hosts override a subset
// and the built-in default table backs the rest.
package texts

import (
	"strings"

	"github.com/nfrund/authcard"
)

// Table is a flat key to display-text mapping.
type Table map[string]string

// Key derives a lookup key from a view name and suffix: hyphens become
// underscores and the suffix is appended, e.g. Key(ViewForgotPassword,
// "_title") yields "forgot_password_title".
func Key(view authcard.View, suffix string) string {
	return strings.ReplaceAll(view.String(), "-", "_") + suffix
}

// Lookup returns the text for key, or the empty string when the key is
// missing. A missing key is a configuration mistake on the host's side; it
// degrades to blank rendering, never a fault.
func (t Table) Lookup(key string) string {
	return t[key]
}

// View is shorthand for looking up a view-derived key.
func (t Table) View(view authcard.View, suffix string) string {
	return t.Lookup(Key(view, suffix))
}

// Merge layers overrides on top of base, returning a new table. Neither
// input is modified.
func Merge(base, overrides Table) Table {
	merged := make(Table, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Default returns the built-in English table covering every key the card
// renders.
func Default() Table {
	return Table{
		"login_title":          "Sign in",
		"login_description":    "Welcome back. Sign in to your account.",
		"login_button":         "Sign in",
		"login_email_label":    "Email",
		"login_password_label": "Password",
		"login_toggle":         "Don't have an account? Sign up",
		"login_magic_link":     "Email me a magic link instead",
		"login_password_link":  "Use a password instead",

		"signup_title":          "Create an account",
		"signup_description":    "A few seconds and you're in.",
		"signup_button":         "Sign up",
		"signup_email_label":    "Email",
		"signup_password_label": "Password",
		"signup_toggle":         "Already have an account? Sign in",

		"forgot_password_title":       "Forgot your password?",
		"forgot_password_description": "Enter your email and we'll send you a reset link.",
		"forgot_password_button":      "Send reset link",
		"forgot_password_email_label": "Email",

		"reset_password_title":          "Reset your password",
		"reset_password_description":    "Choose a new password for your account.",
		"reset_password_button":         "Update password",
		"reset_password_password_label": "New password",

		"logout_title":       "Sign out",
		"logout_description": "Sign out of your account on this device.",
		"logout_button":      "Sign out",
	}
}

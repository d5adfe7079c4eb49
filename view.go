package authcard

import "strings"

// View identifies one of the five screens the card can display.
type View string

const (
	ViewLogin          View = "login"
	ViewSignup         View = "signup"
	ViewForgotPassword View = "forgot-password"
	ViewResetPassword  View = "reset-password"
	ViewLogout         View = "logout"
)

// Views lists every view in display order. Useful for route registration
// and for tests that need to cover the full set.
var Views = []View{ViewLogin, ViewSignup, ViewForgotPassword, ViewResetPassword, ViewLogout}

// String returns the hyphenated view name, which doubles as its path segment.
func (v View) String() string {
	return string(v)
}

// Valid reports whether v is one of the five known views.
func (v View) Valid() bool {
	switch v {
	case ViewLogin, ViewSignup, ViewForgotPassword, ViewResetPassword, ViewLogout:
		return true
	}
	return false
}

// ParseView converts a raw string to a View. The second return value is
// false when the string is not a known view name.
func ParseView(s string) (View, bool) {
	v := View(s)
	return v, v.Valid()
}

// ResolveView reconciles the active view with a host-supplied path. It takes
// the final path segment and, if it exactly matches a view name, adopts it;
// any other segment (including an empty path) leaves the current view
// untouched. Unrecognized segments are never an error.
func ResolveView(current View, hostPath string) View {
	segment := lastSegment(hostPath)
	if v, ok := ParseView(segment); ok {
		return v
	}
	return current
}

func lastSegment(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

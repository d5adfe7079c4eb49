package authcard

// Config holds everything a host supplies when embedding the card.
type Config struct {
	// InitialView is the view shown at mount before any path resolution.
	InitialView View

	// Routing enables automatic view resolution from the host path and
	// push-based navigation for the login/signup cross-link. When false,
	// the view changes only through explicit user-triggered transitions.
	Routing bool

	// EmailPassword enables password-based login. When false the card
	// starts in magic-link mode and the password toggle is unreachable.
	EmailPassword bool

	// MagicLink starts the login view in magic-link mode.
	MagicLink bool

	// LandingPath is the navigation target after a session observation
	// reports an authenticated, non-anonymous user.
	LandingPath string

	// LoginPath and SignupPath are the navigation targets for the
	// login/signup cross-link when Routing is enabled.
	LoginPath  string
	SignupPath string

	// Backend is the external authentication service handle. Required for
	// Submit to do anything.
	Backend Backend

	// Navigator is the host navigation function. Optional; navigation is
	// skipped when nil.
	Navigator Navigator

	// Notifier is the optional host notification sink. When nil the card
	// renders notifications inline.
	Notifier Notifier
}

// DefaultConfig returns the configuration a typical host starts from:
// login view, routing on, password login enabled, root as landing path.
func DefaultConfig() Config {
	return Config{
		InitialView:   ViewLogin,
		Routing:       true,
		EmailPassword: true,
		LandingPath:   "/",
		LoginPath:     "/login",
		SignupPath:    "/signup",
	}
}

func (c Config) withDefaults() Config {
	if c.InitialView == "" {
		c.InitialView = ViewLogin
	}
	if c.LandingPath == "" {
		c.LandingPath = "/"
	}
	if c.LoginPath == "" {
		c.LoginPath = "/" + ViewLogin.String()
	}
	if c.SignupPath == "" {
		c.SignupPath = "/" + ViewSignup.String()
	}
	return c
}

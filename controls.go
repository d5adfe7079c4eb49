package authcard

// Controls captures the availability of every interactive element as a pure
// function of the card state. Renderers evaluate it at render time instead
// of tracking separate enabled/visible flags.
type Controls struct {
	// SubmitEnabled gates the submit button. False while a submission is
	// in flight.
	SubmitEnabled bool

	// Spinner is shown only while a submission is in flight.
	Spinner bool

	// PasswordField reports whether the active view collects a password.
	PasswordField bool

	// ToggleSignupLogin reports whether the login/signup cross-link is
	// available (login and signup views only).
	ToggleSignupLogin bool

	// MagicLinkToggle reports whether the magic-link/password toggle is
	// rendered at all. It is absent, not just disabled, when the host
	// turned password login off.
	MagicLinkToggle bool

	// EnableMagicLink and DisableMagicLink gate the two toggle directions.
	// The buttons stay rendered when their precondition fails, disabled.
	EnableMagicLink  bool
	DisableMagicLink bool
}

// Snapshot is an immutable copy of the card state for rendering.
type Snapshot struct {
	View         View
	MagicLink    bool
	InFlight     bool
	Email        string
	Notification *Notification
	Controls     Controls
}

// Snapshot returns a render-time copy of the card state.
func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Snapshot{
		View:      w.view,
		MagicLink: w.magicLink,
		InFlight:  w.inFlight,
		Email:     w.email,
	}
	if w.inline != nil {
		n := *w.inline
		s.Notification = &n
	}
	s.Controls = controlsFor(s.View, s.MagicLink, s.InFlight, w.cfg)
	return s
}

// controlsFor derives control availability from (View, MagicLinkMode,
// SubmissionState, config flags).
func controlsFor(view View, magic, inFlight bool, cfg Config) Controls {
	onLogin := view == ViewLogin
	return Controls{
		SubmitEnabled:     !inFlight,
		Spinner:           inFlight,
		PasswordField:     viewCollectsPassword(view, magic),
		ToggleSignupLogin: onLogin || view == ViewSignup,
		MagicLinkToggle:   onLogin && cfg.EmailPassword,
		EnableMagicLink:   onLogin && !magic,
		DisableMagicLink:  onLogin && magic && cfg.EmailPassword,
	}
}

func viewCollectsPassword(view View, magic bool) bool {
	switch view {
	case ViewLogin:
		return !magic
	case ViewSignup, ViewResetPassword:
		return true
	}
	return false
}

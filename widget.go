package authcard

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission is still waiting on the backend. The disabled submit
	// control is the primary guard; this is the observable result when a
	// caller bypasses it.
	ErrSubmitInFlight = errors.New("authcard: submission already in flight")

	// ErrNoBackend is returned when Submit is called on a card configured
	// without a backend handle.
	ErrNoBackend = errors.New("authcard: no backend configured")

	// ErrClosed is returned by operations invoked after Close.
	ErrClosed = errors.New("authcard: widget closed")
)

var validate = validator.New()

// submitForm is the input-layer validation DTO for a submission. The
// password requirement is dropped in magic-link mode and on views that do
// not collect a password.
type submitForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type emailOnlyForm struct {
	Email string `validate:"required,email"`
}

type passwordOnlyForm struct {
	Password string `validate:"required"`
}

// Widget is one embedded authentication card instance. It owns the view
// state machine, the transient credentials, the submission lifecycle and
// the notification channel selection. All state is private to the instance
// and serialized by an internal mutex; the only suspension point is the
// backend call issued by Submit.
type Widget struct {
	cfg Config

	mu        sync.Mutex
	view      View
	magicLink bool
	inFlight  bool
	closed    bool

	email    string
	password string

	// inline holds the current notification when no host sink is
	// configured. Nil while no notification is showing.
	inline *Notification

	// lastNavigated remembers the observation that last triggered the
	// post-login navigation, so each distinct observation navigates once.
	// Cleared again by any non-authenticated observation.
	lastNavigated *Observation
}

// New creates a card instance from cfg. Magic-link mode starts enabled when
// the host asked for it or disabled password login entirely; it is only
// meaningful on the login view.
func New(cfg Config) *Widget {
	cfg = cfg.withDefaults()
	w := &Widget{
		cfg:  cfg,
		view: cfg.InitialView,
	}
	if w.view == ViewLogin {
		w.magicLink = cfg.MagicLink || !cfg.EmailPassword
	}
	return w
}

// View returns the active view.
func (w *Widget) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.view
}

// MagicLink reports whether the login view is in magic-link mode.
func (w *Widget) MagicLink() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.magicLink
}

// InFlight reports whether a submission is waiting on the backend.
func (w *Widget) InFlight() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

// SetEmail records the email field value.
func (w *Widget) SetEmail(email string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.email = email
}

// SetPassword records the password field value.
func (w *Widget) SetPassword(password string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.password = password
}

// SetPath feeds a host path change into the view resolver. It is a one-way
// synchronization: a recognized trailing segment overwrites the view, any
// other path leaves it alone. No-op when routing is disabled.
func (w *Widget) SetPath(hostPath string) {
	if !w.cfg.Routing {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.setView(ResolveView(w.view, hostPath))
}

// setView applies a view transition. Callers hold w.mu. Leaving the login
// view always drops magic-link mode.
func (w *Widget) setView(v View) {
	w.view = v
	if v != ViewLogin {
		w.magicLink = false
	}
}

// ToggleSignupLogin swaps between the login and signup views. With routing
// disabled the swap is direct; with routing enabled it delegates to the
// host navigation function and the view follows on the next SetPath. Calls
// from any other view are ignored.
func (w *Widget) ToggleSignupLogin() {
	w.mu.Lock()
	if w.closed || (w.view != ViewLogin && w.view != ViewSignup) {
		w.mu.Unlock()
		return
	}
	target := ViewLogin
	targetPath := w.cfg.LoginPath
	if w.view == ViewLogin {
		target = ViewSignup
		targetPath = w.cfg.SignupPath
	}
	if !w.cfg.Routing {
		w.setView(target)
		w.mu.Unlock()
		return
	}
	nav := w.cfg.Navigator
	w.mu.Unlock()

	if nav != nil {
		nav(targetPath)
	}
}

// EnableMagicLink switches the login view to magic-link mode. Ignored on
// any other view.
func (w *Widget) EnableMagicLink() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.view != ViewLogin {
		return
	}
	w.magicLink = true
}

// DisableMagicLink switches the login view back to password mode. Ignored
// when password login is disabled for the host, or off the login view.
func (w *Widget) DisableMagicLink() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.view != ViewLogin || !w.cfg.EmailPassword {
		return
	}
	w.magicLink = false
}

// Submit runs one submission against the backend for the active view. It
// validates the credential fields, clears any prior notification, marks the
// submission in flight, issues exactly one backend request and, once the
// response arrives, clears the in-flight flag before publishing any error
// notification. A second Submit while one is in flight performs no backend
// call and returns ErrSubmitInFlight.
func (w *Widget) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.inFlight {
		w.mu.Unlock()
		return ErrSubmitInFlight
	}
	backend := w.cfg.Backend
	if backend == nil {
		w.mu.Unlock()
		return ErrNoBackend
	}

	view, magic := w.view, w.magicLink
	email, password := w.email, w.password
	if err := validateSubmit(view, magic, email, password); err != nil {
		w.mu.Unlock()
		return err
	}

	w.clearNotification()
	w.inFlight = true
	w.mu.Unlock()

	err := dispatch(ctx, backend, view, magic, email, password)

	w.mu.Lock()
	if w.closed {
		// Late write after teardown: discard silently.
		w.mu.Unlock()
		return nil
	}
	w.inFlight = false
	var n *Notification
	if err != nil {
		n = &Notification{Description: err.Error(), Severity: SeverityError}
	}
	if n != nil && w.cfg.Notifier == nil {
		w.inline = n
	}
	w.mu.Unlock()

	// The host sink is called after the in-flight flag is cleared, outside
	// the state lock, so a sink may read the widget back.
	if n != nil && w.cfg.Notifier != nil {
		w.cfg.Notifier.Notify(*n)
	}
	return nil
}

// validateSubmit enforces the input-layer field requirements for a view.
// Each view validates exactly the fields its form renders.
func validateSubmit(view View, magic bool, email, password string) error {
	switch view {
	case ViewLogin:
		if magic {
			return validate.Struct(emailOnlyForm{Email: email})
		}
		return validate.Struct(submitForm{Email: email, Password: password})
	case ViewSignup:
		return validate.Struct(submitForm{Email: email, Password: password})
	case ViewForgotPassword:
		return validate.Struct(emailOnlyForm{Email: email})
	case ViewResetPassword:
		return validate.Struct(passwordOnlyForm{Password: password})
	default:
		// Logout renders no credential fields.
		return nil
	}
}

// dispatch selects the backend operation for a view. Magic-link login asks
// for a one-time link instead of verifying a password.
func dispatch(ctx context.Context, b Backend, view View, magic bool, email, password string) error {
	switch view {
	case ViewLogin:
		if magic {
			return b.RequestMagicLink(ctx, email)
		}
		return b.SignInWithPassword(ctx, email, password)
	case ViewSignup:
		return b.SignUp(ctx, email, password)
	case ViewForgotPassword:
		return b.RequestPasswordReset(ctx, email)
	case ViewResetPassword:
		return b.ResetPassword(ctx, password)
	case ViewLogout:
		return b.SignOut(ctx)
	}
	return nil
}

// clearNotification resets the notification state at submission start.
// Callers hold w.mu. A host sink only ever receives concrete
// notifications, so clearing is meaningful for the inline channel alone.
func (w *Widget) clearNotification() {
	w.inline = nil
}

// Notification returns the inline notification currently showing, or nil.
// Always nil when a host sink is configured.
func (w *Widget) Notification() *Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inline
}

// Observe feeds one tick of the session observation stream into the card.
// A present, non-anonymous observation triggers the host navigation to the
// landing path exactly once per distinct observation. Pending, absent and
// anonymous observations navigate nowhere and re-arm the dedup, so signing
// back in as the same user navigates again.
func (w *Widget) Observe(obs Observation) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if !obs.Authenticated() {
		w.lastNavigated = nil
		w.mu.Unlock()
		return
	}
	if w.lastNavigated != nil && w.lastNavigated.equal(obs) {
		w.mu.Unlock()
		return
	}
	acted := obs
	w.lastNavigated = &acted
	nav := w.cfg.Navigator
	landing := w.cfg.LandingPath
	w.mu.Unlock()

	if nav != nil {
		nav(landing)
	}
}

// Watch subscribes the card to a session source for the lifetime of ctx.
func (w *Widget) Watch(ctx context.Context, src SessionSource) error {
	return src.Subscribe(ctx, w.Observe)
}

// Close tears the card down. Any state write attempted afterwards,
// including a late backend response, is discarded silently.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

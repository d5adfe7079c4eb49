package authcard

import "context"

// Backend is the narrow contract the card holds against the external
// authentication service. Implementations verify credentials, deliver
// magic-link emails and manage sessions; the card only issues requests and
// surfaces any human-readable failure message it gets back.
//
// Errors returned from these methods are shown to the user verbatim via the
// notification channel, so implementations should return messages suitable
// for display (e.g. "Invalid email or password.").
type Backend interface {
	// SignInWithPassword verifies an email/password pair.
	SignInWithPassword(ctx context.Context, email, password string) error

	// RequestMagicLink asks the backend to email a one-time login link.
	RequestMagicLink(ctx context.Context, email string) error

	// SignUp registers a new account.
	SignUp(ctx context.Context, email, password string) error

	// RequestPasswordReset asks the backend to start a password recovery.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword sets a new password for the recovery in progress.
	ResetPassword(ctx context.Context, password string) error

	// SignOut terminates the current session.
	SignOut(ctx context.Context) error
}

// SessionState classifies a session observation.
type SessionState string

const (
	// SessionPending means the backend has not yet reported whether a
	// session exists. The card takes no action while pending.
	SessionPending SessionState = "pending"

	// SessionAbsent means the backend reported no active session.
	SessionAbsent SessionState = "absent"

	// SessionPresent means the backend reported an active session carrying
	// a user entity.
	SessionPresent SessionState = "present"
)

// User is the entity carried by a present session observation.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Anonymous bool   `json:"anonymous"`
}

// Observation is one tick of the externally owned session read model. The
// card never mutates observations, it only reads them.
type Observation struct {
	State SessionState `json:"state"`
	User  *User        `json:"user,omitempty"`
}

// Pending returns a pending observation.
func Pending() Observation { return Observation{State: SessionPending} }

// Absent returns an observation reporting no session.
func Absent() Observation { return Observation{State: SessionAbsent} }

// Present returns an observation carrying the given user.
func Present(u User) Observation {
	return Observation{State: SessionPresent, User: &u}
}

// Authenticated reports whether the observation should trigger the
// post-login navigation: a present session whose user is not anonymous.
func (o Observation) Authenticated() bool {
	return o.State == SessionPresent && o.User != nil && !o.User.Anonymous
}

// equal compares two observations by value, including the carried user.
// Used to navigate once per distinct observation.
func (o Observation) equal(other Observation) bool {
	if o.State != other.State {
		return false
	}
	if (o.User == nil) != (other.User == nil) {
		return false
	}
	if o.User == nil {
		return true
	}
	return *o.User == *other.User
}

// SessionSource is a continuously updating stream of session observations.
// Subscribe delivers every tick to fn until ctx is cancelled. The card
// subscribes for its lifetime and never advances the stream itself.
type SessionSource interface {
	Subscribe(ctx context.Context, fn func(Observation)) error
}

// Navigator is the host-supplied navigation function. It must be safe to
// call repeatedly with the same target.
type Navigator func(path string)

package authcard

// Severity classifies a notification.
type Severity string

const (
	SeverityNormal Severity = "normal"
	SeverityError  Severity = "error"
)

// Action is an optional affordance attached to a notification, e.g. a
// "Resend email" button. Effect runs when the user activates it.
type Action struct {
	Label  string
	Effect func()
}

// Notification is a transient message produced by a completed submission.
type Notification struct {
	Description string
	Severity    Severity
	Action      *Action
}

// Notifier is the host-supplied notification sink. When a host provides
// one, the card forwards every notification there and renders no inline
// alert region; when absent, the card stores notifications itself and
// renders them inline. Exactly one of the two channels is active, chosen
// once per instance.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

package echocard

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/authcard"
)

const (
	flashSessionName = "card-flash"
	flashKeyNotice   = "notice"
	flashKeyError    = "error"
)

// FlashNotifier implements the card's Notifier contract on top of the
// gorilla cookie session, so notifications survive the POST, redirect, GET
// cycle. It is the host sink the echo module hands to every widget it
// builds; the card therefore never renders its own inline alert here.
type FlashNotifier struct {
	c echo.Context
}

// NewFlashNotifier creates a notifier bound to the current request.
func NewFlashNotifier(c echo.Context) *FlashNotifier {
	return &FlashNotifier{c: c}
}

// Notify stores the notification in the flash session.
func (f *FlashNotifier) Notify(n authcard.Notification) {
	key := flashKeyNotice
	if n.Severity == authcard.SeverityError {
		key = flashKeyError
	}
	sess, _ := session.Get(flashSessionName, f.c)
	sess.AddFlash(n.Description, key)
	_ = sess.Save(f.c.Request(), f.c.Response())
}

// takeNotification retrieves and clears the flashed notification, if any.
// Reading flashes consumes them, so the session must be saved afterwards.
func takeNotification(c echo.Context) *authcard.Notification {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return nil
	}

	var n *authcard.Notification
	if flashes := sess.Flashes(flashKeyError); len(flashes) > 0 {
		if msg, ok := flashes[0].(string); ok {
			n = &authcard.Notification{Description: msg, Severity: authcard.SeverityError}
		}
	}
	if n == nil {
		if flashes := sess.Flashes(flashKeyNotice); len(flashes) > 0 {
			if msg, ok := flashes[0].(string); ok {
				n = &authcard.Notification{Description: msg, Severity: authcard.SeverityNormal}
			}
		}
	}
	if n != nil {
		_ = sess.Save(c.Request(), c.Response())
	}
	return n
}

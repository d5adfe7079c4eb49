package echocard

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/authcard"
	"github.com/nfrund/authcard/cardui"
	"github.com/nfrund/authcard/texts"
)

// SessionPeek lets the handler read the backend's current session
// observation right after a submission, so the card's session watcher can
// decide the post-login redirect within the same request.
type SessionPeek interface {
	Current(c echo.Context) authcard.Observation
}

// Handler serves the card's GET and POST routes. Each request builds a
// fresh widget from the module configuration and the request path; the only
// state crossing requests is the flash session.
type Handler struct {
	card     authcard.Config
	catalog  *texts.Catalog
	session  SessionPeek
	basePath string
}

// NewHandler creates the route handler.
func NewHandler(card authcard.Config, catalog *texts.Catalog, session SessionPeek, basePath string) *Handler {
	return &Handler{
		card:     card,
		catalog:  catalog,
		session:  session,
		basePath: basePath,
	}
}

// widgetFor builds the per-request widget. The flash session is the host
// notification sink and echo's redirect is the navigation function.
func (h *Handler) widgetFor(c echo.Context, navigate authcard.Navigator) *authcard.Widget {
	cfg := h.card
	// This module is a routed host: the URL is the source of truth for the
	// active view.
	cfg.Routing = true
	cfg.Notifier = NewFlashNotifier(c)
	cfg.Navigator = navigate
	cfg.LoginPath = h.viewPath(authcard.ViewLogin)
	cfg.SignupPath = h.viewPath(authcard.ViewSignup)

	w := authcard.New(cfg)
	w.SetPath(c.Request().URL.Path)
	return w
}

func (h *Handler) viewPath(v authcard.View) string {
	return h.basePath + "/" + v.String()
}

// Get renders the card for the path-derived view.
func (h *Handler) Get(c echo.Context) error {
	w := h.widgetFor(c, nil)
	defer w.Close()

	s := w.Snapshot()
	// The flash session is this host's notification channel; re-attach the
	// flashed notification for display on this render.
	s.Notification = takeNotification(c)

	return h.render(c, s)
}

// Post drives a state transition: a mode toggle or a submission, selected
// by the "mode" form value.
func (h *Handler) Post(c echo.Context) error {
	var navigated string
	w := h.widgetFor(c, func(path string) { navigated = path })
	defer w.Close()

	view := w.View()
	switch c.FormValue("mode") {
	case "magic-link":
		w.EnableMagicLink()
		return h.redirectOr(c, navigated, view)
	case "password":
		w.DisableMagicLink()
		return h.redirectOr(c, navigated, view)
	case "toggle-view":
		w.ToggleSignupLogin()
		return h.redirectOr(c, navigated, w.View())
	}

	w.SetEmail(c.FormValue("email"))
	w.SetPassword(c.FormValue("password"))

	if err := w.Submit(c.Request().Context()); err != nil {
		if errors.Is(err, authcard.ErrSubmitInFlight) {
			// Nothing observable happened; render the view again.
			return h.redirectOr(c, navigated, view)
		}
		slog.Warn("card submission rejected", "view", view.String(), "error", err)
		NewFlashNotifier(c).Notify(authcard.Notification{
			Description: friendlyValidationMessage(err),
			Severity:    authcard.SeverityError,
		})
		return h.redirectOr(c, navigated, view)
	}

	// Success is signalled by the session observation, not by the
	// submission result; feed the watcher the backend's current state and
	// let it pick the redirect.
	if h.session != nil {
		w.Observe(h.session.Current(c))
	}
	return h.redirectOr(c, navigated, view)
}

// redirectOr sends the browser wherever the card navigated, falling back to
// the given view's own path (POST, redirect, GET).
func (h *Handler) redirectOr(c echo.Context, navigated string, view authcard.View) error {
	target := navigated
	if target == "" {
		target = h.viewPath(view)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func (h *Handler) render(c echo.Context, s authcard.Snapshot) error {
	table := h.catalog.Table(c.Request().Header.Get("Accept-Language"))
	node := cardui.Card(s, table, cardui.Options{
		Action:     h.viewPath(s.View),
		TogglePath: h.viewPath(s.View),
		Routing:    true,
		LoginHref:  h.viewPath(authcard.ViewLogin),
		SignupHref: h.viewPath(authcard.ViewSignup),
	})

	c.Response().Header().Set(echo.HeaderContentType, "text/html; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return node.Render(c.Response().Writer)
}

// friendlyValidationMessage maps input-layer validation failures to display
// text. Anything unrecognized falls back to the error's own message.
func friendlyValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Email":
			return "Please enter a valid email address."
		case "Password":
			return "Please enter your password."
		}
	}
	return err.Error()
}

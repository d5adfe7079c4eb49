// Package cardui renders the authentication card as a gomponents tree.
// Control availability comes from the card's Controls predicates; nothing
// here keeps state of its own.
package cardui

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/authcard"
	"github.com/nfrund/authcard/texts"
)

// LinkRenderer produces the login/signup cross-link when routing is
// enabled. Hosts substitute their own (e.g. a client-side router link); the
// default renders a plain hyperlink.
type LinkRenderer func(href string, children ...cmp.Node) cmp.Node

// PlainLink is the default LinkRenderer.
func PlainLink(href string, children ...cmp.Node) cmp.Node {
	return g.A(append([]cmp.Node{g.Href(href)}, children...)...)
}

// Options configures a render of the card.
type Options struct {
	// Action is the form's POST target.
	Action string

	// TogglePath is the POST target for the magic-link/password and
	// login/signup transitions when routing is disabled.
	TogglePath string

	// Routing selects link-based (true) or POST-based (false) rendering
	// of the login/signup cross-link.
	Routing bool

	// LoginHref and SignupHref are the cross-link targets when Routing is
	// enabled.
	LoginHref  string
	SignupHref string

	// Link renders the cross-link. Defaults to PlainLink.
	Link LinkRenderer
}

// Card renders the active view as one card. The snapshot decides which
// fields, buttons and alerts appear; the table supplies every visible
// string, with missing keys degrading to blank text.
func Card(s authcard.Snapshot, tb texts.Table, opts Options) cmp.Node {
	if opts.Link == nil {
		opts.Link = PlainLink
	}

	return g.Div(
		g.ID("auth-card"),
		g.Class("auth-card"),
		g.H2(g.Class("auth-card-title"), cmp.Text(tb.View(s.View, "_title"))),
		g.P(g.Class("auth-card-description"), cmp.Text(tb.View(s.View, "_description"))),
		alertRegion(s),
		cardForm(s, tb, opts),
		crossLink(s, tb, opts),
	)
}

// alertRegion renders the inline notification, if one is showing. When the
// host supplies its own notification sink the snapshot never carries a
// notification and this renders nothing.
func alertRegion(s authcard.Snapshot) cmp.Node {
	n := s.Notification
	if n == nil {
		return nil
	}
	class := "auth-card-alert"
	if n.Severity == authcard.SeverityError {
		class += " auth-card-alert-error"
	}
	return g.Div(
		g.Class(class),
		g.Role("alert"),
		cmp.Text(n.Description),
		cmp.If(n.Action != nil, actionButton(n.Action)),
	)
}

func actionButton(a *authcard.Action) cmp.Node {
	if a == nil {
		return nil
	}
	return g.Button(g.Type("button"), g.Class("auth-card-alert-action"), cmp.Text(a.Label))
}

func cardForm(s authcard.Snapshot, tb texts.Table, opts Options) cmp.Node {
	c := s.Controls
	return g.Form(
		g.Method("post"),
		g.Action(opts.Action),
		hx.Post(opts.Action),
		hx.Target("#auth-card"),
		hx.Swap("outerHTML"),

		cmp.If(viewCollectsEmail(s.View), emailField(s, tb)),
		cmp.If(c.PasswordField, passwordField(s, tb)),

		g.Button(
			g.Type("submit"),
			g.Class("auth-card-submit"),
			cmp.If(!c.SubmitEnabled, g.Disabled()),
			cmp.Text(tb.View(s.View, "_button")),
		),
		cmp.If(c.Spinner, g.Span(g.Class("auth-card-spinner"), g.Aria("hidden", "true"))),

		magicLinkToggle(s, tb, opts),
	)
}

func viewCollectsEmail(v authcard.View) bool {
	return v != authcard.ViewLogout && v != authcard.ViewResetPassword
}

func emailField(s authcard.Snapshot, tb texts.Table) cmp.Node {
	return g.Div(
		g.Class("auth-card-field"),
		g.Label(g.For("email"), cmp.Text(tb.View(s.View, "_email_label"))),
		g.Input(
			g.Type("email"),
			g.ID("email"),
			g.Name("email"),
			g.Value(s.Email),
			g.Required(),
			g.AutoComplete("email"),
		),
	)
}

func passwordField(s authcard.Snapshot, tb texts.Table) cmp.Node {
	return g.Div(
		g.Class("auth-card-field"),
		g.Label(g.For("password"), cmp.Text(tb.View(s.View, "_password_label"))),
		g.Input(
			g.Type("password"),
			g.ID("password"),
			g.Name("password"),
			g.Required(),
			g.AutoComplete("current-password"),
		),
	)
}

// magicLinkToggle renders both toggle directions whenever the toggle is
// reachable at all. Each button stays present but disabled while its
// precondition fails; with password login turned off for the host, none of
// this is rendered and nothing enters the tab order.
func magicLinkToggle(s authcard.Snapshot, tb texts.Table, opts Options) cmp.Node {
	c := s.Controls
	if !c.MagicLinkToggle {
		return nil
	}
	return g.Div(
		g.Class("auth-card-modes"),
		g.Button(
			g.Type("submit"),
			g.Name("mode"),
			g.Value("magic-link"),
			cmp.Attr("formaction", opts.TogglePath),
			cmp.If(!c.EnableMagicLink, g.Disabled()),
			cmp.Text(tb.Lookup("login_magic_link")),
		),
		g.Button(
			g.Type("submit"),
			g.Name("mode"),
			g.Value("password"),
			cmp.Attr("formaction", opts.TogglePath),
			cmp.If(!c.DisableMagicLink, g.Disabled()),
			cmp.Text(tb.Lookup("login_password_link")),
		),
	)
}

// crossLink renders the login/signup swap. Routing on: a host link to the
// other view's path, resolved back into the card by the host path. Routing
// off: a POST that swaps the view directly.
func crossLink(s authcard.Snapshot, tb texts.Table, opts Options) cmp.Node {
	if !s.Controls.ToggleSignupLogin {
		return nil
	}
	label := tb.View(s.View, "_toggle")

	if opts.Routing {
		href := opts.SignupHref
		if s.View == authcard.ViewSignup {
			href = opts.LoginHref
		}
		return g.Div(g.Class("auth-card-toggle"), opts.Link(href, cmp.Text(label)))
	}

	return g.Form(
		g.Method("post"),
		g.Action(opts.TogglePath),
		g.Class("auth-card-toggle"),
		g.Button(
			g.Type("submit"),
			g.Name("mode"),
			g.Value("toggle-view"),
			cmp.Text(label),
		),
	)
}

// Package echocard embeds the authentication card in an echo application.
// It follows the Name/Boot/Shutdown module shape: the host mounts it on a
// route group and the module registers one GET and one rate-limited POST
// route per view.
package echocard

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/authcard"
	"github.com/nfrund/authcard/internal/middleware"
	"github.com/nfrund/authcard/texts"
)

// Config wires the module into a host application.
type Config struct {
	// Card is the base widget configuration. Notifier, Navigator and the
	// toggle paths are managed per request by the module.
	Card authcard.Config

	// Texts overrides a subset of the built-in string table.
	Texts texts.Table

	// Catalog overrides the whole localization catalog. When nil, one is
	// built from the default table plus Texts.
	Catalog *texts.Catalog

	// Session lets the module read the backend's session observation after
	// a submission. Optional; without it the post-login redirect is left
	// to the host's own pages.
	Session SessionPeek

	// BasePath is the mount path of the route group, e.g. "/auth".
	BasePath string
}

// Module is the embeddable card feature.
type Module struct {
	cfg     Config
	handler *Handler
}

// New creates the module.
func New(cfg Config) *Module {
	return &Module{cfg: cfg}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "authcard"
}

// Boot registers the card's routes on the group the host mounted it on.
func (m *Module) Boot(ctx context.Context, group *echo.Group) error {
	catalog := m.cfg.Catalog
	if catalog == nil {
		catalog = texts.DefaultCatalog(m.cfg.Texts)
	}

	m.handler = NewHandler(m.cfg.Card, catalog, m.cfg.Session, m.cfg.BasePath)
	limiter := middleware.RateLimiter()

	for _, view := range authcard.Views {
		path := "/" + view.String()
		group.GET(path, m.handler.Get)
		group.POST(path, m.handler.Post, limiter)
	}
	return nil
}

// Shutdown releases module resources. The card holds none of its own.
func (m *Module) Shutdown(ctx context.Context) error {
	return nil
}

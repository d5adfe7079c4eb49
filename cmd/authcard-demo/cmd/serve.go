package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/authcard"
	"github.com/nfrund/authcard/echocard"
	"github.com/nfrund/authcard/internal/config"
	"github.com/nfrund/authcard/internal/demobackend"
	"github.com/nfrund/authcard/internal/logging"
	"github.com/nfrund/authcard/internal/middleware"
	"github.com/nfrund/authcard/sessionbus"
	"github.com/nfrund/authcard/texts"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	logging.New()
	cfg := config.New()
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	injector := do.New()
	do.Provide(injector, func(i do.Injector) (*sessionbus.Bus, error) {
		return sessionbus.New(), nil
	})
	do.Provide(injector, func(i do.Injector) (*demobackend.Backend, error) {
		return demobackend.New(do.MustInvoke[*sessionbus.Bus](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*texts.Catalog, error) {
		return buildCatalog(cfg.TextsFile)
	})

	bus := do.MustInvoke[*sessionbus.Bus](injector)
	backend := do.MustInvoke[*demobackend.Backend](injector)
	catalog := do.MustInvoke[*texts.Catalog](injector)
	backend.Seed("demo@example.com", "password123")

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mod := echocard.New(echocard.Config{
		Card: authcard.Config{
			InitialView:   authcard.ViewLogin,
			EmailPassword: true,
			LandingPath:   "/",
			Backend:       backend,
		},
		Catalog:  catalog,
		Session:  backend,
		BasePath: "/auth",
	})
	if err := mod.Boot(ctx, e.Group("/auth")); err != nil {
		return fmt.Errorf("booting card module: %w", err)
	}

	// A long-lived card watching the session bus, standing in for any
	// other widget instance on the page.
	watcherCard := authcard.New(authcard.Config{
		LandingPath: "/",
		Navigator: func(path string) {
			slog.Info("session authenticated, card navigates", "path", path)
		},
	})
	if err := watcherCard.Watch(ctx, bus); err != nil {
		return fmt.Errorf("watching session bus: %w", err)
	}
	defer watcherCard.Close()

	e.GET("/", func(c echo.Context) error {
		obs := backend.Current(c)
		if obs.Authenticated() {
			return c.HTML(http.StatusOK, fmt.Sprintf(
				`<p>Signed in as %s.</p><form method="post" action="/auth/logout"><button>Sign out</button></form>`,
				obs.User.Email))
		}
		return c.HTML(http.StatusOK, `<p>Signed out.</p><a href="/auth/login">Sign in</a>`)
	})

	go func() {
		if err := e.Start(cfg.Addr); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := mod.Shutdown(shutdownCtx); err != nil {
		slog.Warn("card module shutdown", "error", err)
	}
	if err := bus.Close(); err != nil {
		slog.Warn("session bus close", "error", err)
	}
	return e.Shutdown(shutdownCtx)
}

// buildCatalog assembles the localization catalog, layering overrides from
// the given file (watched for changes) over the built-in table when set.
func buildCatalog(path string) (*texts.Catalog, error) {
	catalog := texts.DefaultCatalog(nil)
	if path == "" {
		return catalog, nil
	}

	loader := texts.NewLoader(afero.NewOsFs(), path, texts.Default())
	loader.OnReload = func(tb texts.Table) {
		catalog.Add(texts.FallbackTag, tb)
	}
	if err := loader.Load(); err != nil {
		slog.Warn("text overrides unavailable, using defaults", "error", err)
		return catalog, nil
	}
	if err := loader.Watch(make(chan struct{})); err != nil {
		slog.Warn("text override watching disabled", "error", err)
	}
	return catalog, nil
}

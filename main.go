package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbolis/survey-box/app"
	"github.com/mbolis/survey-box/config"
	"github.com/mbolis/survey-box/database"
	"github.com/mbolis/survey-box/httpx"
	"github.com/mbolis/survey-box/log"
	"github.com/mbolis/survey-box/routes"
	"github.com/mbolis/survey-box/session"
	"github.com/mbolis/survey-box/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	sweepInterval   = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	os.Exit(run())
}

// run returns the process exit code once every deferred cleanup has run.
func run() int {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Error("main.config:", err)
		return 2
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry := telemetry.Setup("survey-box")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			log.Warn("main.telemetry.shutdown:", err)
		}
	}()

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		log.Error("main.db.open:", err)
		return 1
	}
	defer db.Close()

	admin, err := httpx.NewAdminCredentials(cfg.AdminUser, cfg.AdminPassword)
	if err != nil {
		log.Error("main.admin_credentials:", err)
		return 1
	}

	var sessionStore session.Store
	switch cfg.SessionStore {
	case config.SessionStoreSQLite:
		sessionStore = database.NewSessions(db)
	default:
		sessionStore = session.NewMemoryStore()
	}
	if sweeper, ok := sessionStore.(session.Sweeper); ok && cfg.SessionTTL > 0 {
		go session.RunSweeper(ctx, sweeper, cfg.SessionTTL, sweepInterval)
	}

	app := app.App{
		DB:           db,
		Responses:    database.NewResponses(db),
		Sessions:     session.NewManager(sessionStore, cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookie),
		Admin:        admin,
		BearerServer: httpx.NewBearerServer(db, admin, cfg.TokenSecret, cfg.TokenTTL),
		Config:       cfg,
	}

	handler := otelhttp.NewHandler(routes.Wire(app), "survey-box")

	err = runServer(ctx, cfg, handler)
	if err != nil {
		log.Error("main.server:", err)
		return 1
	}
	return 0
}

func runServer(ctx context.Context, cfg config.Config, handler http.Handler) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}

	log.Info("Listening on " + cfg.Url())
	return serve(ctx, ln, handler)
}

// serve handles requests on ln until ctx is done, then drains open
// requests. A clean shutdown returns nil.
func serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Serve(ln)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		log.Info("main.server: shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return err
	}
	if err = <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

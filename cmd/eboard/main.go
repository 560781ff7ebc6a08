// Package main provides the e-board REST API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kimhsiao/eboard/cmd/eboard/handlers"
	"github.com/kimhsiao/eboard/internal/config"
	"github.com/kimhsiao/eboard/internal/crypto"
	"github.com/kimhsiao/eboard/internal/db"
	"github.com/kimhsiao/eboard/internal/logging"
	"github.com/kimhsiao/eboard/internal/services"
	"github.com/kimhsiao/eboard/internal/session"
)

// Version is set at build time
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "eboard: %v\n", err)
		os.Exit(1)
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.Init(os.Stdout, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error("server stopped", err)
		os.Exit(1)
	}
}

// app is the assembled server and the resources it must release.
type app struct {
	server   *http.Server
	database *db.DB
	repo     *db.Repository
}

// newApp opens the database and wires the router for cfg.
func newApp(cfg config.Config) (*app, error) {
	maxAge, err := cfg.SessionMaxAge()
	if err != nil {
		return nil, err
	}

	database, err := db.Setup(cfg.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}
	repo := db.NewRepository(database.DB)

	svc := services.New(repo, crypto.NewHasher(cfg.BcryptCost))
	sessions := session.NewManager(cfg.SecretKey, session.Options{
		CookieName: cfg.Session.CookieName,
		MaxAge:     maxAge,
		Strong:     cfg.Session.Strong,
		Secure:     cfg.Session.Secure,
	})

	return &app{
		server: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           handlers.NewRouter(svc, sessions),
			ReadHeaderTimeout: 10 * time.Second,
		},
		database: database,
		repo:     repo,
	}, nil
}

func (a *app) close() {
	if err := a.repo.Close(); err != nil {
		logging.Warn("failed to close statements", map[string]interface{}{"error": err.Error()})
	}
	if err := a.database.Close(); err != nil {
		logging.Warn("failed to close database", map[string]interface{}{"error": err.Error()})
	}
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, cfg config.Config) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	errc := make(chan error, 1)
	go func() {
		logging.Info("e-board server starting", map[string]interface{}{
			"addr":    cfg.ListenAddr,
			"profile": string(cfg.Profile),
			"version": Version,
		})
		errc <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logging.Info("e-board server shutting down")
	return a.server.Shutdown(shutdownCtx)
}

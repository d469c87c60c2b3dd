package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/orcapro/orcapro/internal/auth"
	"github.com/orcapro/orcapro/internal/config"
	"github.com/orcapro/orcapro/internal/db"
	"github.com/orcapro/orcapro/internal/server"
	"github.com/orcapro/orcapro/internal/store"
)

var migrateOnly = flag.Bool("migrate-only", false, "run database migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := newLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if *migrateOnly {
		if !cfg.Configured() {
			log.Fatal("migrate-only requires DATABASE_DSN")
		}
		if _, err := db.ConnectAndMigrate(cfg.DatabaseDSN, log); err != nil {
			log.Fatal("migrations failed", zap.Error(err))
		}
		log.Info("migrations completed")
		return
	}

	var (
		st      store.Store
		handler http.Handler
	)
	if cfg.Configured() {
		conn, err := db.ConnectAndMigrate(cfg.DatabaseDSN, log)
		if err != nil {
			log.Fatal("database connection failed",
				zap.String("dsn", db.MaskDSN(cfg.DatabaseDSN)), zap.Error(err))
		}
		st = store.NewGorm(conn)
		handler = server.New(st, cfg, log)
	} else {
		log.Warn("DATABASE_DSN not set, starting in setup mode")
		st = store.NewUnconfigured()
		handler = server.NewSetup(log)
	}

	// Sessions outlive their users when an account is deleted; the verifier
	// lets RequireAuth reject those cookies.
	auth.SetUserVerifier(func(ctx context.Context, uid string) bool {
		_, err := st.UserByID(ctx, uid)
		return err == nil
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

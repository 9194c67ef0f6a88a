package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"white-elephant/internal/config"
	"white-elephant/internal/db"
	"white-elephant/internal/server"
	"white-elephant/internal/stream"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		logrus.WithError(err).Warn("failed to load .env")
	}
	cfg := config.Load()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logrus.Fatal("DATABASE_URL is not set")
	}
	runMigrations(dsn)

	conn, err := db.Open(db.Pool{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second,
	})
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := stream.NewHub(cfg.StreamBufferSize)
	listenerConn, err := stream.Connect(ctx, dsn)
	if err != nil {
		logrus.WithError(err).Fatal("play listener connection failed")
	}
	listener := stream.NewListener(listenerConn, hub)
	go func() {
		err := listener.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		// Without the listener no live event reaches any client of this
		// process; treat its death as fatal so the supervisor restarts us.
		logrus.WithError(err).Fatal("play listener stopped")
	}()

	srv := server.New(conn, cfg, hub)
	addr := cfg.Host + ":" + cfg.Port
	httpServer := &http.Server{Addr: addr, Handler: srv.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logrus.WithField("addr", addr).Info("white-elephant server listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("server failed")
	}
}

func runMigrations(dsn string) {
	m, err := migrate.New("file://db/migrations", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("migration setup failed")
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logrus.WithError(err).Fatal("database migration failed")
	}
	logrus.Info("database migrations applied")
}

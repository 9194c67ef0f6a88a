package main

import (
	"os"

	"white-elephant/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		logrus.WithError(err).Warn("failed to load .env")
	}

	m, err := migrate.New("file://db/migrations", mustDatabaseURL())
	if err != nil {
		logrus.WithError(err).Fatal("migration setup failed")
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logrus.WithError(err).Fatal("database migration failed")
	}
	logrus.Info("database migrations applied")
}

func mustDatabaseURL() string {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logrus.Fatal("DATABASE_URL is not set")
	}
	return dsn
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const migrationsDir = "db/migrations"

func main() {
	name := flag.String("name", "", "migration name")
	flag.Parse()

	if *name == "" || strings.ContainsAny(*name, " ") {
		logrus.Fatal("migration name is required and must not contain spaces")
	}

	version := time.Now().UTC().Format("20060102150405")
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		logrus.WithError(err).Fatal("create migrations dir")
	}

	for _, direction := range []string{"up", "down"} {
		path := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.%s.sql", version, *name, direction))
		if err := writeNewFile(path, fmt.Sprintf("-- %s migration\n", direction)); err != nil {
			logrus.WithError(err).Fatal("create migration file")
		}
		logrus.WithField("path", path).Info("created migration")
	}
}

func writeNewFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

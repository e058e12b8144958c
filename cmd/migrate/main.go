package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"go-workforce/internal/bootstrap"
	"go-workforce/internal/config"
	"go-workforce/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

func main() {
	action := flag.String("action", "up", "migration action: up, down, drop, version")
	flag.Parse()

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.App)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		logger.Fatal("open embedded migrations failed", zap.Error(err))
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.Database.URL())
	if err != nil {
		logger.Fatal("init migrate failed", zap.Error(err))
	}
	defer m.Close()

	switch *action {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "drop":
		err = m.Drop()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			logger.Fatal("read version failed", zap.Error(verr))
		}
		logger.Info("migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		logger.Fatal("unknown action", zap.String("action", *action))
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("migration failed", zap.String("action", *action), zap.Error(err))
	}
	logger.Info("migration done", zap.String("action", *action))
}

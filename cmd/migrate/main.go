package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"hvacbill/internal/config"
	"hvacbill/internal/logger"
)

const usage = "Usage: migrate [-dir path] [up|down|steps N|version]"

func main() {
	dir := flag.String("dir", "db/migrations", "migrations directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log, cfg.Server.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if cfg.Store.Driver != config.DriverPostgres {
		log.Warn("store driver is not postgres; migrating anyway", zap.String("driver", cfg.Store.Driver))
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println(usage)
		os.Exit(1)
	}

	m, err := migrate.New("file://"+*dir, cfg.DB.DSN())
	if err != nil {
		log.Fatal("failed to create migrate instance", zap.Error(err))
	}
	defer m.Close()

	if err := apply(m, args); err != nil {
		log.Fatal("migration failed", zap.String("command", args[0]), zap.Error(err))
	}
	if version, dirty, err := m.Version(); err == nil {
		log.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
}

func apply(m *migrate.Migrate, args []string) error {
	var err error
	switch args[0] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if len(args) < 2 {
			return errors.New("steps requires a number argument")
		}
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return fmt.Errorf("invalid steps argument: %w", convErr)
		}
		err = m.Steps(n)
	case "version":
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

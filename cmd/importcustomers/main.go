// Command importcustomers loads customers from a workbook laid out like the
// customers export into the configured record store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"hvacbill/internal/config"
	"hvacbill/internal/export"
	"hvacbill/internal/logger"
	"hvacbill/internal/repository/backend"
	"hvacbill/internal/service"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "read the workbook without writing to the store")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: importcustomers [-dry-run] customers.xlsx")
		os.Exit(1)
	}

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

	if err := run(context.Background(), cfg, log, flag.Arg(0), *dryRun); err != nil {
		log.Fatal("import failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, path string, dryRun bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := export.ReadCustomersXLSX(f)
	if err != nil {
		return err
	}
	log.Info("read workbook", zap.String("path", path), zap.Int("rows", len(rows)))

	st, err := backend.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	svc := service.NewCustomerService(st.Customers)

	var imported, skipped int
	for _, c := range rows {
		input := service.CreateCustomerInput{
			Name:    c.Name,
			Email:   c.Email,
			Phone:   c.Phone,
			Address: c.Address,
			Type:    c.Type,
		}
		if dryRun {
			imported++
			continue
		}
		if _, err := svc.Create(ctx, input); err != nil {
			log.Warn("skipping customer", zap.String("name", c.Name), zap.Error(err))
			skipped++
			continue
		}
		imported++
	}

	log.Info("import complete",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
		zap.Bool("dry_run", dryRun),
	)
	return nil
}

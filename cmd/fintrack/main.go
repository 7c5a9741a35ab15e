package main

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

// main bootstraps the store layer: configuration, backend, and the two
// stores, seeded on first run. The interactive shell sits on top of the
// session manager and is wired separately.
func main() {
	cli.LoadEnvFile()

	boot := applog.New(applog.DefaultConfig())
	cfg := cli.LoadAndValidateConfig(boot)
	logger := cli.SetupLogger(cfg)

	be, err := backend.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend",
			applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if be.Cleanup == nil {
			return
		}
		if err := be.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", applog.FieldError, err)
		}
	}()

	accounts := store.NewAccountStore(be.Accounts, logger)
	ledger := store.NewLedgerStore(be.Ledger, logger)

	// The two collections are independent, so their initial loads can
	// run side by side.
	ctx := context.Background()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accounts.Initialize(gctx)
		return nil
	})
	g.Go(func() error {
		ledger.Initialize(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("Store initialization failed", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Store layer ready",
		applog.FieldBackend, cfg.DataBackend,
		"accounts", len(accounts.ListAccounts(ctx)),
		"records", len(ledger.AllRecords(ctx)))
}

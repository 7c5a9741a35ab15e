// Package backend selects and builds the persistence backend the stores
// flush to.
package backend

import (
	"fmt"

	"fintrack/internal/config"
	"fintrack/internal/jsonl"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

// Type represents the kind of durable storage backing the stores.
type Type string

const (
	JSONLBackend  Type = "jsonl"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case JSONLBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result bundles the two persistence ports with an optional cleanup.
// Both ports are served by the same underlying repository.
type Result struct {
	Accounts storage.AccountRepository
	Ledger   storage.LedgerRepository
	Cleanup  CleanupFunc
}

// New builds the backend named by the configuration.
func New(cfg *config.Config, logger *applog.Logger) (*Result, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	log := logger.WithComponent(applog.ComponentBackend)

	t := Type(cfg.DataBackend)
	switch t {
	case JSONLBackend:
		repo, err := jsonl.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize jsonl backend: %w", err)
		}
		log.Info("Initialized jsonl backend", "data_dir", cfg.DataDir)
		return &Result{Accounts: repo, Ledger: repo}, nil

	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		log.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Accounts: repo, Ledger: repo, Cleanup: repo.Close}, nil

	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
}

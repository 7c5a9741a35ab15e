package storage

import (
	"context"

	"fintrack/internal/core"
)

// Ports for durable persistence. Each collection is read in full at
// initialization and rewritten in full on every mutation; there is no
// incremental update path.
type (
	AccountRepository interface {
		LoadAccounts(ctx context.Context) ([]core.Account, error)
		SaveAccounts(ctx context.Context, accounts []core.Account) error
	}

	LedgerRepository interface {
		LoadRecords(ctx context.Context) ([]core.Record, error)
		SaveRecords(ctx context.Context, records []core.Record) error
	}
)

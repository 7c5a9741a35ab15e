package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists both collections in a single SQLite file.
// Saves rewrite the whole table inside one transaction, preserving the
// load-all / flush-all model of the file backend.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadAccounts implements AccountRepository.
func (r *SQLiteRepository) LoadAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT username, credential, role FROM accounts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.Username, &a.Credential, &a.Role); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

// SaveAccounts implements AccountRepository.
func (r *SQLiteRepository) SaveAccounts(ctx context.Context, accounts []core.Account) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin accounts save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}
	for i, a := range accounts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (username, credential, role, position) VALUES (?, ?, ?, ?)`,
			a.Username, a.Credential, string(a.Role), i)
		if err != nil {
			return fmt.Errorf("insert account %s: %w", a.Username, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit accounts save: %w", err)
	}

	slog.DebugContext(ctx, "Accounts flushed to SQLite", "count", len(accounts))
	return nil
}

// LoadRecords implements LedgerRepository.
func (r *SQLiteRepository) LoadRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, kind, description, category, owner, created_at
		 FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var (
			rec       core.Record
			amount    string
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &amount, &rec.Kind, &rec.Description,
			&rec.Category, &rec.Owner, &createdAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if rec.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse record amount %q: %w", amount, err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse record timestamp %q: %w", createdAt, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// SaveRecords implements LedgerRepository.
func (r *SQLiteRepository) SaveRecords(ctx context.Context, records []core.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin records save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	for i, rec := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO records (id, amount, kind, description, category, owner, created_at, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.Amount.String(), string(rec.Kind), rec.Description,
			rec.Category, rec.Owner, rec.CreatedAt.UTC().Format(time.RFC3339Nano), i)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", rec.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit records save: %w", err)
	}

	slog.DebugContext(ctx, "Records flushed to SQLite", "count", len(records))
	return nil
}

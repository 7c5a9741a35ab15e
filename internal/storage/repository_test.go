package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func newTestRepo(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "fintrack.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo, dbPath
}

func TestSQLiteLoadEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	accounts, err := repo.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts: %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected no accounts in a fresh database, got %d", len(accounts))
	}

	records, err := repo.LoadRecords(ctx)
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records in a fresh database, got %d", len(records))
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	repo, dbPath := newTestRepo(t)
	ctx := context.Background()

	accounts := []core.Account{
		{Username: "admin", Credential: "admin123", Role: core.RoleAdmin},
		{Username: "alice", Credential: "pw", Role: core.RoleRegular},
	}
	if err := repo.SaveAccounts(ctx, accounts); err != nil {
		t.Fatalf("SaveAccounts: %v", err)
	}

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []core.Record{
		{ID: 1, Amount: decimal.RequireFromString("100.50"), Kind: core.Income,
			Description: "salary", Category: "Salary", Owner: "alice", CreatedAt: created},
		{ID: 2, Amount: decimal.RequireFromString("40"), Kind: core.Expense,
			Description: "groceries", Category: "Food", Owner: "alice", CreatedAt: created},
	}
	if err := repo.SaveRecords(ctx, records); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}

	// Reopen the database to simulate a process restart.
	if err := repo.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reopened, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	gotAccounts, err := reopened.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts after reopen: %v", err)
	}
	if len(gotAccounts) != len(accounts) {
		t.Fatalf("loaded %d accounts, want %d", len(gotAccounts), len(accounts))
	}
	for i := range accounts {
		if gotAccounts[i] != accounts[i] {
			t.Fatalf("account %d = %+v, want %+v", i, gotAccounts[i], accounts[i])
		}
	}

	gotRecords, err := reopened.LoadRecords(ctx)
	if err != nil {
		t.Fatalf("LoadRecords after reopen: %v", err)
	}
	if len(gotRecords) != len(records) {
		t.Fatalf("loaded %d records, want %d", len(gotRecords), len(records))
	}
	for i := range records {
		w, g := records[i], gotRecords[i]
		if g.ID != w.ID || !g.Amount.Equal(w.Amount) || g.Kind != w.Kind ||
			g.Description != w.Description || g.Category != w.Category ||
			g.Owner != w.Owner || !g.CreatedAt.Equal(w.CreatedAt) {
			t.Fatalf("record %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestSQLiteSaveRewritesCollection(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveAccounts(ctx, []core.Account{
		{Username: "a", Credential: "1", Role: core.RoleRegular},
		{Username: "b", Credential: "2", Role: core.RoleRegular},
	}); err != nil {
		t.Fatalf("SaveAccounts: %v", err)
	}
	if err := repo.SaveAccounts(ctx, []core.Account{
		{Username: "c", Credential: "3", Role: core.RoleAdmin},
	}); err != nil {
		t.Fatalf("SaveAccounts: %v", err)
	}

	got, err := repo.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts: %v", err)
	}
	if len(got) != 1 || got[0].Username != "c" {
		t.Fatalf("expected only account c after rewrite, got %+v", got)
	}
}

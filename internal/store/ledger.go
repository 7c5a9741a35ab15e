package store

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

// LedgerStore owns the transaction records of all owners. Records get a
// stable synthetic ID at insert so deletion is unambiguous even for
// field-for-field identical entries.
type LedgerStore struct {
	mu      sync.Mutex
	records []core.Record
	nextID  int64
	repo    storage.LedgerRepository
	log     *applog.Logger
}

func NewLedgerStore(repo storage.LedgerRepository, logger *applog.Logger) *LedgerStore {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &LedgerStore{
		repo: repo,
		log:  logger.WithComponent(applog.ComponentLedger),
	}
}

// Initialize loads all records from durable storage. A load failure is
// non-fatal: the store starts empty and logs the condition. There is no
// seeding.
func (s *LedgerStore) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.LoadRecords(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load records, starting empty",
			applog.FieldError, err)
		records = nil
	}
	s.records = records

	s.nextID = 1
	for _, r := range s.records {
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
}

// AddRecord validates the record, assigns its ID, appends and flushes.
// The stored record, with its assigned ID, is returned.
func (s *LedgerStore) AddRecord(ctx context.Context, record core.Record) (core.Record, error) {
	if err := record.Validate(); err != nil {
		return core.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	s.nextID++
	s.records = append(s.records, record)

	s.flush(ctx)
	s.log.InfoContext(ctx, "Record added",
		applog.FieldRecordID, record.ID,
		applog.FieldOwner, record.Owner,
		applog.FieldKind, record.Kind.String(),
		applog.FieldAmount, record.Amount.String())
	return record, nil
}

// DeleteRecord removes the record with the given ID and flushes. It
// returns false, without a flush, when no record matched.
func (s *LedgerStore) DeleteRecord(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.flush(ctx)
			s.log.InfoContext(ctx, "Record deleted", applog.FieldRecordID, id)
			return true
		}
	}
	return false
}

// DeleteRecordOwnedBy removes the record with the given ID only if owner
// owns it, in a single locked pass. It returns false, without a flush,
// when no owned record matched.
func (s *LedgerStore) DeleteRecordOwnedBy(ctx context.Context, id int64, owner string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == id && r.Owner == owner {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.flush(ctx)
			s.log.InfoContext(ctx, "Record deleted",
				applog.FieldRecordID, id, applog.FieldOwner, owner)
			return true
		}
	}
	return false
}

// AllRecords returns a snapshot of every record in insertion order.
func (s *LedgerStore) AllRecords(_ context.Context) []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]core.Record(nil), s.records...)
}

// RecordsForOwner returns a snapshot of the records owned by username,
// preserving insertion order.
func (s *LedgerStore) RecordsForOwner(_ context.Context, username string) []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Record
	for _, r := range s.records {
		if r.Owner == username {
			out = append(out, r)
		}
	}
	return out
}

// TotalIncome sums the amounts of the owner's INCOME records. The sum is
// computed fresh on every call.
func (s *LedgerStore) TotalIncome(_ context.Context, username string) decimal.Decimal {
	return s.total(username, core.Income)
}

// TotalExpense sums the amounts of the owner's EXPENSE records. The sum
// is computed fresh on every call.
func (s *LedgerStore) TotalExpense(_ context.Context, username string) decimal.Decimal {
	return s.total(username, core.Expense)
}

// Summary returns both totals for an owner in one pass.
func (s *LedgerStore) Summary(_ context.Context, username string) core.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := core.Summary{Owner: username}
	for _, r := range s.records {
		if r.Owner != username {
			continue
		}
		switch r.Kind {
		case core.Income:
			summary.Income = summary.Income.Add(r.Amount)
		case core.Expense:
			summary.Expense = summary.Expense.Add(r.Amount)
		}
	}
	return summary
}

func (s *LedgerStore) total(username string, kind core.Kind) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := decimal.Zero
	for _, r := range s.records {
		if r.Owner == username && r.Kind == kind {
			sum = sum.Add(r.Amount)
		}
	}
	return sum
}

// flush rewrites the durable collection. A failure keeps the in-memory
// mutation and is only reported to the diagnostic logger. Must be called
// with the lock held.
func (s *LedgerStore) flush(ctx context.Context) {
	if err := s.repo.SaveRecords(ctx, s.records); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist records, in-memory state retained",
			applog.FieldError, err, applog.FieldCount, len(s.records))
	}
}

// Package store holds the authoritative in-memory collections of the
// tracker. Each store loads its collection in full at initialization and
// flushes it in full after every mutation. Persistence failures are
// reported to the diagnostic logger and never fail a mutation that
// already succeeded in memory.
package store

import (
	"context"
	"errors"
	"sync"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

// Default accounts seeded on first run so the tracker is never unusable
// before an admin exists.
const (
	DefaultAdminUsername   = "admin"
	DefaultAdminCredential = "admin123"
	DefaultUserUsername    = "user"
	DefaultUserCredential  = "user123"
)

var ErrDuplicateUsername = errors.New("username already exists")

// AccountStore owns the set of accounts and enforces username uniqueness.
type AccountStore struct {
	mu       sync.Mutex
	accounts []core.Account
	repo     storage.AccountRepository
	log      *applog.Logger
}

func NewAccountStore(repo storage.AccountRepository, logger *applog.Logger) *AccountStore {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &AccountStore{
		repo: repo,
		log:  logger.WithComponent(applog.ComponentAccounts),
	}
}

// Initialize loads all accounts from durable storage. A load failure is
// non-fatal: the store starts empty and the condition is logged. An empty
// store is seeded with the default admin and regular accounts and flushed
// immediately.
func (s *AccountStore) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.repo.LoadAccounts(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load accounts, starting empty",
			applog.FieldError, err)
		accounts = nil
	}
	s.accounts = accounts

	if len(s.accounts) == 0 {
		s.accounts = []core.Account{
			{Username: DefaultAdminUsername, Credential: DefaultAdminCredential, Role: core.RoleAdmin},
			{Username: DefaultUserUsername, Credential: DefaultUserCredential, Role: core.RoleRegular},
		}
		s.flush(ctx)
		s.log.InfoContext(ctx, "Seeded default accounts", applog.FieldCount, len(s.accounts))
	}
}

// AddAccount appends a new account and flushes the collection. It fails
// without mutating anything if the input is invalid or the username is
// already taken.
func (s *AccountStore) AddAccount(ctx context.Context, username, credential string, role core.Role) error {
	account := core.Account{Username: username, Credential: credential, Role: role}
	if err := account.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username == username {
			return ErrDuplicateUsername
		}
	}

	s.accounts = append(s.accounts, account)
	s.flush(ctx)
	s.log.InfoContext(ctx, "Account added",
		applog.FieldUsername, username, applog.FieldRole, role.String())
	return nil
}

// DeleteAccount removes every account matching username and flushes.
// It returns false, without a flush, when nothing matched. The store does
// not protect the built-in admin account; that policy belongs to the
// session layer.
func (s *AccountStore) DeleteAccount(ctx context.Context, username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.accounts[:0]
	removed := 0
	for _, a := range s.accounts {
		if a.Username == username {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	if removed == 0 {
		return false
	}
	s.accounts = kept

	s.flush(ctx)
	s.log.InfoContext(ctx, "Account deleted", applog.FieldUsername, username)
	return true
}

// FindAccount returns the account with the given username, if any.
func (s *AccountStore) FindAccount(_ context.Context, username string) (core.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username == username {
			return a, true
		}
	}
	return core.Account{}, false
}

// Authenticate reports whether an account with this username exists and
// its stored credential exactly equals the supplied one.
func (s *AccountStore) Authenticate(ctx context.Context, username, credential string) bool {
	account, ok := s.FindAccount(ctx, username)
	return ok && account.Credential == credential
}

// ListAccounts returns a snapshot of all accounts in insertion order.
func (s *AccountStore) ListAccounts(_ context.Context) []core.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]core.Account(nil), s.accounts...)
}

// flush rewrites the durable collection. A failure keeps the in-memory
// mutation and is only reported to the diagnostic logger; callers of the
// mutation still see success. Must be called with the lock held.
func (s *AccountStore) flush(ctx context.Context) {
	if err := s.repo.SaveAccounts(ctx, s.accounts); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist accounts, in-memory state retained",
			applog.FieldError, err, applog.FieldCount, len(s.accounts))
	}
}

// Package session binds a successful authentication to owner-scoped
// ledger access. Every ledger operation a session exposes is scoped to
// the authenticated username; there is no way to reach another owner's
// records through a session. Administrative operations are gated on the
// admin role here, not in the stores.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or credential")
	ErrNotAuthorized      = errors.New("operation requires the admin role")
	ErrProtectedAccount   = errors.New("the built-in admin account cannot be deleted")
)

// Manager authenticates accounts and hands out sessions.
type Manager struct {
	accounts *store.AccountStore
	ledger   *store.LedgerStore
	log      *applog.Logger
}

func NewManager(accounts *store.AccountStore, ledger *store.LedgerStore, logger *applog.Logger) *Manager {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Manager{
		accounts: accounts,
		ledger:   ledger,
		log:      logger.WithComponent(applog.ComponentSession),
	}
}

// Login authenticates the credential pair and returns a session scoped to
// that username. The credential check is exact string equality.
func (m *Manager) Login(ctx context.Context, username, credential string) (*Session, error) {
	if !m.accounts.Authenticate(ctx, username, credential) {
		m.log.WarnContext(ctx, "Login rejected", applog.FieldUsername, username)
		return nil, ErrInvalidCredentials
	}
	account, ok := m.accounts.FindAccount(ctx, username)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	s := &Session{
		id:      uuid.New(),
		account: account,
		manager: m,
	}
	m.log.InfoContext(ctx, "Login accepted",
		applog.FieldSessionID, s.id.String(),
		applog.FieldUsername, account.Username,
		applog.FieldRole, account.Role.String())
	return s, nil
}

// Session is an authenticated view over the stores. The zero value is not
// usable; sessions come from Manager.Login.
type Session struct {
	id      uuid.UUID
	account core.Account
	manager *Manager
}

// ID identifies the session in diagnostic logs.
func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Username() string { return s.account.Username }

func (s *Session) Role() core.Role { return s.account.Role }

// AddRecord creates a ledger record owned by the session's account. The
// owner cannot be chosen by the caller.
func (s *Session) AddRecord(ctx context.Context, amount decimal.Decimal, kind core.Kind, description, category string) (core.Record, error) {
	record := core.NewRecord(amount, kind, description, category, s.account.Username)
	return s.manager.ledger.AddRecord(ctx, record)
}

// DeleteRecord deletes one of the session's own records. Records owned by
// other accounts are invisible here: deleting them reports false.
func (s *Session) DeleteRecord(ctx context.Context, id int64) bool {
	return s.manager.ledger.DeleteRecordOwnedBy(ctx, id, s.account.Username)
}

// Records returns the session owner's records in insertion order.
func (s *Session) Records(ctx context.Context) []core.Record {
	return s.manager.ledger.RecordsForOwner(ctx, s.account.Username)
}

// TotalIncome sums the session owner's income records.
func (s *Session) TotalIncome(ctx context.Context) decimal.Decimal {
	return s.manager.ledger.TotalIncome(ctx, s.account.Username)
}

// TotalExpense sums the session owner's expense records.
func (s *Session) TotalExpense(ctx context.Context) decimal.Decimal {
	return s.manager.ledger.TotalExpense(ctx, s.account.Username)
}

// Summary returns the session owner's aggregated position.
func (s *Session) Summary(ctx context.Context) core.Summary {
	return s.manager.ledger.Summary(ctx, s.account.Username)
}

// Balance is the session owner's income minus expense.
func (s *Session) Balance(ctx context.Context) decimal.Decimal {
	return s.Summary(ctx).Balance()
}

// AddAccount creates an account. Admin only.
func (s *Session) AddAccount(ctx context.Context, username, credential string, role core.Role) error {
	if s.account.Role != core.RoleAdmin {
		return ErrNotAuthorized
	}
	return s.manager.accounts.AddAccount(ctx, username, credential, role)
}

// DeleteAccount removes an account. Admin only; the built-in admin
// account is protected here, matching where the original system enforced
// it. The store API underneath stays permissive.
func (s *Session) DeleteAccount(ctx context.Context, username string) (bool, error) {
	if s.account.Role != core.RoleAdmin {
		return false, ErrNotAuthorized
	}
	if username == store.DefaultAdminUsername {
		return false, ErrProtectedAccount
	}
	return s.manager.accounts.DeleteAccount(ctx, username), nil
}

// Accounts lists all accounts. Admin only.
func (s *Session) Accounts(ctx context.Context) ([]core.Account, error) {
	if s.account.Role != core.RoleAdmin {
		return nil, ErrNotAuthorized
	}
	return s.manager.accounts.ListAccounts(ctx), nil
}

package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleAdmin   Role = "ADMIN"
	RoleRegular Role = "REGULAR"

	Income  Kind = "INCOME"
	Expense Kind = "EXPENSE"
)

type (
	// Role determines which surface an account may reach: admins manage
	// accounts, regular users manage only their own ledger records.
	Role string

	// Kind classifies a ledger record as money coming in or going out.
	Kind string

	// Account is a credentialed identity. Accounts are immutable after
	// creation; there is no in-place edit of username, credential or role.
	//
	// The credential is compared by exact string equality, without hashing.
	// This mirrors the system this tracker migrated from; changing it to
	// hashed storage would break the existing data files and is tracked
	// as a separate migration.
	Account struct {
		Username   string `json:"username"`
		Credential string `json:"credential"`
		Role       Role   `json:"role"`
	}

	// Record is a single income or expense entry. Records are append-only:
	// once created they are never mutated, only deleted by ID.
	Record struct {
		ID          int64           `json:"id"`
		Amount      decimal.Decimal `json:"amount"`
		Kind        Kind            `json:"kind"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Owner       string          `json:"owner"`
		CreatedAt   time.Time       `json:"created_at"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidKind      = errors.New("invalid record kind")
	ErrInvalidRole      = errors.New("invalid role")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyUsername    = errors.New("empty username")
	ErrEmptyCredential  = errors.New("empty credential")
	ErrEmptyOwner       = errors.New("empty owner")
)

func (r Role) String() string { return string(r) }

// IsValid returns true if the role is one of the defined variants.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleRegular:
		return true
	default:
		return false
	}
}

func (k Kind) String() string { return string(k) }

// IsValid returns true if the kind is one of the defined variants.
func (k Kind) IsValid() bool {
	switch k {
	case Income, Expense:
		return true
	default:
		return false
	}
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Username) == "" {
		return ErrEmptyUsername
	}
	if a.Credential == "" {
		return ErrEmptyCredential
	}
	if !a.Role.IsValid() {
		return ErrInvalidRole
	}
	return nil
}

// NewRecord builds a record with the creation timestamp taken from the
// clock. The ID stays zero until the ledger store assigns one at insert.
func NewRecord(amount decimal.Decimal, kind Kind, description, category, owner string) Record {
	return Record{
		Amount:      amount,
		Kind:        kind,
		Description: description,
		Category:    category,
		Owner:       owner,
		CreatedAt:   time.Now().UTC(),
	}
}

func (r Record) Validate() error {
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !r.Kind.IsValid() {
		return ErrInvalidKind
	}
	if len(strings.TrimSpace(r.Description)) == 0 {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(r.Owner) == "" {
		return ErrEmptyOwner
	}
	return nil
}

// DefaultCategories returns the category suggestions offered by the entry
// form. Categories are free-form; nothing enforces membership in this set.
func DefaultCategories() []string {
	return []string{"Salary", "Food", "Transport", "Entertainment", "Other"}
}

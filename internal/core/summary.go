package core

import "github.com/shopspring/decimal"

// Summary is an owner's aggregated ledger position.
type Summary struct {
	Owner   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Balance is total income minus total expense.
func (s Summary) Balance() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}

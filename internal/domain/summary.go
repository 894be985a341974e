package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the income/expense/balance totals for a date range.
// Income and Expenses are non-negative by construction since every stored
// amount is positive; Balance = Income - Expenses.
type Summary struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

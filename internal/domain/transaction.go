package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single dated movement in the ledger. Type is the sole
// authority on whether money came in or went out; Amount is always positive.
type Transaction struct {
	ID          int32           `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CategoryID  int32           `json:"categoryId"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// UpdateTransactionData holds the mutable fields for a full-replace update.
// CategoryID is re-resolved by the caller, not taken from user input.
type UpdateTransactionData struct {
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  int32
}

const MaxDescriptionLength = 255

type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) (*Transaction, error)
	GetByID(ctx context.Context, id int32) (*Transaction, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*Transaction, error)
	Update(ctx context.Context, id int32, data *UpdateTransactionData) (*Transaction, error)
	DeleteIfToday(ctx context.Context, id int32) error
	Delete(ctx context.Context, id int32) error
	SumByTypeAndDateRange(ctx context.Context, from, to time.Time, txType TransactionType) (decimal.Decimal, error)
}

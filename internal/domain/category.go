package domain

import "context"

// FallbackCategoryID is the reserved category used when no category matches a
// transaction type. It is seeded by the initial migration and never deleted.
const FallbackCategoryID int32 = 1

// Category is long-lived reference data. The ledger core only reads
// categories; they are created and maintained by migrations.
type Category struct {
	ID          int32           `json:"id"`
	Name        string          `json:"name"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	IsDefault   bool            `json:"isDefault"`
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id int32) (*Category, error)
	GetAll(ctx context.Context) ([]*Category, error)
	// GetByType returns categories for a type ordered by is_default DESC,
	// id ASC, so the first element is the deterministic default choice.
	GetByType(ctx context.Context, txType TransactionType) ([]*Category, error)
	CategoryOfTransaction(ctx context.Context, transactionID int32) (int32, error)
}

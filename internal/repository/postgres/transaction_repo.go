package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create persists a new transaction. The resolved category id is re-validated
// inside the same database transaction as the insert, so a concurrently
// removed category can never end up referenced by a committed row.
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, storageErr("begin", err)
	}
	defer tx.Rollback(ctx)

	if err := categoryExistsTx(ctx, tx, transaction.CategoryID); err != nil {
		return nil, err
	}

	var (
		id        int32
		createdAt pgtype.Timestamptz
	)
	err = tx.QueryRow(ctx,
		`INSERT INTO transactions (type, amount, description, transaction_date, category_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		string(transaction.Type), amount, transaction.Description,
		pgtype.Date{Time: transaction.Date, Valid: true}, transaction.CategoryID,
	).Scan(&id, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The insert went through but no generated id came back. Never a
			// silent success.
			return nil, storageErr("insert transaction: no id obtained", err)
		}
		return nil, storageErr("insert transaction", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storageErr("commit", err)
	}

	created := *transaction
	created.ID = id
	created.CreatedAt = createdAt.Time
	return &created, nil
}

// GetByID retrieves a transaction by its id
func (r *TransactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, type, amount, description, transaction_date, category_id, created_at
		 FROM transactions WHERE id = $1`, id)

	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, storageErr("select transaction", err)
	}
	return transaction, nil
}

// GetByDateRange retrieves all transactions dated inclusively within
// [from, to], ordered by date descending with ties broken by id descending.
func (r *TransactionRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, type, amount, description, transaction_date, category_id, created_at
		 FROM transactions
		 WHERE transaction_date BETWEEN $1 AND $2
		 ORDER BY transaction_date DESC, id DESC`,
		pgtype.Date{Time: from, Valid: true}, pgtype.Date{Time: to, Valid: true})
	if err != nil {
		return nil, storageErr("select transactions", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, storageErr("scan transaction", err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate transactions", err)
	}
	return transactions, nil
}

// Update replaces the mutable fields of an existing transaction. The category
// id passed in data has already been resolved by the caller and is
// re-validated in the same database transaction as the write.
func (r *TransactionRepository) Update(ctx context.Context, id int32, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, storageErr("begin", err)
	}
	defer tx.Rollback(ctx)

	if err := categoryExistsTx(ctx, tx, data.CategoryID); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx,
		`UPDATE transactions
		 SET type = $1, amount = $2, description = $3, transaction_date = $4, category_id = $5
		 WHERE id = $6
		 RETURNING id, type, amount, description, transaction_date, category_id, created_at`,
		string(data.Type), amount, data.Description,
		pgtype.Date{Time: data.Date, Valid: true}, data.CategoryID, id)

	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The row vanished between read and write; zero rows affected is
			// a not-found, not a storage failure.
			return nil, domain.ErrTransactionNotFound
		}
		return nil, storageErr("update transaction", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storageErr("commit", err)
	}
	return transaction, nil
}

// DeleteIfToday deletes the transaction only if it is dated today. This is
// the guard against retroactively erasing historical ledger entries.
func (r *TransactionRepository) DeleteIfToday(ctx context.Context, id int32) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND transaction_date = CURRENT_DATE`, id)
	if err != nil {
		return storageErr("delete transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotDeletable
	}
	return nil
}

// Delete removes the transaction unconditionally. Deleting a missing id is
// not an error.
func (r *TransactionRepository) Delete(ctx context.Context, id int32) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return storageErr("delete transaction", err)
	}
	return nil
}

// SumByTypeAndDateRange sums transaction amounts of one type within a date range
func (r *TransactionRepository) SumByTypeAndDateRange(ctx context.Context, from, to time.Time, txType domain.TransactionType) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM transactions
		 WHERE transaction_date BETWEEN $1 AND $2 AND type = $3`,
		pgtype.Date{Time: from, Valid: true}, pgtype.Date{Time: to, Valid: true},
		string(txType)).Scan(&total)
	if err != nil {
		return decimal.Zero, storageErr("sum transactions", err)
	}
	return pgNumericToDecimal(total), nil
}

// categoryExistsTx verifies the category id within an open transaction.
func categoryExistsTx(ctx context.Context, tx pgx.Tx, categoryID int32) error {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, categoryID).Scan(&exists)
	if err != nil {
		return storageErr("check category", err)
	}
	if !exists {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction domain.Transaction
		txType      string
		amount      pgtype.Numeric
		date        pgtype.Date
		createdAt   pgtype.Timestamptz
	)
	err := row.Scan(&transaction.ID, &txType, &amount, &transaction.Description,
		&date, &transaction.CategoryID, &createdAt)
	if err != nil {
		return nil, err
	}
	transaction.Type = domain.TransactionType(txType)
	transaction.Amount = pgNumericToDecimal(amount)
	transaction.Date = date.Time
	transaction.CreatedAt = createdAt.Time
	return &transaction, nil
}

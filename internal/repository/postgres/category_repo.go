package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kontor/kontor-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL.
// Categories are reference data; this repository is read-only.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// GetByID retrieves a category by its id
func (r *CategoryRepository) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, type, description, is_default FROM categories WHERE id = $1`, id)

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, storageErr("select category", err)
	}
	return category, nil
}

// GetAll retrieves all categories ordered by id
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, type, description, is_default FROM categories ORDER BY id`)
	if err != nil {
		return nil, storageErr("select categories", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

// GetByType retrieves categories for a transaction type. The ordering makes
// default selection deterministic: is_default first, then lowest id.
func (r *CategoryRepository) GetByType(ctx context.Context, txType domain.TransactionType) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, type, description, is_default
		 FROM categories
		 WHERE type = $1
		 ORDER BY is_default DESC, id ASC`, string(txType))
	if err != nil {
		return nil, storageErr("select categories by type", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

// CategoryOfTransaction returns the category currently attached to a transaction
func (r *CategoryRepository) CategoryOfTransaction(ctx context.Context, transactionID int32) (int32, error) {
	var categoryID int32
	err := r.pool.QueryRow(ctx,
		`SELECT category_id FROM transactions WHERE id = $1`, transactionID).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrTransactionNotFound
		}
		return 0, storageErr("select transaction category", err)
	}
	return categoryID, nil
}

func collectCategories(rows pgx.Rows) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, storageErr("scan category", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate categories", err)
	}
	return categories, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		category domain.Category
		catType  string
	)
	err := row.Scan(&category.ID, &category.Name, &catType, &category.Description, &category.IsDefault)
	if err != nil {
		return nil, err
	}
	category.Type = domain.TransactionType(catType)
	return &category, nil
}

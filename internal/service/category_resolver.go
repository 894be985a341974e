package service

import (
	"context"

	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// CategoryResolver picks the category to attach to a transaction when the
// caller supplies none, and looks up the category attached to existing ones.
type CategoryResolver struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryResolver creates a new CategoryResolver
func NewCategoryResolver(categoryRepo domain.CategoryRepository) *CategoryResolver {
	return &CategoryResolver{categoryRepo: categoryRepo}
}

// DefaultCategoryFor returns the category id to use for a transaction of the
// given type. Selection is deterministic: categories flagged is_default win,
// ties go to the lowest id. When no category matches the type at all, the
// reserved fallback id is returned and fellBack is true; this is a warning
// condition, never an error, and the write must still succeed.
func (r *CategoryResolver) DefaultCategoryFor(ctx context.Context, txType domain.TransactionType) (categoryID int32, fellBack bool, err error) {
	categories, err := r.categoryRepo.GetByType(ctx, txType)
	if err != nil {
		return 0, false, err
	}
	if len(categories) == 0 {
		log.Warn().
			Str("type", string(txType)).
			Int32("fallback_id", domain.FallbackCategoryID).
			Msg("No category found for type, using fallback")
		return domain.FallbackCategoryID, true, nil
	}
	return categories[0].ID, false, nil
}

// CurrentCategoryOf returns the category attached to an existing transaction.
// A transaction without a resolvable category (which the schema normally
// prevents) yields the reserved fallback id.
func (r *CategoryResolver) CurrentCategoryOf(ctx context.Context, transactionID int32) (int32, error) {
	categoryID, err := r.categoryRepo.CategoryOfTransaction(ctx, transactionID)
	if err != nil {
		return 0, err
	}
	if categoryID == 0 {
		return domain.FallbackCategoryID, nil
	}
	return categoryID, nil
}

// ResolveForUpdate returns the category an edited transaction should keep: the
// one already attached, or the default for its (possibly new) type when none
// is attached. The attached category is sticky; edits never reassign it.
func (r *CategoryResolver) ResolveForUpdate(ctx context.Context, transactionID int32, txType domain.TransactionType) (int32, error) {
	attached, err := r.categoryRepo.CategoryOfTransaction(ctx, transactionID)
	if err != nil {
		return 0, err
	}
	if attached > 0 {
		return attached, nil
	}
	categoryID, _, err := r.DefaultCategoryFor(ctx, txType)
	return categoryID, err
}

// Categories returns all categories, for the presentation layer's pickers.
func (r *CategoryResolver) Categories(ctx context.Context) ([]*domain.Category, error) {
	return r.categoryRepo.GetAll(ctx)
}

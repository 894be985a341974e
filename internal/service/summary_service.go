package service

import (
	"context"
	"time"

	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/kontor/kontor-backend/internal/util"
)

// SummaryService computes income/expense/balance totals for a date range
type SummaryService struct {
	transactionRepo domain.TransactionRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(transactionRepo domain.TransactionRepository) *SummaryService {
	return &SummaryService{transactionRepo: transactionRepo}
}

// Summarize totals the transactions dated inclusively within [from, to].
// Income and expenses are non-negative since stored amounts are positive;
// an empty range yields an all-zero summary.
func (s *SummaryService) Summarize(ctx context.Context, from, to time.Time) (*domain.Summary, error) {
	from = util.DateOnly(from)
	to = util.DateOnly(to)
	if from.After(to) {
		return nil, domain.ErrInvalidDateRange
	}

	income, err := s.transactionRepo.SumByTypeAndDateRange(ctx, from, to, domain.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}
	expenses, err := s.transactionRepo.SumByTypeAndDateRange(ctx, from, to, domain.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	return &domain.Summary{
		From:     from,
		To:       to,
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}, nil
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/kontor/kontor-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestSummarize(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	summaries := NewSummaryService(transactionRepo)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	transactionRepo.AddTransaction(&domain.Transaction{ID: 1, Type: domain.TransactionTypeIncome, Amount: decimal.NewFromFloat(2500), Description: "Salary", Date: base, CategoryID: 2})
	transactionRepo.AddTransaction(&domain.Transaction{ID: 2, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromFloat(640), Description: "Rent", Date: base.AddDate(0, 0, 1), CategoryID: 4})
	transactionRepo.AddTransaction(&domain.Transaction{ID: 3, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromFloat(54.30), Description: "Groceries", Date: base.AddDate(0, 0, 5), CategoryID: 4})
	// Outside the range
	transactionRepo.AddTransaction(&domain.Transaction{ID: 4, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromFloat(99), Description: "Old", Date: base.AddDate(0, -1, 0), CategoryID: 4})

	summary, err := summaries.Summarize(context.Background(), base, base.AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.Income.Equal(decimal.NewFromFloat(2500)) {
		t.Errorf("Expected income 2500, got %s", summary.Income)
	}
	if !summary.Expenses.Equal(decimal.NewFromFloat(694.30)) {
		t.Errorf("Expected expenses 694.30, got %s", summary.Expenses)
	}
	if !summary.Balance.Equal(decimal.NewFromFloat(1805.70)) {
		t.Errorf("Expected balance 1805.70, got %s", summary.Balance)
	}
}

func TestSummarize_EmptyRange(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	summaries := NewSummaryService(transactionRepo)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	summary, err := summaries.Summarize(context.Background(), base, base.AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.Income.IsZero() || !summary.Expenses.IsZero() || !summary.Balance.IsZero() {
		t.Errorf("Expected all-zero summary, got income=%s expenses=%s balance=%s",
			summary.Income, summary.Expenses, summary.Balance)
	}
}

func TestSummarize_NegativeBalance(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	summaries := NewSummaryService(transactionRepo)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	transactionRepo.AddTransaction(&domain.Transaction{ID: 1, Type: domain.TransactionTypeIncome, Amount: decimal.NewFromFloat(100), Description: "Refund", Date: base, CategoryID: 2})
	transactionRepo.AddTransaction(&domain.Transaction{ID: 2, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromFloat(250), Description: "Repair", Date: base, CategoryID: 4})

	summary, err := summaries.Summarize(context.Background(), base, base)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.Balance.Equal(decimal.NewFromFloat(-150)) {
		t.Errorf("Expected balance -150, got %s", summary.Balance)
	}
}

func TestSummarize_InvalidRange(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	summaries := NewSummaryService(transactionRepo)

	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	_, err := summaries.Summarize(context.Background(), from, from.AddDate(0, 0, -1))
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange, got %v", err)
	}
}

func TestSummarize_PropagatesStorageError(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionRepo.SumErr = domain.ErrStorage
	summaries := NewSummaryService(transactionRepo)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := summaries.Summarize(context.Background(), from, from)
	if !errors.Is(err, domain.ErrStorage) {
		t.Errorf("Expected storage error to propagate, got %v", err)
	}
}

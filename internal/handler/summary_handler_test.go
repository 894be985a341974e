package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/kontor/kontor-backend/internal/service"
	"github.com/kontor/kontor-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newSummaryHandler() (*SummaryHandler, *testutil.MockTransactionRepository) {
	transactionRepo := testutil.NewMockTransactionRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	resolver := service.NewCategoryResolver(categoryRepo)
	summaries := service.NewSummaryService(transactionRepo)
	ledger := service.NewLedgerService(transactionRepo, resolver, summaries, &testutil.CapturingPublisher{})
	return NewSummaryHandler(ledger), transactionRepo
}

func TestGetSummary_ExplicitRange(t *testing.T) {
	e := echo.New()
	handler, transactionRepo := newSummaryHandler()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	transactionRepo.AddTransaction(&domain.Transaction{ID: 1, Type: domain.TransactionTypeIncome, Amount: decimal.NewFromFloat(2500), Description: "Salary", Date: base, CategoryID: 2})
	transactionRepo.AddTransaction(&domain.Transaction{ID: 2, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromFloat(640), Description: "Rent", Date: base, CategoryID: 4})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary?from=2026-08-01&to=2026-08-31", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Income != "2500.00" {
		t.Errorf("Expected income '2500.00', got %s", response.Income)
	}
	if response.Expenses != "640.00" {
		t.Errorf("Expected expenses '640.00', got %s", response.Expenses)
	}
	if response.Balance != "1860.00" {
		t.Errorf("Expected balance '1860.00', got %s", response.Balance)
	}
	if response.From != "2026-08-01" || response.To != "2026-08-31" {
		t.Errorf("Expected echoed range, got [%s, %s]", response.From, response.To)
	}
}

func TestGetSummary_DefaultFilter(t *testing.T) {
	e := echo.New()
	handler, _ := newSummaryHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Income != "0.00" || response.Expenses != "0.00" || response.Balance != "0.00" {
		t.Errorf("Expected all-zero summary, got income=%s expenses=%s balance=%s",
			response.Income, response.Expenses, response.Balance)
	}
}

func TestGetSummary_InvertedRange(t *testing.T) {
	e := echo.New()
	handler, _ := newSummaryHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary?from=2026-08-31&to=2026-08-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

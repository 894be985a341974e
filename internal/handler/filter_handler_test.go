package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kontor/kontor-backend/internal/service"
	"github.com/kontor/kontor-backend/internal/testutil"
	"github.com/kontor/kontor-backend/internal/util"
	"github.com/labstack/echo/v4"
)

func newFilterHandler() *FilterHandler {
	transactionRepo := testutil.NewMockTransactionRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	resolver := service.NewCategoryResolver(categoryRepo)
	summaries := service.NewSummaryService(transactionRepo)
	ledger := service.NewLedgerService(transactionRepo, resolver, summaries, &testutil.CapturingPublisher{})
	return NewFilterHandler(ledger)
}

func TestGetFilter_Default(t *testing.T) {
	e := echo.New()
	handler := newFilterHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/filter", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetFilter(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response FilterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	today := util.Today()
	if response.From != util.MonthStart(today).Format("2006-01-02") {
		t.Errorf("Expected filter to start at month start, got %s", response.From)
	}
	if response.To != today.Format("2006-01-02") {
		t.Errorf("Expected filter to end today, got %s", response.To)
	}
}

func TestSetFilter_Success(t *testing.T) {
	e := echo.New()
	handler := newFilterHandler()

	reqBody := `{"from": "2026-07-01", "to": "2026-07-31"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/filter", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.SetFilter(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response FilterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.From != "2026-07-01" || response.To != "2026-07-31" {
		t.Errorf("Expected [2026-07-01, 2026-07-31], got [%s, %s]", response.From, response.To)
	}
}

func TestSetFilter_InvertedRange(t *testing.T) {
	e := echo.New()
	handler := newFilterHandler()

	reqBody := `{"from": "2026-07-31", "to": "2026-07-01"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/filter", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.SetFilter(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestSetFilter_MalformedDate(t *testing.T) {
	e := echo.New()
	handler := newFilterHandler()

	reqBody := `{"from": "July 1st", "to": "2026-07-31"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/filter", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.SetFilter(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestResetFilter(t *testing.T) {
	e := echo.New()
	handler := newFilterHandler()

	// Move the filter away from the default first
	reqBody := `{"from": "2026-07-01", "to": "2026-07-31"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/filter", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	if err := handler.SetFilter(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/filter", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ResetFilter(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response FilterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	today := util.Today()
	if response.From != util.MonthStart(today).Format("2006-01-02") || response.To != today.Format("2006-01-02") {
		t.Errorf("Expected default range after reset, got [%s, %s]", response.From, response.To)
	}
}

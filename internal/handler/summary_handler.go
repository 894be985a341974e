package handler

import (
	"errors"
	"net/http"

	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/kontor/kontor-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SummaryHandler handles summary-related HTTP requests
type SummaryHandler struct {
	ledger *service.LedgerService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(ledger *service.LedgerService) *SummaryHandler {
	return &SummaryHandler{ledger: ledger}
}

// SummaryResponse represents an income/expense/balance summary
type SummaryResponse struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Balance  string `json:"balance"`
}

// GetSummary godoc
// @Summary Summarize a date range
// @Description Total income, total expenses and balance over a date range.
// @Description Without explicit from/to parameters the current date filter
// @Description applies.
// @Tags summary
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ProblemDetails
// @Router /summary [get]
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	from, to, ok, err := parseRange(c)
	if err != nil {
		return NewValidationError(c, "Invalid date range", []ValidationError{
			{Field: "from/to", Message: "Both must be provided in YYYY-MM-DD format"},
		})
	}

	var summary *domain.Summary
	if ok {
		summary, err = h.ledger.SummarizeRange(c.Request().Context(), from, to)
	} else {
		summary, err = h.ledger.Summarize(c.Request().Context())
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "from", Message: "Must not be after to"},
			})
		}
		log.Error().Err(err).Msg("Failed to compute summary")
		return NewInternalError(c, "Failed to compute summary")
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		From:     summary.From.Format("2006-01-02"),
		To:       summary.To.Format("2006-01-02"),
		Income:   summary.Income.StringFixed(2),
		Expenses: summary.Expenses.StringFixed(2),
		Balance:  summary.Balance.StringFixed(2),
	})
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/kontor/kontor-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// FilterHandler handles date-filter HTTP requests
type FilterHandler struct {
	ledger *service.LedgerService
}

// NewFilterHandler creates a new FilterHandler
func NewFilterHandler(ledger *service.LedgerService) *FilterHandler {
	return &FilterHandler{ledger: ledger}
}

// FilterRequest represents the set-filter request body
type FilterRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FilterResponse represents the active date filter
type FilterResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GetFilter godoc
// @Summary Get the active date filter
// @Tags filter
// @Produce json
// @Success 200 {object} FilterResponse
// @Router /filter [get]
func (h *FilterHandler) GetFilter(c echo.Context) error {
	filter := h.ledger.DateFilter()
	return c.JSON(http.StatusOK, toFilterResponse(filter))
}

// SetFilter godoc
// @Summary Replace the active date filter
// @Tags filter
// @Accept json
// @Produce json
// @Param request body FilterRequest true "Filter request"
// @Success 200 {object} FilterResponse
// @Failure 400 {object} ProblemDetails
// @Router /filter [put]
func (h *FilterHandler) SetFilter(c echo.Context) error {
	var req FilterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "from", Message: "Must be in YYYY-MM-DD format"},
		})
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "to", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	if err := h.ledger.SetDateFilter(from, to); err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "from", Message: "Must not be after to"},
			})
		}
		return NewInternalError(c, "Failed to set date filter")
	}

	return c.JSON(http.StatusOK, toFilterResponse(h.ledger.DateFilter()))
}

// ResetFilter godoc
// @Summary Reset the date filter to the current month
// @Tags filter
// @Produce json
// @Success 200 {object} FilterResponse
// @Router /filter [delete]
func (h *FilterHandler) ResetFilter(c echo.Context) error {
	h.ledger.ResetDateFilter()
	return c.JSON(http.StatusOK, toFilterResponse(h.ledger.DateFilter()))
}

func toFilterResponse(filter service.DateFilter) FilterResponse {
	return FilterResponse{
		From: filter.From.Format("2006-01-02"),
		To:   filter.To.Format("2006-01-02"),
	}
}

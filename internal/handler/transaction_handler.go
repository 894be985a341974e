package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/kontor/kontor-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	ledger *service.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(ledger *service.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// TransactionRequest represents the create/update transaction request body
type TransactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	CategoryID  *int32 `json:"categoryId,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          int32  `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	CategoryID  int32  `json:"categoryId"`
	CreatedAt   string `json:"createdAt"`
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Description Record a new income or expense movement in the ledger
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Transaction request"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	transaction, err := h.ledger.RecordTransaction(c.Request().Context(), service.RecordTransactionInput{
		Type:        domain.TransactionType(req.Type),
		Amount:      amount,
		Description: req.Description,
		Date:        date,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return h.mapWriteError(c, err, "Failed to record transaction")
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// UpdateTransaction godoc
// @Summary Edit a transaction
// @Description Replace the mutable fields of an existing transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body TransactionRequest true "Transaction request"
// @Success 200 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction id", nil)
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	transaction, err := h.ledger.EditTransaction(c.Request().Context(), id, service.EditTransactionInput{
		Type:        domain.TransactionType(req.Type),
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return h.mapWriteError(c, err, "Failed to update transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} TransactionResponse
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction id", nil)
	}

	transaction, err := h.ledger.GetTransaction(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int32("transaction_id", id).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// GetTransactions godoc
// @Summary List transactions
// @Description List transactions in a date range, newest first. Without
// @Description explicit from/to parameters the current date filter applies.
// @Tags transactions
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	from, to, ok, err := parseRange(c)
	if err != nil {
		return NewValidationError(c, "Invalid date range", []ValidationError{
			{Field: "from/to", Message: "Both must be provided in YYYY-MM-DD format"},
		})
	}

	var transactions []*domain.Transaction
	if ok {
		transactions, err = h.ledger.ListInRange(c.Request().Context(), from, to)
	} else {
		transactions, err = h.ledger.List(c.Request().Context())
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "from", Message: "Must not be after to"},
			})
		}
		log.Error().Err(err).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	response := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		response[i] = toTransactionResponse(transaction)
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Description Delete today's entry. With force=true the today-only guard is
// @Description bypassed and the delete is unconditional and idempotent.
// @Tags transactions
// @Param id path int true "Transaction ID"
// @Param force query bool false "Bypass the today-only guard"
// @Success 204
// @Failure 409 {object} ProblemDetails
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction id", nil)
	}

	ctx := c.Request().Context()
	if c.QueryParam("force") == "true" {
		if err := h.ledger.RemoveEntry(ctx, id); err != nil {
			log.Error().Err(err).Int32("transaction_id", id).Msg("Failed to delete transaction")
			return NewInternalError(c, "Failed to delete transaction")
		}
		return c.NoContent(http.StatusNoContent)
	}

	if err := h.ledger.RemoveTodayEntry(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotDeletable) {
			return NewConflictError(c, "Not deletable: not today's entry or does not exist")
		}
		log.Error().Err(err).Int32("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}
	return c.NoContent(http.StatusNoContent)
}

// mapWriteError translates record/edit failures into problem responses
func (h *TransactionHandler) mapWriteError(c echo.Context, err error, detail string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrDescriptionRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidTransactionType):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: INCOME, EXPENSE"},
		})
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date is required"},
		})
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category not found"},
		})
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NewNotFoundError(c, "Transaction not found")
	default:
		log.Error().Err(err).Msg(detail)
		return NewInternalError(c, detail)
	}
}

func parseID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}

// parseRange reads the optional from/to query parameters. ok is false when
// neither is present; supplying only one of them is an error.
func parseRange(c echo.Context) (from, to time.Time, ok bool, err error) {
	fromParam := c.QueryParam("from")
	toParam := c.QueryParam("to")
	if fromParam == "" && toParam == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	from, err = time.Parse("2006-01-02", fromParam)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	to, err = time.Parse("2006-01-02", toParam)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return from, to, true, nil
}

func toTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID,
		Type:        string(transaction.Type),
		Amount:      transaction.Amount.StringFixed(2),
		Description: transaction.Description,
		Date:        transaction.Date.Format("2006-01-02"),
		CategoryID:  transaction.CategoryID,
		CreatedAt:   transaction.CreatedAt.UTC().Format(time.RFC3339),
	}
}

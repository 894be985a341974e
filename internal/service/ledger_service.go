package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/kontor/kontor-backend/internal/util"
	"github.com/kontor/kontor-backend/internal/ws"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DateFilter is the date range used when a query supplies no explicit range
type DateFilter struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// LedgerService is the single entry point for the presentation layer. It
// composes the transaction store, category resolver and summary aggregator,
// and owns the date-filter state used for default queries. All collaborators
// are supplied at construction; nothing is reached through globals.
type LedgerService struct {
	transactionRepo domain.TransactionRepository
	resolver        *CategoryResolver
	summaries       *SummaryService
	publisher       ws.EventPublisher

	mu     sync.Mutex
	filter DateFilter
}

// NewLedgerService creates a new LedgerService. The date filter starts at the
// default range: first day of the current month through today.
func NewLedgerService(transactionRepo domain.TransactionRepository, resolver *CategoryResolver, summaries *SummaryService, publisher ws.EventPublisher) *LedgerService {
	return &LedgerService{
		transactionRepo: transactionRepo,
		resolver:        resolver,
		summaries:       summaries,
		publisher:       publisher,
		filter:          defaultFilter(),
	}
}

func defaultFilter() DateFilter {
	today := util.Today()
	return DateFilter{From: util.MonthStart(today), To: today}
}

// RecordTransactionInput holds the input for recording a transaction
type RecordTransactionInput struct {
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  *int32
}

// RecordTransaction validates and persists a new transaction. When no
// category is supplied, the resolver's default for the transaction type is
// attached.
func (s *LedgerService) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*domain.Transaction, error) {
	description, err := validateFields(input.Type, input.Amount, input.Description, input.Date)
	if err != nil {
		return nil, err
	}

	var categoryID int32
	if input.CategoryID != nil {
		categoryID = *input.CategoryID
	} else {
		categoryID, _, err = s.resolver.DefaultCategoryFor(ctx, input.Type)
		if err != nil {
			return nil, err
		}
	}

	created, err := s.transactionRepo.Create(ctx, &domain.Transaction{
		Type:        input.Type,
		Amount:      input.Amount,
		Description: description,
		Date:        util.DateOnly(input.Date),
		CategoryID:  categoryID,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int32("transaction_id", created.ID).
		Str("type", string(created.Type)).
		Str("amount", created.Amount.String()).
		Msg("Transaction recorded")

	s.publisher.Publish(ws.TransactionCreated(created))
	return created, nil
}

// EditTransactionInput holds the input for editing a transaction
type EditTransactionInput struct {
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// EditTransaction replaces the mutable fields of an existing transaction. The
// attached category is kept; only a transaction without one falls back to the
// default for its type.
func (s *LedgerService) EditTransaction(ctx context.Context, id int32, input EditTransactionInput) (*domain.Transaction, error) {
	description, err := validateFields(input.Type, input.Amount, input.Description, input.Date)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.resolver.ResolveForUpdate(ctx, id, input.Type)
	if err != nil {
		return nil, err
	}

	updated, err := s.transactionRepo.Update(ctx, id, &domain.UpdateTransactionData{
		Type:        input.Type,
		Amount:      input.Amount,
		Description: description,
		Date:        util.DateOnly(input.Date),
		CategoryID:  categoryID,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int32("transaction_id", id).Msg("Transaction updated")

	s.publisher.Publish(ws.TransactionUpdated(updated))
	return updated, nil
}

// GetTransaction retrieves a single transaction by id
func (s *LedgerService) GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}

// RemoveTodayEntry deletes a transaction only if it is dated today. Entries
// from any other day trip domain.ErrNotDeletable and remain untouched.
func (s *LedgerService) RemoveTodayEntry(ctx context.Context, id int32) error {
	if err := s.transactionRepo.DeleteIfToday(ctx, id); err != nil {
		return err
	}

	log.Info().Int32("transaction_id", id).Msg("Today's transaction deleted")

	s.publisher.Publish(ws.TransactionDeleted(map[string]int32{"id": id}))
	return nil
}

// RemoveEntry deletes a transaction unconditionally. It succeeds even when
// the id does not exist and is reserved for administrative correction flows.
func (s *LedgerService) RemoveEntry(ctx context.Context, id int32) error {
	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Int32("transaction_id", id).Msg("Transaction deleted")

	s.publisher.Publish(ws.TransactionDeleted(map[string]int32{"id": id}))
	return nil
}

// ListInRange returns the transactions dated inclusively within [from, to],
// newest date first, ties broken by highest id.
func (s *LedgerService) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	from = util.DateOnly(from)
	to = util.DateOnly(to)
	if from.After(to) {
		return nil, domain.ErrInvalidDateRange
	}
	return s.transactionRepo.GetByDateRange(ctx, from, to)
}

// List returns the transactions within the current date filter
func (s *LedgerService) List(ctx context.Context) ([]*domain.Transaction, error) {
	filter := s.DateFilter()
	return s.ListInRange(ctx, filter.From, filter.To)
}

// SummarizeRange computes the income/expense/balance summary for a range
func (s *LedgerService) SummarizeRange(ctx context.Context, from, to time.Time) (*domain.Summary, error) {
	return s.summaries.Summarize(ctx, from, to)
}

// Summarize computes the summary for the current date filter
func (s *LedgerService) Summarize(ctx context.Context) (*domain.Summary, error) {
	filter := s.DateFilter()
	return s.summaries.Summarize(ctx, filter.From, filter.To)
}

// DateFilter returns the current date filter
func (s *LedgerService) DateFilter() DateFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetDateFilter replaces the date filter after validating from <= to
func (s *LedgerService) SetDateFilter(from, to time.Time) error {
	from = util.DateOnly(from)
	to = util.DateOnly(to)
	if from.After(to) {
		return domain.ErrInvalidDateRange
	}

	s.mu.Lock()
	s.filter = DateFilter{From: from, To: to}
	filter := s.filter
	s.mu.Unlock()

	log.Info().
		Str("from", from.Format("2006-01-02")).
		Str("to", to.Format("2006-01-02")).
		Msg("Date filter set")

	s.publisher.Publish(ws.FilterChanged(filter))
	return nil
}

// ResetDateFilter restores the default range: first of the current month
// through today.
func (s *LedgerService) ResetDateFilter() {
	s.mu.Lock()
	s.filter = defaultFilter()
	filter := s.filter
	s.mu.Unlock()

	log.Info().Msg("Date filter reset to current month")

	s.publisher.Publish(ws.FilterChanged(filter))
}

// validateFields checks the shared transaction invariants and returns the
// trimmed description.
func validateFields(txType domain.TransactionType, amount decimal.Decimal, description string, date time.Time) (string, error) {
	if !txType.Valid() {
		return "", domain.ErrInvalidTransactionType
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", domain.ErrInvalidAmount
	}
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", domain.ErrDescriptionRequired
	}
	if len(trimmed) > domain.MaxDescriptionLength {
		return "", domain.ErrDescriptionTooLong
	}
	if date.IsZero() {
		return "", domain.ErrInvalidDate
	}
	return trimmed, nil
}

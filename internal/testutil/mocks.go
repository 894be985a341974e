package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/kontor/kontor-backend/internal/util"
	"github.com/kontor/kontor-backend/internal/ws"
	"github.com/shopspring/decimal"
)

// MockTransactionRepository is an in-memory implementation of
// domain.TransactionRepository for tests
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	NextID       int32

	// Optional error injection
	CreateErr error
	UpdateErr error
	SumErr    error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		NextID:       1,
	}
}

// Create assigns the next id and stores the transaction
func (m *MockTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	created := *transaction
	created.ID = m.NextID
	created.CreatedAt = time.Now().UTC()
	m.NextID++
	m.Transactions[created.ID] = &created
	return &created, nil
}

// GetByID retrieves a transaction by id
func (m *MockTransactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	if transaction, ok := m.Transactions[id]; ok {
		copied := *transaction
		return &copied, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// GetByDateRange returns transactions within the range, date desc then id desc
func (m *MockTransactionRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	result := make([]*domain.Transaction, 0)
	for _, transaction := range m.Transactions {
		if transaction.Date.Before(from) || transaction.Date.After(to) {
			continue
		}
		copied := *transaction
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// Update replaces the mutable fields of an existing transaction
func (m *MockTransactionRepository) Update(ctx context.Context, id int32, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	transaction, ok := m.Transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	transaction.Type = data.Type
	transaction.Amount = data.Amount
	transaction.Description = data.Description
	transaction.Date = data.Date
	transaction.CategoryID = data.CategoryID
	copied := *transaction
	return &copied, nil
}

// DeleteIfToday deletes the transaction only when dated today
func (m *MockTransactionRepository) DeleteIfToday(ctx context.Context, id int32) error {
	transaction, ok := m.Transactions[id]
	if !ok || !util.SameDate(transaction.Date, util.Today()) {
		return domain.ErrNotDeletable
	}
	delete(m.Transactions, id)
	return nil
}

// Delete deletes the transaction unconditionally
func (m *MockTransactionRepository) Delete(ctx context.Context, id int32) error {
	delete(m.Transactions, id)
	return nil
}

// SumByTypeAndDateRange sums amounts of one type within the range
func (m *MockTransactionRepository) SumByTypeAndDateRange(ctx context.Context, from, to time.Time, txType domain.TransactionType) (decimal.Decimal, error) {
	if m.SumErr != nil {
		return decimal.Zero, m.SumErr
	}
	total := decimal.Zero
	for _, transaction := range m.Transactions {
		if transaction.Type != txType {
			continue
		}
		if transaction.Date.Before(from) || transaction.Date.After(to) {
			continue
		}
		total = total.Add(transaction.Amount)
	}
	return total, nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	if transaction.ID >= m.NextID {
		m.NextID = transaction.ID + 1
	}
	m.Transactions[transaction.ID] = transaction
}

// MockCategoryRepository is an in-memory implementation of
// domain.CategoryRepository for tests
type MockCategoryRepository struct {
	Categories   map[int32]*domain.Category
	Transactions *MockTransactionRepository

	GetByTypeErr error
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
	}
}

// GetByID retrieves a category by id
func (m *MockCategoryRepository) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all categories ordered by id
func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	result := make([]*domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		result = append(result, category)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetByType retrieves categories for a type, is_default first then lowest id
func (m *MockCategoryRepository) GetByType(ctx context.Context, txType domain.TransactionType) ([]*domain.Category, error) {
	if m.GetByTypeErr != nil {
		return nil, m.GetByTypeErr
	}
	result := make([]*domain.Category, 0)
	for _, category := range m.Categories {
		if category.Type == txType {
			result = append(result, category)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsDefault != result[j].IsDefault {
			return result[i].IsDefault
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// CategoryOfTransaction returns the category attached to a transaction
func (m *MockCategoryRepository) CategoryOfTransaction(ctx context.Context, transactionID int32) (int32, error) {
	if m.Transactions == nil {
		return 0, domain.ErrTransactionNotFound
	}
	transaction, ok := m.Transactions.Transactions[transactionID]
	if !ok {
		return 0, domain.ErrTransactionNotFound
	}
	return transaction.CategoryID, nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
}

// CapturingPublisher records published events for assertions
type CapturingPublisher struct {
	mu     sync.Mutex
	Events []ws.Event
}

// Publish records the event
func (p *CapturingPublisher) Publish(event ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

// EventTypes returns the types of all recorded events in order
func (p *CapturingPublisher) EventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.Events))
	for i, event := range p.Events {
		types[i] = event.Type
	}
	return types
}

package domain

import "errors"

// Domain errors, grouped by how callers are expected to react.
var (
	// Validation: caller-supplied data violates an invariant. Never retried.
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrDescriptionRequired    = errors.New("description is required")
	ErrDescriptionTooLong     = errors.New("description exceeds maximum length")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidDateRange       = errors.New("from date must not be after to date")

	// Not found: the referenced id does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")

	// Constraint: a business-rule guard tripped.
	ErrNotDeletable = errors.New("not deletable: not today's entry or does not exist")

	// Storage: persistence failed or returned an unexpected shape. The whole
	// operation may be retried since writes are transactional.
	ErrStorage = errors.New("storage failure")
)

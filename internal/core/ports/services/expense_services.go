package services

import (
	"context"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
	"github.com/splitmate/splitmate_backend/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense with its splits.
	// The requesting user must be a member of the expense's group.
	GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)

	// ListExpensesByGroup retrieves a paginated list of a group's expenses, newest
	// first, using token-based pagination.
	ListExpensesByGroup(ctx context.Context, groupID string, requestingUserID string, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense records an expense paid by the requesting user and its
	// computed splits atomically.
	CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, payerUserID string) (*domain.Expense, error)

	// UpdateExpense updates an expense's descriptive fields. Amount and splits
	// are immutable. Only the payer or the group admin may do this.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error)

	// DeleteExpense removes an expense and its splits.
	// Only the payer or the group admin may do this.
	DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}

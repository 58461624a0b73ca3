package repositories

import (
	"context"
	"time"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByGroup retrieves a paginated list of a group's expenses, newest first,
	// using token-based pagination. It returns the expenses, a token for the next page, and an error.
	ListExpensesByGroup(ctx context.Context, groupID string, limit int, nextToken *string) ([]domain.Expense, *string, error)

	// ListExpensesByGroupSince retrieves all of a group's expenses created at or after since.
	ListExpensesByGroupSince(ctx context.Context, groupID string, since time.Time) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists an expense and its splits within a single transaction.
	SaveExpense(ctx context.Context, expense domain.Expense, splits []domain.ExpenseSplit) error

	// UpdateExpense updates an expense's descriptive fields (title, description, category).
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// DeleteExpense removes an expense and its splits within a single transaction.
	DeleteExpense(ctx context.Context, expenseID string) error
}

// SplitReader defines read operations for expense split data
type SplitReader interface {
	// FindSplitsByExpenseID retrieves all splits of a single expense.
	FindSplitsByExpenseID(ctx context.Context, expenseID string) ([]domain.ExpenseSplit, error)

	// FindSplitsByExpenseIDs retrieves splits for multiple expenses, grouped by expense ID.
	FindSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]domain.ExpenseSplit, error)

	// FindSplitsByGroupID retrieves every split belonging to a group's expenses.
	FindSplitsByGroupID(ctx context.Context, groupID string) ([]domain.ExpenseSplit, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
// This is a facade for clients that need access to all operations
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	SplitReader
}

// ExpenseRepositoryWithTx extends ExpenseRepositoryFacade with transaction capabilities
type ExpenseRepositoryWithTx interface {
	ExpenseRepositoryFacade
	TransactionManager
}

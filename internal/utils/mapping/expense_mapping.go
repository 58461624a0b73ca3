package mapping

import (
	"github.com/splitmate/splitmate_backend/internal/core/domain"
	"github.com/splitmate/splitmate_backend/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		GroupID:     d.GroupID,
		PaidByID:    d.PaidByID,
		Amount:      d.Amount,
		Title:       d.Title,
		Description: d.Description,
		Category:    string(d.Category),
		SplitType:   models.SplitType(d.SplitType),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		GroupID:     m.GroupID,
		PaidByID:    m.PaidByID,
		Amount:      m.Amount,
		Title:       m.Title,
		Description: m.Description,
		Category:    domain.ExpenseCategory(m.Category),
		SplitType:   domain.SplitType(m.SplitType),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToModelExpenseSplit converts a domain ExpenseSplit to a model ExpenseSplit
func ToModelExpenseSplit(d domain.ExpenseSplit) models.ExpenseSplit {
	return models.ExpenseSplit{
		ExpenseID: d.ExpenseID,
		UserID:    d.UserID,
		Amount:    d.Amount,
		IsPaid:    d.IsPaid,
	}
}

// ToDomainExpenseSplit converts a model ExpenseSplit to a domain ExpenseSplit
func ToDomainExpenseSplit(m models.ExpenseSplit) domain.ExpenseSplit {
	return domain.ExpenseSplit{
		ExpenseID: m.ExpenseID,
		UserID:    m.UserID,
		Amount:    m.Amount,
		IsPaid:    m.IsPaid,
	}
}

// ToDomainExpenseSplitSlice converts a slice of model ExpenseSplits to domain ExpenseSplits
func ToDomainExpenseSplitSlice(ms []models.ExpenseSplit) []domain.ExpenseSplit {
	ds := make([]domain.ExpenseSplit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseSplit(m)
	}
	return ds
}

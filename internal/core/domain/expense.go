package domain

import "github.com/shopspring/decimal"

// ExpenseCategory classifies what an expense was spent on.
type ExpenseCategory string

const (
	CategoryGroceries     ExpenseCategory = "groceries"
	CategoryDining        ExpenseCategory = "dining"
	CategoryBills         ExpenseCategory = "bills"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryTravel        ExpenseCategory = "travel"
	CategoryOther         ExpenseCategory = "other"
)

// ExpenseCategories lists every valid category value.
var ExpenseCategories = []ExpenseCategory{
	CategoryGroceries,
	CategoryDining,
	CategoryBills,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryTravel,
	CategoryOther,
}

// IsValidExpenseCategory reports whether s names a known category.
func IsValidExpenseCategory(s string) bool {
	for _, c := range ExpenseCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// SplitType indicates how an expense is divided among its participants.
type SplitType string

const (
	SplitEqual  SplitType = "EQUAL"
	SplitCustom SplitType = "CUSTOM"
)

// Expense represents a single payment made by one user on behalf of a group.
// Amount and splits are immutable once the expense is created.
type Expense struct {
	ExpenseID   string          `json:"expenseID"` // Primary Key (e.g., UUID)
	GroupID     string          `json:"groupID"`   // FK -> groups.group_id
	PaidByID    string          `json:"paidByID"`  // FK -> users.user_id
	Amount      decimal.Decimal `json:"amount"`    // Total charged; positive, 2 decimal places
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    ExpenseCategory `json:"category"`
	SplitType   SplitType       `json:"splitType"`
	Splits      []ExpenseSplit  `json:"splits,omitempty"` // Populated on detail reads
	AuditFields
}

// ExpenseSplit is one participant's owed share of an expense.
// The sum of split amounts for an expense always equals the expense amount.
type ExpenseSplit struct {
	ExpenseID string          `json:"expenseID"` // FK -> expenses.expense_id
	UserID    string          `json:"userID"`    // FK -> users.user_id
	Amount    decimal.Decimal `json:"amount"`
	IsPaid    bool            `json:"isPaid"` // True only for the payer's own share at creation
}
